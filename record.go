package netsuite

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"
	"strings"

	"github.com/tphakala/go-netsuite/internal/api"
)

// Field names NetSuite uses for record identity.
const (
	FieldInternalID = "internalId"
	FieldExternalID = "externalId"
	FieldType       = "type"
	FieldName       = "name"
)

// valueKey holds the character data of an element that also has attributes.
const valueKey = "_value"

// Record is an ordered mapping of field name to value. Values are strings,
// nested *Record values, []any sequences of those, or nil.
type Record struct {
	keys   []string
	fields map[string]any
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{fields: make(map[string]any)}
}

// Set stores value under key. A new key is appended to the field order;
// an existing key keeps its position.
func (r *Record) Set(key string, value any) *Record {
	if r.fields == nil {
		r.fields = make(map[string]any)
	}
	if _, ok := r.fields[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.fields[key] = value
	return r
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.fields[key]
	return v, ok
}

// GetString returns the value under key when it is a string, else "".
func (r *Record) GetString(key string) string {
	v, _ := r.Get(key)
	s, _ := v.(string)
	return s
}

// GetRecord returns the nested record under key, or nil.
func (r *Record) GetRecord(key string) *Record {
	v, _ := r.Get(key)
	rec, _ := v.(*Record)
	return rec
}

// Has reports whether key is present, even with a nil value.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Delete removes key.
func (r *Record) Delete(key string) {
	if !r.Has(key) {
		return
	}
	delete(r.fields, key)
	r.keys = slices.DeleteFunc(r.keys, func(k string) bool { return k == key })
}

// Keys returns the field names in order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.keys)
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// All iterates fields in order.
func (r *Record) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if r == nil {
			return
		}
		for _, k := range r.keys {
			if !yield(k, r.fields[k]) {
				return
			}
		}
	}
}

// InternalID returns the service-assigned internal ID.
func (r *Record) InternalID() string {
	return r.GetString(FieldInternalID)
}

// ExternalID returns the caller-assigned external ID.
func (r *Record) ExternalID() string {
	return r.GetString(FieldExternalID)
}

// ToMap converts the record, recursively, to plain maps and slices.
// Field order is lost.
func (r *Record) ToMap() map[string]any {
	if r == nil {
		return nil
	}
	out := make(map[string]any, len(r.keys))
	for k, v := range r.All() {
		out[k] = plainValue(v)
	}
	return out
}

func plainValue(v any) any {
	switch val := v.(type) {
	case *Record:
		return val.ToMap()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plainValue(item)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON implements json.Marshaler, keeping field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.fields[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RecordRef is a minimal reference to a record, usable in place of the
// full record in requests.
type RecordRef struct {
	Type       string
	InternalID string
	ExternalID string
	Name       string
}

// Record serializes the reference, including only the fields that are set.
func (r RecordRef) Record() *Record {
	rec := NewRecord()
	if r.Name != "" {
		rec.Set(FieldName, r.Name)
	}
	if r.InternalID != "" {
		rec.Set(FieldInternalID, r.InternalID)
	}
	if r.ExternalID != "" {
		rec.Set(FieldExternalID, r.ExternalID)
	}
	if r.Type != "" {
		rec.Set(FieldType, r.Type)
	}
	return rec
}

func (r RecordRef) wire(local string) api.RecordRef {
	ref := api.RecordRef{
		Type:       r.Type,
		InternalID: r.InternalID,
		ExternalID: r.ExternalID,
		Name:       r.Name,
	}
	ref.XMLName.Local = local
	return ref
}

// recordTypeRef converts a schema type name such as "CurrencyRate" into the
// RecordType enumeration value "currencyRate".
func recordTypeRef(typeName string) string {
	if typeName == "" {
		return ""
	}
	return strings.ToLower(typeName[:1]) + typeName[1:]
}

// serializeNode converts a response element into a record value.
func serializeNode(n *api.Node) any {
	if n.IsNil() {
		return nil
	}
	if len(n.Nodes) == 0 && len(n.DataAttrs()) == 0 {
		return n.Text()
	}
	return serializeRecord(n)
}

// serializeRecord converts a response element into a Record: attributes
// first, then child elements in document order. Repeated children, and every
// child of a *List container, become sequences.
func serializeRecord(n *api.Node) *Record {
	rec := NewRecord()
	for _, a := range n.DataAttrs() {
		rec.Set(a.Name.Local, a.Value)
	}

	if len(n.Nodes) == 0 {
		if text := n.Text(); text != "" {
			rec.Set(valueKey, text)
		}
		return rec
	}

	listContainer := strings.HasSuffix(n.Name(), "List")
	counts := make(map[string]int, len(n.Nodes))
	for i := range n.Nodes {
		counts[n.Nodes[i].XMLName.Local]++
	}

	for i := range n.Nodes {
		child := &n.Nodes[i]
		name := child.XMLName.Local
		value := serializeNode(child)
		if listContainer || counts[name] > 1 {
			existing, _ := rec.Get(name)
			list, _ := existing.([]any)
			rec.Set(name, append(list, value))
			continue
		}
		rec.Set(name, value)
	}
	return rec
}
