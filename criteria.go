package netsuite

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tphakala/go-netsuite/internal/api"
)

// Operator is a SuiteTalk search operator.
type Operator string

// Search operators.
const (
	OperatorIs             Operator = "is"
	OperatorIsNot          Operator = "isNot"
	OperatorContains       Operator = "contains"
	OperatorDoesNotContain Operator = "doesNotContain"
	OperatorStartsWith     Operator = "startsWith"
	OperatorAnyOf          Operator = "anyOf"
	OperatorNoneOf         Operator = "noneOf"
	OperatorEqualTo        Operator = "equalTo"
	OperatorGreaterThan    Operator = "greaterThan"
	OperatorLessThan       Operator = "lessThan"
	OperatorOn             Operator = "on"
	OperatorBefore         Operator = "before"
	OperatorAfter          Operator = "after"
	OperatorOnOrBefore     Operator = "onOrBefore"
	OperatorOnOrAfter      Operator = "onOrAfter"
	OperatorWithin         Operator = "within"
)

// SearchCondition is one operator/value constraint on a field.
type SearchCondition struct {
	Operator    Operator
	SearchValue any
}

// SearchCriteria describes the basic-search constraints of one search call.
// Supported search values are strings, booleans, numbers, time.Time,
// fmt.Stringer, RecordRef, and slices of those.
type SearchCriteria struct {
	fields []string
	basic  map[string][]SearchCondition
}

// NewSearchCriteria returns empty criteria.
func NewSearchCriteria() *SearchCriteria {
	return &SearchCriteria{basic: make(map[string][]SearchCondition)}
}

// Add constrains field with operator and value.
func (c *SearchCriteria) Add(field string, operator Operator, value any) *SearchCriteria {
	if c.basic == nil {
		c.basic = make(map[string][]SearchCondition)
	}
	if _, ok := c.basic[field]; !ok {
		c.fields = append(c.fields, field)
	}
	c.basic[field] = append(c.basic[field], SearchCondition{Operator: operator, SearchValue: value})
	return c
}

// Fields returns the constrained field names in insertion order.
func (c *SearchCriteria) Fields() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.fields...)
}

// Conditions returns the constraints on field.
func (c *SearchCriteria) Conditions(field string) []SearchCondition {
	if c == nil {
		return nil
	}
	return c.basic[field]
}

// IsEmpty reports whether no field is constrained.
func (c *SearchCriteria) IsEmpty() bool {
	return c == nil || len(c.fields) == 0
}

// Map returns the criteria in the shape
// {"basic": {field: [{"operator": op, "searchValue": v}, ...]}}.
func (c *SearchCriteria) Map() map[string]any {
	basic := make(map[string]any)
	if c != nil {
		for _, field := range c.fields {
			conds := make([]any, 0, len(c.basic[field]))
			for _, cond := range c.basic[field] {
				conds = append(conds, map[string]any{
					"operator":    string(cond.Operator),
					"searchValue": cond.SearchValue,
				})
			}
			basic[field] = conds
		}
	}
	return map[string]any{"basic": basic}
}

// searchRecord renders the criteria as a <TypeName>SearchBasic search record.
func (c *SearchCriteria) searchRecord(typeName string) (api.SearchRecord, error) {
	rec := api.SearchRecord{
		XSIType: "platformCommon:" + typeName + "SearchBasic",
	}
	if c == nil {
		return rec, nil
	}
	for _, field := range c.fields {
		for _, cond := range c.basic[field] {
			values, err := searchValues(cond.SearchValue)
			if err != nil {
				return rec, &ValidationError{Field: field, Message: err.Error()}
			}
			sf := api.SearchField{
				Operator: string(cond.Operator),
				Values:   values,
			}
			sf.XMLName.Local = "platformCommon:" + field
			rec.Fields = append(rec.Fields, sf)
		}
	}
	return rec, nil
}

func searchValues(v any) ([]api.SearchValue, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []api.SearchValue{{Text: val}}, nil
	case bool:
		return []api.SearchValue{{Text: strconv.FormatBool(val)}}, nil
	case int:
		return []api.SearchValue{{Text: strconv.Itoa(val)}}, nil
	case int64:
		return []api.SearchValue{{Text: strconv.FormatInt(val, 10)}}, nil
	case float64:
		return []api.SearchValue{{Text: strconv.FormatFloat(val, 'f', -1, 64)}}, nil
	case time.Time:
		return []api.SearchValue{{Text: val.Format(time.RFC3339)}}, nil
	case RecordRef:
		return []api.SearchValue{refValue(val)}, nil
	case *RecordRef:
		if val == nil {
			return nil, nil
		}
		return []api.SearchValue{refValue(*val)}, nil
	case []string:
		out := make([]api.SearchValue, 0, len(val))
		for _, s := range val {
			out = append(out, api.SearchValue{Text: s})
		}
		return out, nil
	case []RecordRef:
		out := make([]api.SearchValue, 0, len(val))
		for _, ref := range val {
			out = append(out, refValue(ref))
		}
		return out, nil
	case []any:
		var out []api.SearchValue
		for _, item := range val {
			vs, err := searchValues(item)
			if err != nil {
				return nil, err
			}
			out = append(out, vs...)
		}
		return out, nil
	case fmt.Stringer:
		return []api.SearchValue{{Text: val.String()}}, nil
	default:
		return nil, fmt.Errorf("unsupported search value type %T", v)
	}
}

func refValue(ref RecordRef) api.SearchValue {
	return api.SearchValue{
		Type:       ref.Type,
		InternalID: ref.InternalID,
		ExternalID: ref.ExternalID,
	}
}
