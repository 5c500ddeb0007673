package netsuite

import "fmt"

// BuildSimpleFields copies the listed fields present in source into target.
// Absent fields are skipped; present fields keep the order of fields.
func BuildSimpleFields(fields []string, source map[string]any, target *Record) {
	for _, field := range fields {
		if v, ok := source[field]; ok {
			target.Set(field, v)
		}
	}
}

// BuildRecordRefFields copies the listed fields present in source into
// target as serialized record references. Values may be RecordRef,
// *RecordRef, *Record or map[string]any with the keys type, internalId,
// externalId and name.
func BuildRecordRefFields(fields []string, source map[string]any, target *Record) error {
	for _, field := range fields {
		v, ok := source[field]
		if !ok {
			continue
		}
		ref, err := toRecordRef(v)
		if err != nil {
			return &ValidationError{Field: field, Message: err.Error()}
		}
		target.Set(field, ref.Record())
	}
	return nil
}

func toRecordRef(v any) (RecordRef, error) {
	switch val := v.(type) {
	case RecordRef:
		return val, nil
	case *RecordRef:
		if val == nil {
			return RecordRef{}, fmt.Errorf("nil record reference")
		}
		return *val, nil
	case *Record:
		return RecordRef{
			Type:       val.GetString(FieldType),
			InternalID: val.GetString(FieldInternalID),
			ExternalID: val.GetString(FieldExternalID),
			Name:       val.GetString(FieldName),
		}, nil
	case map[string]any:
		ref := RecordRef{}
		for key, dst := range map[string]*string{
			FieldType:       &ref.Type,
			FieldInternalID: &ref.InternalID,
			FieldExternalID: &ref.ExternalID,
			FieldName:       &ref.Name,
		} {
			raw, ok := val[key]
			if !ok || raw == nil {
				continue
			}
			s, ok := raw.(string)
			if !ok {
				return RecordRef{}, fmt.Errorf("%s must be a string, got %T", key, raw)
			}
			*dst = s
		}
		return ref, nil
	default:
		return RecordRef{}, fmt.Errorf("cannot build record reference from %T", v)
	}
}
