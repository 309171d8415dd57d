package ast

import (
	"encoding/json"
	"fmt"
)

// ValueKind identifies the shape of a property value.
type ValueKind int

const (
	// ValueMissing is the absent/null value.
	ValueMissing ValueKind = iota

	// ValueNumber is a scalar measurement.
	ValueNumber

	// ValueText is a categorical string value.
	ValueText
)

// PropertyValue is a single soil-property measurement: a number, a
// categorical string, or missing. The zero value is missing.
type PropertyValue struct {
	kind   ValueKind
	number float64
	text   string
}

// Number returns a numeric property value.
func Number(v float64) PropertyValue {
	return PropertyValue{kind: ValueNumber, number: v}
}

// Text returns a categorical property value.
func Text(s string) PropertyValue {
	return PropertyValue{kind: ValueText, text: s}
}

// Missing is the absent property value.
var Missing = PropertyValue{}

// Kind returns the value shape.
func (v PropertyValue) Kind() ValueKind { return v.kind }

// IsMissing reports whether the value is absent.
func (v PropertyValue) IsMissing() bool { return v.kind == ValueMissing }

// Float returns the numeric value and whether the value is numeric.
func (v PropertyValue) Float() (float64, bool) {
	return v.number, v.kind == ValueNumber
}

// String returns the categorical value and whether the value is a string.
func (v PropertyValue) String() (string, bool) {
	return v.text, v.kind == ValueText
}

// MarshalJSON encodes a number as a JSON number, text as a JSON string and
// missing as null.
func (v PropertyValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueNumber:
		return json.Marshal(v.number)
	case ValueText:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes null, numbers and strings; any other JSON shape is
// rejected.
func (v *PropertyValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// UnmarshalYAML decodes null, numbers and strings from YAML documents.
func (v *PropertyValue) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	decoded, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// ValueOf converts a dynamically typed value (as produced by the yaml and
// json decoders) into a PropertyValue.
func ValueOf(raw any) (PropertyValue, error) {
	switch val := raw.(type) {
	case nil:
		return Missing, nil
	case float64:
		return Number(val), nil
	case float32:
		return Number(float64(val)), nil
	case int:
		return Number(float64(val)), nil
	case int64:
		return Number(float64(val)), nil
	case uint64:
		return Number(float64(val)), nil
	case string:
		return Text(val), nil
	default:
		return Missing, fmt.Errorf("unsupported property value type %T", raw)
	}
}

// PropertyData maps property name to its measured value for one evaluation
// request. Supplied per call and never mutated by the evaluator.
type PropertyData map[string]PropertyValue

// Value returns the value for name; absent keys read as Missing.
func (d PropertyData) Value(name string) PropertyValue {
	return d[name]
}
