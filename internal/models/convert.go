package models

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// isNumberLiteral reports whether n is a JSON number. strconv.ParseFloat
// accepts forms such as Inf, NaN and 0x10 that JSON does not.
func isNumberLiteral(n json.Number) bool {
	if n == "" || (n[0] != '-' && !isDigit(n[0])) || !isDigit(n[len(n)-1]) {
		return false
	}
	return json.Valid([]byte(n))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// FromInterface converts a plain Go value into a Value.
//
// Maps are converted with their keys sorted, since Go maps carry no order.
// Non-finite floats are rejected because JSON cannot represent them.
func FromInterface(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return t.Clone(), nil
	case *Value:
		if t == nil {
			return NullValue(), nil
		}
		return t.Clone(), nil
	case *JSONObject:
		return ObjectValue(t.Clone()), nil
	case bool:
		return BoolValue(t), nil
	case string:
		return StringValue(t), nil
	case json.Number:
		if !isNumberLiteral(t) {
			return Value{}, fmt.Errorf("invalid number literal %q", string(t))
		}
		return NumberValue(t), nil
	case int:
		return IntValue(int64(t)), nil
	case int8:
		return IntValue(int64(t)), nil
	case int16:
		return IntValue(int64(t)), nil
	case int32:
		return IntValue(int64(t)), nil
	case int64:
		return IntValue(t), nil
	case uint:
		return NumberValue(json.Number(strconv.FormatUint(uint64(t), 10))), nil
	case uint8:
		return IntValue(int64(t)), nil
	case uint16:
		return IntValue(int64(t)), nil
	case uint32:
		return IntValue(int64(t)), nil
	case uint64:
		return NumberValue(json.Number(strconv.FormatUint(t, 10))), nil
	case float32:
		return floatValue(float64(t))
	case float64:
		return floatValue(t)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			member, err := FromInterface(t[k])
			if err != nil {
				return Value{}, fmt.Errorf("member %q: %w", k, err)
			}
			obj.Set(k, member)
		}
		return ObjectValue(obj), nil
	case []any:
		arr := Value{kind: Array, arr: make([]*Value, 0, len(t))}
		for i, elem := range t {
			converted, err := FromInterface(elem)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			arr.Append(converted)
		}
		return arr, nil
	case []string:
		arr := Value{kind: Array, arr: make([]*Value, 0, len(t))}
		for _, s := range t {
			arr.Append(StringValue(s))
		}
		return arr, nil
	}
	return Value{}, fmt.Errorf("unsupported type %T", x)
}

func floatValue(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("non-finite number %v", f)
	}
	return FloatValue(f), nil
}
