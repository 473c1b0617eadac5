package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// Kind identifies which member of the JSON union a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Object
	Array
)

var kindNames = map[Kind]string{
	Null:   "null",
	Bool:   "boolean",
	Number: "number",
	String: "string",
	Object: "object",
	Array:  "array",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is a node of the JSON value tree.
// The zero Value is JSON null.
//
// Containers are held by reference: copying a Value copies the handle, not
// the members, so use Clone when an independent copy is needed.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	obj  *JSONObject
	arr  []*Value
}

// NullValue returns JSON null.
func NullValue() Value { return Value{} }

// BoolValue returns a JSON boolean.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// NumberValue returns a JSON number holding the literal text n.
func NumberValue(n json.Number) Value { return Value{kind: Number, num: n} }

// IntValue returns a JSON number for an integer.
func IntValue(i int64) Value {
	return Value{kind: Number, num: json.Number(strconv.FormatInt(i, 10))}
}

// FloatValue returns a JSON number for a float.
func FloatValue(f float64) Value {
	return Value{kind: Number, num: json.Number(strconv.FormatFloat(f, 'g', -1, 64))}
}

// StringValue returns a JSON string.
func StringValue(s string) Value { return Value{kind: String, str: s} }

// ObjectValue wraps obj as a Value. A nil obj yields an empty object.
func ObjectValue(obj *JSONObject) Value {
	if obj == nil {
		obj = NewObject()
	}
	return Value{kind: Object, obj: obj}
}

// ArrayValue returns a JSON array holding copies of elems.
func ArrayValue(elems ...Value) Value {
	arr := make([]*Value, len(elems))
	for i := range elems {
		elem := elems[i]
		arr[i] = &elem
	}
	return Value{kind: Array, arr: arr}
}

// Kind reports which member of the union v holds.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool   { return v.kind == Null }
func (v Value) IsObject() bool { return v.kind == Object }
func (v Value) IsArray() bool  { return v.kind == Array }

// Bool returns the boolean payload and whether v is a boolean.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == Bool }

// Number returns the numeric literal and whether v is a number.
func (v Value) Number() (json.Number, bool) { return v.num, v.kind == Number }

// Str returns the string payload and whether v is a string.
func (v Value) Str() (string, bool) { return v.str, v.kind == String }

// Object returns the object payload, or nil when v is not an object.
func (v Value) Object() *JSONObject {
	if v.kind != Object {
		return nil
	}
	return v.obj
}

// Len returns the number of members of an object or elements of an array.
func (v Value) Len() int {
	switch v.kind {
	case Object:
		return v.obj.Len()
	case Array:
		return len(v.arr)
	}
	return 0
}

// Index returns the element at position i of an array.
func (v Value) Index(i int) (Value, bool) {
	elem := v.IndexRef(i)
	if elem == nil {
		return Value{}, false
	}
	return *elem, true
}

// IndexRef returns a handle to the element at position i, or nil when v is
// not an array or i is out of range.
func (v *Value) IndexRef(i int) *Value {
	if v.kind != Array || i < 0 || i >= len(v.arr) {
		return nil
	}
	return v.arr[i]
}

// Elements returns the array elements in order.
func (v Value) Elements() []Value {
	if v.kind != Array {
		return nil
	}
	out := make([]Value, len(v.arr))
	for i, elem := range v.arr {
		out[i] = *elem
	}
	return out
}

// ResetObject discards the current content of v and turns it into an empty
// object. It is the only way a node changes to an object in place.
func (v *Value) ResetObject() {
	*v = Value{kind: Object, obj: NewObject()}
}

// ResetArray discards the current content of v and turns it into an empty
// array.
func (v *Value) ResetArray() {
	*v = Value{kind: Array}
}

// Grow extends an array with nulls until position i exists and returns a
// handle to that element. It panics if v is not an array.
//
// The padding is allocated as one block, so memory still grows with i but
// the allocation count does not.
func (v *Value) Grow(i int) *Value {
	if v.kind != Array {
		panic(fmt.Sprintf("models: Grow on %s", v.kind))
	}
	if n := i + 1 - len(v.arr); n > 0 {
		pad := make([]Value, n)
		v.arr = slices.Grow(v.arr, n)
		for j := range pad {
			v.arr = append(v.arr, &pad[j])
		}
	}
	return v.arr[i]
}

// Append adds elem to the end of an array. It panics if v is not an array.
func (v *Value) Append(elem Value) {
	if v.kind != Array {
		panic(fmt.Sprintf("models: Append on %s", v.kind))
	}
	v.arr = append(v.arr, &elem)
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case Object:
		return Value{kind: Object, obj: v.obj.Clone()}
	case Array:
		arr := make([]*Value, len(v.arr))
		for i, elem := range v.arr {
			c := elem.Clone()
			arr[i] = &c
		}
		return Value{kind: Array, arr: arr}
	}
	return v
}

// Equal reports whether v and other hold the same JSON value. Object member
// order is ignored and numbers compare by literal text.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case Null:
		return true
	case Bool:
		return v.b == other.b
	case Number:
		return v.num == other.num
	case String:
		return v.str == other.str
	case Object:
		if v.obj.Len() != other.obj.Len() {
			return false
		}
		for _, key := range v.obj.Keys() {
			a, _ := v.obj.Get(key)
			b, ok := other.obj.Get(key)
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	case Array:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(*other.arr[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Interface converts v into plain Go values: nil, bool, json.Number, string,
// map[string]any and []any.
func (v Value) Interface() any {
	switch v.kind {
	case Bool:
		return v.b
	case Number:
		return v.num
	case String:
		return v.str
	case Object:
		m := make(map[string]any, v.obj.Len())
		for _, key := range v.obj.Keys() {
			member, _ := v.obj.Get(key)
			m[key] = member.Interface()
		}
		return m
	case Array:
		out := make([]any, len(v.arr))
		for i, elem := range v.arr {
			out[i] = elem.Interface()
		}
		return out
	}
	return nil
}

func (v Value) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<invalid %s: %v>", v.kind, err)
	}
	return string(data)
}
