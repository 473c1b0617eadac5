package models

// JSONObject is a JSON object whose members keep their insertion order.
// Keys are unique; setting an existing key replaces its value in place.
type JSONObject struct {
	keys    []string
	members map[string]*Value
}

// NewObject creates an empty object.
func NewObject() *JSONObject {
	return &JSONObject{members: make(map[string]*Value)}
}

// Len returns the number of members.
func (o *JSONObject) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the member names in insertion order.
func (o *JSONObject) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Has reports whether the object has a member named key.
func (o *JSONObject) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.members[key]
	return ok
}

// Get returns the member named key.
func (o *JSONObject) Get(key string) (Value, bool) {
	ref := o.Ref(key)
	if ref == nil {
		return Value{}, false
	}
	return *ref, true
}

// Ref returns a handle to the member named key, or nil when it is missing.
// Writes through the handle are visible in the object.
func (o *JSONObject) Ref(key string) *Value {
	if o == nil {
		return nil
	}
	return o.members[key]
}

// Set stores v under key. New keys are appended; existing keys keep their
// position. The zero JSONObject is ready to use.
func (o *JSONObject) Set(key string, v Value) {
	if ref, ok := o.members[key]; ok {
		*ref = v
		return
	}
	if o.members == nil {
		o.members = make(map[string]*Value)
	}
	o.keys = append(o.keys, key)
	o.members[key] = &v
}

// Clone returns a deep copy of the object.
func (o *JSONObject) Clone() *JSONObject {
	out := NewObject()
	if o == nil {
		return out
	}
	for _, key := range o.keys {
		out.Set(key, o.members[key].Clone())
	}
	return out
}
