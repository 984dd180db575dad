package ast

// ValueKind discriminates the variants of AttributeValue.
type ValueKind int

const (
	StringKind ValueKind = iota
	NumberKind
	BoolKind
	ListKind
)

// AttributeValue is the tagged-union value type for attribute maps:
// string, number, boolean, or an arbitrarily nested list of values.
// Zero value is the empty string.
type AttributeValue struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
	list []AttributeValue
}

// StringValue wraps a string.
func StringValue(s string) AttributeValue {
	return AttributeValue{kind: StringKind, str: s}
}

// NumberValue wraps a float.
func NumberValue(n float64) AttributeValue {
	return AttributeValue{kind: NumberKind, num: n}
}

// BoolValue wraps a boolean.
func BoolValue(b bool) AttributeValue {
	return AttributeValue{kind: BoolKind, b: b}
}

// ListValue wraps a list. The slice is owned by the value afterwards.
func ListValue(items []AttributeValue) AttributeValue {
	return AttributeValue{kind: ListKind, list: items}
}

// Kind reports which variant the value holds.
func (v AttributeValue) Kind() ValueKind {
	return v.kind
}

// AsString returns the string payload, or false for other variants.
func (v AttributeValue) AsString() (string, bool) {
	if v.kind != StringKind {
		return "", false
	}
	return v.str, true
}

// AsNumber returns the numeric payload, or false for other variants.
func (v AttributeValue) AsNumber() (float64, bool) {
	if v.kind != NumberKind {
		return 0, false
	}
	return v.num, true
}

// AsBool returns the boolean payload, or false for other variants.
func (v AttributeValue) AsBool() (bool, bool) {
	if v.kind != BoolKind {
		return false, false
	}
	return v.b, true
}

// AsList returns the list payload, or false for other variants. Callers
// must not mutate the returned slice.
func (v AttributeValue) AsList() ([]AttributeValue, bool) {
	if v.kind != ListKind {
		return nil, false
	}
	return v.list, true
}

// Strings flattens a list value into the string payloads of its elements,
// dropping non-string entries. Non-list values yield nil.
func (v AttributeValue) Strings() []string {
	items, ok := v.AsList()
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.AsString(); ok {
			out = append(out, s)
		}
	}
	return out
}

// Attributes is an insertion-ordered attribute map. Declaration order in
// the source is preserved so that renderers downstream emit stable output.
type Attributes struct {
	keys   []string
	values map[string]AttributeValue
}

// NewAttributes creates an empty attribute map.
func NewAttributes() *Attributes {
	return &Attributes{values: make(map[string]AttributeValue)}
}

// Set inserts or replaces a value. A replaced key keeps its original
// position.
func (a *Attributes) Set(key string, value AttributeValue) {
	if _, exists := a.values[key]; !exists {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Get returns the value for key.
func (a *Attributes) Get(key string) (AttributeValue, bool) {
	v, ok := a.values[key]
	return v, ok
}

// GetString returns the string payload for key, or false when the key is
// absent or holds a different variant.
func (a *Attributes) GetString(key string) (string, bool) {
	v, ok := a.values[key]
	if !ok {
		return "", false
	}
	return v.AsString()
}

// StringOr returns the string payload for key, or def when absent.
func (a *Attributes) StringOr(key, def string) string {
	if s, ok := a.GetString(key); ok {
		return s
	}
	return def
}

// Keys returns the keys in insertion order. Callers must not mutate the
// returned slice.
func (a *Attributes) Keys() []string {
	return a.keys
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return len(a.keys)
}
