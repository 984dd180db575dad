package ast

import "github.com/zclconf/go-cty/cty"

// CtyValue converts an attribute value into the cty type system, which is
// the interchange representation the HCL-based generator toolchain
// consumes. Lists become tuples because .arc lists may mix element kinds.
func (v AttributeValue) CtyValue() cty.Value {
	switch v.kind {
	case StringKind:
		return cty.StringVal(v.str)
	case NumberKind:
		return cty.NumberFloatVal(v.num)
	case BoolKind:
		return cty.BoolVal(v.b)
	case ListKind:
		if len(v.list) == 0 {
			return cty.EmptyTupleVal
		}
		items := make([]cty.Value, 0, len(v.list))
		for _, item := range v.list {
			items = append(items, item.CtyValue())
		}
		return cty.TupleVal(items)
	default:
		return cty.NilVal
	}
}

// CtyObject converts a whole attribute map into a cty object value. An
// empty or nil map becomes the empty object.
func (a *Attributes) CtyObject() cty.Value {
	if a == nil || a.Len() == 0 {
		return cty.EmptyObjectVal
	}
	attrs := make(map[string]cty.Value, a.Len())
	for _, key := range a.Keys() {
		v, _ := a.Get(key)
		attrs[key] = v.CtyValue()
	}
	return cty.ObjectVal(attrs)
}
