// Package value defines the structured records that flow through a streamtable
// pipeline and the decoders that turn raw input into them.
package value

import (
	"strconv"
)

// Kind identifies the shape of a Value.
type Kind int

// Value kinds.
const (
	KindNothing Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindRecord
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNothing:
		return "nothing"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindRecord:
		return "record"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Field is one named entry of a record.
type Field struct {
	Name  string
	Value Value
}

// Value is a single structured item of the input stream. The zero Value is Nothing.
type Value struct {
	kind   Kind
	b      bool
	i      int64
	f      float64
	s      string
	list   []Value
	fields []Field
}

// Nothing returns the empty value.
func Nothing() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps an integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a floating point number.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// List wraps an ordered list of values.
func List(items ...Value) Value { return Value{kind: KindList, list: items} }

// Record builds a record from fields. Later fields with a duplicate name replace
// the earlier value but keep its position.
func Record(fields ...Field) Value {
	out := make([]Field, 0, len(fields))
	index := make(map[string]int, len(fields))
	for _, f := range fields {
		if i, ok := index[f.Name]; ok {
			out[i].Value = f.Value
			continue
		}
		index[f.Name] = len(out)
		out = append(out, f)
	}
	return Value{kind: KindRecord, fields: out}
}

// F is shorthand for a Field literal.
func F(name string, v Value) Field { return Field{Name: name, Value: v} }

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNothing reports whether v is the empty value.
func (v Value) IsNothing() bool { return v.kind == KindNothing }

// IsRecord reports whether v is a record.
func (v Value) IsRecord() bool { return v.kind == KindRecord }

// Fields returns the record's fields in order. Non-records have none.
func (v Value) Fields() []Field { return v.fields }

// Items returns the list's items. Non-lists have none.
func (v Value) Items() []Value { return v.list }

// Get returns the named field of a record.
func (v Value) Get(name string) (Value, bool) {
	for _, f := range v.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// AsBool returns the boolean payload.
func (v Value) AsBool() bool { return v.b }

// AsInt returns the integer payload.
func (v Value) AsInt() int64 { return v.i }

// AsFloat returns the float payload.
func (v Value) AsFloat() float64 { return v.f }

// AsString returns the string payload.
func (v Value) AsString() string { return v.s }
