package lox

import (
	"math"
	"strconv"
)

type ValueKind int

const (
	KindNil ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindCallable
)

func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindCallable:
		return "callable"
	default:
		return "unknown"
	}
}

// Value is the runtime representation of every script value. The zero Value
// is nil. Values carry no shared mutable state and are passed by copy.
type Value struct {
	kind ValueKind
	data any
}

// Callable is reserved for function values. Nothing in the language can
// construct one yet; hosts may bind them so printing and equality have a
// defined behaviour.
type Callable struct {
	Name  string
	Arity int
}

func NewNil() Value { return Value{kind: KindNil} }

func NewBool(b bool) Value { return Value{kind: KindBool, data: b} }

func NewNumber(n float64) Value { return Value{kind: KindNumber, data: n} }

func NewString(s string) Value { return Value{kind: KindString, data: s} }

func NewCallable(c *Callable) Value { return Value{kind: KindCallable, data: c} }

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNil() bool { return v.kind == KindNil }

func (v Value) Bool() bool {
	if b, ok := v.data.(bool); ok {
		return b
	}
	return false
}

func (v Value) Number() float64 {
	if n, ok := v.data.(float64); ok {
		return n
	}
	return 0
}

func (v Value) Callable() *Callable {
	if c, ok := v.data.(*Callable); ok {
		return c
	}
	return nil
}

// String returns the canonical text form used by print and string
// concatenation.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.Number())
	case KindString:
		s, _ := v.data.(string)
		return s
	case KindCallable:
		if c := v.Callable(); c != nil {
			return "<fn " + c.Name + ">"
		}
		return "<fn>"
	default:
		return ""
	}
}

func formatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	case math.IsNaN(n):
		return "NaN"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Truthy reports whether the value counts as true in a condition. Only nil
// and false are falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.Bool()
	default:
		return true
	}
}

// Equal compares by variant and payload. There is no cross-type equality.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.Bool() == other.Bool()
	case KindNumber:
		return v.Number() == other.Number()
	case KindString:
		return v.String() == other.String()
	case KindCallable:
		return v.Callable() == other.Callable()
	default:
		return false
	}
}
