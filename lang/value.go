package lang

import (
	"log/slog"
	"strconv"
)

// Type identifies the kind of a runtime [Value].
type Type int

// Value types.
const (
	TypeUnit Type = iota
	TypeInt
	TypeString
	TypeBool
)

func (t Type) String() string {
	switch t {
	case TypeUnit:
		return "Unit"
	case TypeInt:
		return "Int"
	case TypeString:
		return "String"
	case TypeBool:
		return "Bool"
	default:
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
}

// Value is a runtime value. It is a small scalar copied by value; the zero
// Value is Unit.
type Value struct {
	typ Type
	num int32
	str string
}

// IntValue returns an Int value.
func IntValue(n int32) Value { return Value{typ: TypeInt, num: n} }

// StringValue returns a String value.
func StringValue(s string) Value { return Value{typ: TypeString, str: s} }

// BoolValue returns a Bool value.
func BoolValue(b bool) Value {
	v := Value{typ: TypeBool}
	if b {
		v.num = 1
	}

	return v
}

// UnitValue returns the Unit value.
func UnitValue() Value { return Value{} }

// Type returns the kind of v.
func (v Value) Type() Type { return v.typ }

// Int returns the integer held by v, if v is an Int.
func (v Value) Int() (int32, bool) { return v.num, v.typ == TypeInt }

// Str returns the string held by v, if v is a String.
func (v Value) Str() (string, bool) { return v.str, v.typ == TypeString }

// Bool returns the boolean held by v, if v is a Bool.
func (v Value) Bool() (bool, bool) { return v.num != 0, v.typ == TypeBool }

// Truthy converts v to a branch decision: non-zero Int, any String, and true
// are truthy; zero, false, and Unit are not.
func (v Value) Truthy() bool {
	switch v.typ {
	case TypeInt, TypeBool:
		return v.num != 0
	case TypeString:
		return true
	default:
		return false
	}
}

// Compare orders v against w. Both must have the same type, otherwise it
// fails with [ErrTypeMismatch].
func (v Value) Compare(w Value) (int, error) {
	if v.typ != w.typ {
		return 0, ErrTypeMismatch.
			With(slog.String("lhs", v.typ.String())).
			With(slog.String("rhs", w.typ.String()))
	}

	switch v.typ {
	case TypeInt, TypeBool:
		return cmp(v.num, w.num), nil
	case TypeString:
		return cmp(v.str, w.str), nil
	default:
		return 0, nil // Unit
	}
}

func cmp[T int32 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Interface returns v as a plain Go value: int32, string, bool, or nil.
func (v Value) Interface() any {
	switch v.typ {
	case TypeInt:
		return v.num
	case TypeString:
		return v.str
	case TypeBool:
		return v.num != 0
	default:
		return nil
	}
}

// String renders v the way print builtins display it. Unit renders empty.
func (v Value) String() string {
	switch v.typ {
	case TypeInt:
		return strconv.FormatInt(int64(v.num), 10)
	case TypeString:
		return v.str
	case TypeBool:
		return strconv.FormatBool(v.num != 0)
	default:
		return ""
	}
}

// GoString renders v with its type, quoting strings, e.g. Int(3) or
// String("a").
func (v Value) GoString() string {
	switch v.typ {
	case TypeUnit:
		return "Unit"
	case TypeString:
		return "String(" + strconv.Quote(v.str) + ")"
	default:
		return v.typ.String() + "(" + v.String() + ")"
	}
}

// LogValue implements slog.LogValuer.
func (v Value) LogValue() slog.Value {
	return slog.StringValue(v.GoString())
}
