package lang

import (
	"errors"
	"log/slog"
	"testing"
)

func TestValue_Truthy(t *testing.T) {
	tests := []struct {
		value Value
		want  bool
	}{
		{IntValue(0), false},
		{IntValue(-1), true},
		{IntValue(7), true},
		{StringValue(""), true},
		{StringValue("x"), true},
		{BoolValue(false), false},
		{BoolValue(true), true},
		{UnitValue(), false},
	}

	for _, tt := range tests {
		t.Run(tt.value.GoString(), func(t *testing.T) {
			if got := tt.value.Truthy(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestValue_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want int
	}{
		{"int less", IntValue(1), IntValue(2), -1},
		{"int equal", IntValue(2), IntValue(2), 0},
		{"string greater", StringValue("b"), StringValue("a"), 1},
		{"bool order", BoolValue(false), BoolValue(true), -1},
		{"unit equal", UnitValue(), UnitValue(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Compare(tt.b)
			if err != nil {
				t.Fatalf("compare error: %v", err)
			}

			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}

	if _, err := IntValue(1).Compare(StringValue("1")); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestValue_Strings(t *testing.T) {
	tests := []struct {
		value   Value
		display string
		debug   string
		native  any
	}{
		{IntValue(-3), "-3", "Int(-3)", int32(-3)},
		{StringValue("a b"), "a b", `String("a b")`, "a b"},
		{BoolValue(true), "true", "Bool(true)", true},
		{UnitValue(), "", "Unit", nil},
	}

	for _, tt := range tests {
		t.Run(tt.debug, func(t *testing.T) {
			if got := tt.value.String(); got != tt.display {
				t.Errorf("String: expected %q, got %q", tt.display, got)
			}

			if got := tt.value.GoString(); got != tt.debug {
				t.Errorf("GoString: expected %q, got %q", tt.debug, got)
			}

			if got := tt.value.Interface(); got != tt.native {
				t.Errorf("Interface: expected %v, got %v", tt.native, got)
			}
		})
	}
}

func TestError_IsSurvivesDecoration(t *testing.T) {
	err := ErrUndefinedVariable.
		WithPosition(Position{Offset: 4, Line: 1, Column: 5}).
		Wrap(errors.New("cause")).
		With(slog.String("name", "x"))

	if !errors.Is(err, ErrUndefinedVariable) {
		t.Error("expected decorated error to match its sentinel")
	}

	if errors.Is(err, ErrUndefinedFunction) {
		t.Error("decorated error must not match a different sentinel")
	}

	want := `undefined variable at 1:5: cause (name="x")`
	if got := err.Error(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	if v, ok := err.Attr("name"); !ok || v.String() != "x" {
		t.Errorf("expected name attribute, got %v", v)
	}
}
