package types

import "testing"

func TestCoerceIdentity(t *testing.T) {
	for _, d := range []DataType{Void, Int32, Float32, Bool} {
		kind, ok := Coerce(d, d)
		if !ok || kind != CoerceIdentity {
			t.Errorf("Coerce(%v, %v) = %v, %v; want CoerceIdentity, true", d, d, kind, ok)
		}
	}
}

func TestCoerceVoidNeverMixes(t *testing.T) {
	for _, d := range []DataType{Int32, Float32, Bool} {
		if _, ok := Coerce(Void, d); ok {
			t.Errorf("Coerce(Void, %v) should be invalid", d)
		}
		if _, ok := Coerce(d, Void); ok {
			t.Errorf("Coerce(%v, Void) should be invalid", d)
		}
	}
}

func TestCoerceNumericCrossing(t *testing.T) {
	cases := []struct {
		from, to DataType
		want     CoerceKind
	}{
		{Int32, Float32, CoerceSIToFP},
		{Float32, Int32, CoerceFPToSI},
		{Int32, Bool, CoerceIToBoolTrunc},
		{Float32, Bool, CoerceFToBoolCmp},
		{Bool, Int32, CoerceBoolToIZext},
		{Bool, Float32, CoerceBoolToFSext},
	}
	for _, c := range cases {
		got, ok := Coerce(c.from, c.to)
		if !ok || got != c.want {
			t.Errorf("Coerce(%v, %v) = %v, %v; want %v, true", c.from, c.to, got, ok, c.want)
		}
	}
}

func TestCoerceOutOfRangeIsInvalid(t *testing.T) {
	if _, ok := Coerce(DataType(99), Int32); ok {
		t.Error("out-of-range From should be invalid")
	}
	if _, ok := Coerce(Int32, DataType(99)); ok {
		t.Error("out-of-range To should be invalid")
	}
}

func TestIsNumeric(t *testing.T) {
	for _, d := range []DataType{Int32, Float32} {
		if !d.IsNumeric() {
			t.Errorf("%v.IsNumeric() = false, want true", d)
		}
	}
	for _, d := range []DataType{Void, Bool} {
		if d.IsNumeric() {
			t.Errorf("%v.IsNumeric() = true, want false", d)
		}
	}
}
