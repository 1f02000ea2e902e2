package pat

import (
	"math"
	"testing"

	"github.com/funvibe/patcheck/internal/typesystem"
)

func TestSignExtend(t *testing.T) {
	tests := []struct {
		bits  uint64
		width uint
		want  int64
	}{
		{0x00, 8, 0},
		{0x7F, 8, 127},
		{0x80, 8, -128},
		{0xFF, 8, -1},
		{0x8000, 16, -32768},
		{0xFFFFFFFFFFFFFFFF, 64, -1},
	}
	for _, tt := range tests {
		if got := SignExtend(tt.bits, tt.width); got != tt.want {
			t.Errorf("SignExtend(%#x, %d) = %d, want %d", tt.bits, tt.width, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	i8 := typesystem.TInt{Bits: 8, Signed: true}
	u8 := typesystem.TInt{Bits: 8}

	tests := []struct {
		name string
		a, b Const
		ty   typesystem.Type
		want int
		ok   bool
	}{
		{"signed negative below positive", IntVal{Bits: 0xFF}, IntVal{Bits: 1}, i8, -1, true},
		{"unsigned raw order", IntVal{Bits: 0xFF}, IntVal{Bits: 1}, u8, 1, true},
		{"signed equal", IntVal{Bits: 0x80}, IntVal{Bits: 0x80}, i8, 0, true},
		{"bool order", BoolVal(false), BoolVal(true), typesystem.TBool{}, -1, true},
		{"float order", FloatVal(1.5), FloatVal(2.0), typesystem.TFloat{Bits: 64}, -1, true},
		{"float equal", FloatVal(2.0), FloatVal(2.0), typesystem.TFloat{Bits: 64}, 0, true},
		{"nan incomparable", FloatVal(math.NaN()), FloatVal(2.0), typesystem.TFloat{Bits: 64}, 0, false},
		{"string order", StrVal("a"), StrVal("b"), typesystem.TStr{}, -1, true},
		{"mismatched kinds", IntVal{Bits: 1}, BoolVal(true), u8, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Compare(tt.a, tt.b, tt.ty)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("Compare = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}
