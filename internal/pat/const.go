package pat

import (
	"strings"

	"github.com/funvibe/patcheck/internal/typesystem"
)

// Const is a literal value appearing in a constant or range pattern.
// Integer-like values (including chars) store their raw truncated bits;
// signedness comes from the pattern's type, not the value.
type Const interface {
	isConst()
}

// IntVal holds the raw bits of an integer or char literal, truncated to the
// type's width. For example -128 as an Int8 is stored as 0x80.
type IntVal struct {
	Bits uint64
}

func (IntVal) isConst() {}

// BoolVal is a boolean literal.
type BoolVal bool

func (BoolVal) isConst() {}

// FloatVal is a floating-point literal.
type FloatVal float64

func (FloatVal) isConst() {}

// StrVal is a string literal.
type StrVal string

func (StrVal) isConst() {}

// SignExtend decodes raw truncated bits into a signed value of the given
// bit width.
func SignExtend(bits uint64, width uint) int64 {
	if width == 0 || width >= 64 {
		return int64(bits)
	}
	shift := 64 - width
	return int64(bits<<shift) >> shift
}

// Compare orders two constants of the same type: -1, 0 or 1. The second
// result is false when the constants are not comparable (mismatched kinds,
// or a type no ordering is defined for).
func Compare(a, b Const, ty typesystem.Type) (int, bool) {
	switch av := a.(type) {
	case IntVal:
		bv, ok := b.(IntVal)
		if !ok {
			return 0, false
		}
		if it, ok := ty.(typesystem.TInt); ok && it.Signed {
			return cmpInt64(SignExtend(av.Bits, it.Bits), SignExtend(bv.Bits, it.Bits)), true
		}
		return cmpUint64(av.Bits, bv.Bits), true
	case BoolVal:
		bv, ok := b.(BoolVal)
		if !ok {
			return 0, false
		}
		return cmpBool(bool(av), bool(bv)), true
	case FloatVal:
		bv, ok := b.(FloatVal)
		if !ok {
			return 0, false
		}
		if av < bv {
			return -1, true
		}
		if av > bv {
			return 1, true
		}
		// NaN endpoints have no ordering; a range with a NaN bound matches
		// nothing, and reporting "incomparable" keeps it that way.
		if av != av || bv != bv {
			return 0, false
		}
		return 0, true
	case StrVal:
		bv, ok := b.(StrVal)
		if !ok {
			return 0, false
		}
		return strings.Compare(string(av), string(bv)), true
	default:
		return 0, false
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpBool(a, b bool) int {
	switch {
	case !a && b:
		return -1
	case a && !b:
		return 1
	default:
		return 0
	}
}
