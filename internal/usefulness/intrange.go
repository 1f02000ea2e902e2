package usefulness

import (
	"fmt"
	"math"

	"github.com/funvibe/patcheck/internal/diagnostics"
	"github.com/funvibe/patcheck/internal/pat"
	"github.com/funvibe/patcheck/internal/typesystem"
)

// IntRange is an inclusive interval of integer or char values, used both
// as the meta-constructor for range patterns and as the encoding of single
// integer constants (a point interval).
//
// Endpoints are bias-shifted so that 0 encodes the minimum value of the
// type regardless of signedness: -128..=127 over Int8 is stored as 0..=255.
// That keeps all interval arithmetic unsigned. A range never wraps and is
// never empty: Lo <= Hi.
type IntRange struct {
	Lo, Hi uint64
	Ty     typesystem.Type
}

func (IntRange) isCtor() {}

func (r IntRange) String() string {
	return fmt.Sprintf("IntRange(%d..=%d: %s)", r.Lo, r.Hi, r.Ty)
}

// signedBias is XORed with an endpoint to encode or decode it.
func signedBias(ty typesystem.Type) uint64 {
	if it, ok := ty.(typesystem.TInt); ok && it.Signed {
		bits := it.Bits
		if bits == 0 || bits > 64 {
			bits = 64
		}
		return 1 << (bits - 1)
	}
	return 0
}

// maxUnsigned is the largest biased endpoint for the given bit width.
func maxUnsigned(bits uint) uint64 {
	if bits == 0 || bits >= 64 {
		return math.MaxUint64
	}
	return (1 << bits) - 1
}

// intRangeFromConst encodes an integer/char literal as a point interval.
// Returns false for non-integral types or non-integer constants.
func intRangeFromConst(c pat.Const, ty typesystem.Type) (IntRange, bool) {
	if !typesystem.IsIntegral(ty) {
		return IntRange{}, false
	}
	v, ok := c.(pat.IntVal)
	if !ok {
		return IntRange{}, false
	}
	x := v.Bits ^ signedBias(ty)
	return IntRange{Lo: x, Hi: x, Ty: ty}, true
}

// intRangeFromBounds encodes a range pattern's bounds. The caller's
// front-end has already rejected empty ranges; hitting one here is a
// contract violation.
func intRangeFromBounds(lo, hi pat.Const, end pat.RangeEnd, ty typesystem.Type) (IntRange, bool) {
	if !typesystem.IsIntegral(ty) {
		return IntRange{}, false
	}
	lv, lok := lo.(pat.IntVal)
	hv, hok := hi.(pat.IntVal)
	if !lok || !hok {
		return IntRange{}, false
	}
	bias := signedBias(ty)
	l, h := lv.Bits^bias, hv.Bits^bias
	if l > h || (l == h && end == pat.Excluded) {
		diagnostics.Bugf("empty range pattern %d%s%d over %s", l, end, h, ty)
	}
	if end == pat.Excluded {
		h--
	}
	return IntRange{Lo: l, Hi: h, Ty: ty}, true
}

// intRangeFromCtor extracts the interval from an IntRange constructor.
func intRangeFromCtor(c Ctor) (IntRange, bool) {
	r, ok := c.(IntRange)
	return r, ok
}

// shouldTreatRangeExhaustively reports whether intervals over ty may be
// split and proven exhaustive. Pointer-sized integers are excluded unless
// precise matching is enabled.
func shouldTreatRangeExhaustively(cx *MatchCtx, ty typesystem.Type) bool {
	return typesystem.IsIntegral(ty) &&
		(!typesystem.IsPtrSizedInt(ty) || cx.Opts.PreciseIntMatching)
}

// Intersection computes the overlap of r and other. When exhaustive
// treatment is off it degrades to an inclusion test: r survives intact iff
// other fully covers it.
func (r IntRange) Intersection(other IntRange, exhaustive bool) (IntRange, bool) {
	if exhaustive {
		if r.Lo <= other.Hi && other.Lo <= r.Hi {
			return IntRange{Lo: max64(r.Lo, other.Lo), Hi: min64(r.Hi, other.Hi), Ty: r.Ty}, true
		}
		return IntRange{}, false
	}
	if other.Lo <= r.Lo && r.Hi <= other.Hi {
		return r, true
	}
	return IntRange{}, false
}

// SubtractFrom removes r's values from other, leaving zero, one or two
// residual intervals.
func (r IntRange) SubtractFrom(other IntRange) []IntRange {
	if r.Lo > other.Hi || other.Lo > r.Hi {
		return []IntRange{other}
	}
	var out []IntRange
	if r.Lo > other.Lo {
		out = append(out, IntRange{Lo: other.Lo, Hi: r.Lo - 1, Ty: other.Ty})
	}
	if r.Hi < other.Hi {
		out = append(out, IntRange{Lo: r.Hi + 1, Hi: other.Hi, Ty: other.Ty})
	}
	return out
}

// toPat decodes the interval back into a displayable pattern: a constant
// for a point interval, an inclusive range otherwise.
func (r IntRange) toPat(cx *MatchCtx) *pat.Pat {
	bias := signedBias(r.Ty)
	if r.Lo == r.Hi {
		return cx.Arena.Alloc(pat.Pat{
			Ty:   r.Ty,
			Kind: pat.Constant{Value: pat.IntVal{Bits: r.Lo ^ bias}},
		})
	}
	return cx.Arena.Alloc(pat.Pat{
		Ty: r.Ty,
		Kind: pat.Range{
			Lo:  pat.IntVal{Bits: r.Lo ^ bias},
			Hi:  pat.IntVal{Bits: r.Hi ^ bias},
			End: pat.Included,
		},
	})
}

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
