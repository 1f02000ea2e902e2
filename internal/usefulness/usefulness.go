package usefulness

import (
	"github.com/funvibe/patcheck/internal/debug"
	"github.com/funvibe/patcheck/internal/diagnostics"
	"github.com/funvibe/patcheck/internal/pat"
	"github.com/funvibe/patcheck/internal/typesystem"
)

// WitnessPreference says whether a useful result must come with example
// values. Reachability checks don't need them; exhaustiveness diagnostics
// do.
type WitnessPreference int

const (
	ConstructWitness WitnessPreference = iota
	LeaveOutWitness
)

// Usefulness is the verdict for one row against one matrix.
type Usefulness interface {
	isUsefulness()
	IsUseful() bool
}

// NotUseful means every value the row matches is already matched.
type NotUseful struct{}

func (NotUseful) isUsefulness() {}
func (NotUseful) IsUseful() bool { return false }

// Useful means the row matches something new; no examples were requested.
type Useful struct{}

func (Useful) isUsefulness() {}
func (Useful) IsUseful() bool { return true }

// UsefulWithWitness carries example values matched by the row and nothing
// above it.
type UsefulWithWitness struct {
	Witnesses []Witness
}

func (UsefulWithWitness) isUsefulness() {}
func (UsefulWithWitness) IsUseful() bool { return true }

func newUseful(pref WitnessPreference) Usefulness {
	if pref == ConstructWitness {
		return UsefulWithWitness{Witnesses: []Witness{{}}}
	}
	return Useful{}
}

// Witness is a value stack under reconstruction. During the unwinding of
// the recursion it holds the subvalues for the columns not yet folded
// back into their parent constructor, in reverse order. A completed
// witness has a single pattern left.
type Witness struct {
	pats []*pat.Pat
}

// SinglePattern extracts the finished witness.
func (w Witness) SinglePattern() *pat.Pat {
	if len(w.pats) != 1 {
		diagnostics.Bugf("witness with %d patterns", len(w.pats))
	}
	return w.pats[0]
}

// applyCtor folds the top arity(ctor) subvalues of the stack back into
// one value built with ctor. A Missing bag fans the witness out into one
// copy per missing constructor.
func (w Witness) applyCtor(cx *MatchCtx, ctor Ctor, ty typesystem.Type) []Witness {
	arity := ctorArity(ctor, ty)
	keep := len(w.pats) - arity
	args := make([]*pat.Pat, arity)
	for i := 0; i < arity; i++ {
		// Subvalues were pushed in reverse column order.
		args[i] = w.pats[len(w.pats)-1-i]
	}
	applied := ctorApply(cx, ctor, ty, args)

	out := make([]Witness, 0, len(applied))
	for _, p := range applied {
		pats := make([]*pat.Pat, 0, keep+1)
		pats = append(pats, w.pats[:keep]...)
		pats = append(pats, p)
		out = append(out, Witness{pats: pats})
	}
	return out
}

// applyConstructor lifts a child verdict to the parent column by wrapping
// each witness in the constructor that was specialized on.
func applyConstructor(cx *MatchCtx, u Usefulness, ctor Ctor, ty typesystem.Type) Usefulness {
	uw, ok := u.(UsefulWithWitness)
	if !ok {
		return u
	}
	var out []Witness
	for _, w := range uw.Witnesses {
		out = append(out, w.applyCtor(cx, ctor, ty)...)
	}
	return UsefulWithWitness{Witnesses: out}
}

// allConstructors lists every statically possible constructor of ty.
// An empty list means no value of the type can be constructed here.
func allConstructors(cx *MatchCtx, ty typesystem.Type) []Ctor {
	switch t := ty.(type) {
	case typesystem.TBool:
		return []Ctor{Value{V: pat.BoolVal(true)}, Value{V: pat.BoolVal(false)}}

	case typesystem.TArray:
		if t.LenKnown {
			if t.Len != 0 && cx.isUninhabited(t.Elem) {
				return nil
			}
			return []Ctor{FixedSlice{Len: t.Len}}
		}
		// Arrays of unknown length behave like slices.
		if cx.isUninhabited(t.Elem) {
			return []Ctor{FixedSlice{Len: 0}}
		}
		return []Ctor{VarSlice{Prefix: 0, Suffix: 0}}

	case typesystem.TSlice:
		if cx.isUninhabited(t.Elem) {
			return []Ctor{FixedSlice{Len: 0}}
		}
		return []Ctor{VarSlice{Prefix: 0, Suffix: 0}}

	case *typesystem.TData:
		if !t.IsEnum {
			if cx.isUninhabited(ty) {
				return nil
			}
			return []Ctor{Single{}}
		}
		var out []Ctor
		for i := range t.Variants {
			if cx.Opts.ExhaustivePatterns &&
				typesystem.VariantUninhabitedFrom(t, t.Variants[i], cx.Module) {
				continue
			}
			out = append(out, VariantCtor{Index: i})
		}
		return out

	case typesystem.TChar:
		// The two Unicode scalar value ranges, excluding surrogates.
		return []Ctor{
			IntRange{Lo: 0x0000, Hi: 0xD7FF, Ty: ty},
			IntRange{Lo: 0xE000, Hi: 0x10FFFF, Ty: ty},
		}

	case typesystem.TInt:
		return []Ctor{IntRange{Lo: 0, Hi: maxUnsigned(t.Bits), Ty: ty}}

	default:
		if cx.isUninhabited(ty) {
			return nil
		}
		return []Ctor{Single{}}
	}
}

// IsUseful decides U(matrix, v): whether some value matches the row v but
// no row of the matrix. Exhaustiveness and reachability both reduce to it.
//
// Empty types make the zero-row base case subtle: with no rows left we do
// not succeed immediately, we keep recursing over columns so that a column
// of an uninhabited type (which has no constructors to try) can falsify
// usefulness.
func IsUseful(cx *MatchCtx, matrix *Matrix, v PatStack, pref WitnessPreference) Usefulness {
	debug.Matchf("is_useful(%s, %s)", matrix, v)

	if v.IsEmpty() {
		if len(matrix.Rows()) == 0 {
			return newUseful(pref)
		}
		return NotUseful{}
	}

	for _, row := range matrix.Rows() {
		if row.Len() != v.Len() {
			diagnostics.Bugf("matrix row width %d does not match %d", row.Len(), v.Len())
		}
	}

	// Columns of private fields carry the error placeholder type so that
	// inhabitedness cannot be observed through them. When every pattern
	// in the column is a wildcard the placeholder suffices; a non-error
	// head type, if any exists, gives the real type to specialize on.
	ty := v.Head().Ty
	for _, row := range matrix.Rows() {
		if !typesystem.IsErr(row.Head().Ty) {
			ty = row.Head().Ty
			break
		}
	}

	vCtors := v.headCtors(cx)

	if cx.isNonExhaustiveVariant(v.Head()) && !typesystem.IsLocal(ty, cx.Module) {
		hasWild := false
		for _, c := range vCtors {
			if isWildcard(c) {
				hasWild = true
				break
			}
		}
		if !hasWild {
			// A variant with hidden fields can never be matched
			// exhaustively from the outside, so the arm is reachable
			// without needing a witness.
			return Useful{}
		}
	}

	matrixHeadCtors := matrix.headCtors(cx)

	for _, vc := range vCtors {
		for _, c := range splitMetaCtor(cx, vc, ty, matrixHeadCtors) {
			if res := isUsefulSpecialized(cx, matrix, v, c, ty, pref); res.IsUseful() {
				return res
			}
		}
	}
	return NotUseful{}
}

// isUsefulSpecialized is U(S(c, matrix), S(c, v)) lifted back through c.
func isUsefulSpecialized(
	cx *MatchCtx,
	matrix *Matrix,
	v PatStack,
	ctor Ctor,
	ty typesystem.Type,
	pref WitnessPreference,
) Usefulness {
	debug.Matchf("is_useful_specialized(%s, %s, %s)", v, ctor, ty)

	wilds := wildcardSubpatterns(cx, ctor, ty)
	specMatrix := matrix.specialize(cx, ctor, wilds)
	for _, sv := range v.specialize(cx, ctor, wilds) {
		res := IsUseful(cx, specMatrix, sv, pref)
		res = applyConstructor(cx, res, ctor, ty)
		if res.IsUseful() {
			return res
		}
	}
	return NotUseful{}
}
