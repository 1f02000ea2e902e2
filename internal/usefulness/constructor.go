package usefulness

import (
	"fmt"

	"github.com/funvibe/patcheck/internal/diagnostics"
	"github.com/funvibe/patcheck/internal/pat"
	"github.com/funvibe/patcheck/internal/typesystem"
)

// Ctor identifies one shape a value can take, or a set of such shapes.
//
// Base constructors name exactly one concrete shape: Single (the unique
// shape of a struct/tuple/reference), VariantCtor (one enum variant),
// Value (one literal), FixedSlice (one sequence length). Meta-constructors
// stand for a set of base constructors: IntRange, ConstRange, VarSlice,
// Wildcard, and Missing.
type Ctor interface {
	isCtor()
	String() string
}

// Single is the constructor of all patterns that don't vary by
// constructor: struct, tuple and reference patterns.
type Single struct{}

func (Single) isCtor()        {}
func (Single) String() string { return "Single" }

// VariantCtor is one enum variant, by index into the type's variant list.
type VariantCtor struct {
	Index int
}

func (VariantCtor) isCtor()          {}
func (c VariantCtor) String() string { return fmt.Sprintf("Variant(%d)", c.Index) }

// Value is a single literal value (booleans, floats, strings; integers go
// through IntRange instead).
type Value struct {
	V pat.Const
}

func (Value) isCtor()          {}
func (c Value) String() string { return fmt.Sprintf("Value(%v)", c.V) }

// FixedSlice is the constructor of sequences of exactly Len elements.
type FixedSlice struct {
	Len int
}

func (FixedSlice) isCtor()          {}
func (c FixedSlice) String() string { return fmt.Sprintf("FixedSlice(%d)", c.Len) }

// ConstRange is a range over a non-interval type (floats). Never split.
type ConstRange struct {
	Lo, Hi pat.Const
	End    pat.RangeEnd
}

func (ConstRange) isCtor() {}

func (c ConstRange) String() string {
	return fmt.Sprintf("ConstRange(%v%s%v)", c.Lo, c.End, c.Hi)
}

// VarSlice captures every sequence constructor of length >= Prefix+Suffix.
type VarSlice struct {
	Prefix, Suffix int
}

func (VarSlice) isCtor()          {}
func (c VarSlice) String() string { return fmt.Sprintf("VarSlice(%d, %d)", c.Prefix, c.Suffix) }

// Wildcard captures all constructors of a type.
type Wildcard struct{}

func (Wildcard) isCtor()        {}
func (Wildcard) String() string { return "Wildcard" }

// Missing is a non-empty bag of base constructors absent from a matrix's
// head column, treated as one equivalence class. It appears only as the
// result of splitting Wildcard and is itself never split again.
type Missing struct {
	Set *MissingCtors
}

func (Missing) isCtor()          {}
func (c Missing) String() string { return fmt.Sprintf("Missing(%v)", c.Set.Missing()) }

// isWildcard reports whether c is the wildcard meta-constructor. Asking
// this of a Missing bag is a contract violation: the call sites that care
// must never see one.
func isWildcard(c Ctor) bool {
	switch c.(type) {
	case Wildcard:
		return true
	case Missing:
		diagnostics.Bugf("missing-constructor bag has no wildcard-ness")
		return false
	default:
		return false
	}
}

func isSliceCtor(c Ctor) bool {
	switch c.(type) {
	case FixedSlice, VarSlice:
		return true
	default:
		return false
	}
}

// ctorsEqual is structural identity for base constructors. Comparing a
// Missing bag is a bug, mirroring that such bags are terminal classes.
func ctorsEqual(a, b Ctor) bool {
	if _, ok := a.(Missing); ok {
		diagnostics.Bugf("tried to compare missing-constructor bags for equality")
	}
	if _, ok := b.(Missing); ok {
		diagnostics.Bugf("tried to compare missing-constructor bags for equality")
	}
	return a == b
}

// variantIndex resolves which variant of data the constructor selects.
func variantIndex(c Ctor, data *typesystem.TData) int {
	switch ct := c.(type) {
	case VariantCtor:
		if ct.Index >= len(data.Variants) {
			diagnostics.Bugf("variant index %d out of range for %s", ct.Index, data.Name)
		}
		return ct.Index
	case Single:
		if data.IsEnum {
			diagnostics.Bugf("Single constructor used for enum %s", data.Name)
		}
		return 0
	default:
		diagnostics.Bugf("bad constructor %s for data type %s", c, data.Name)
		return 0
	}
}

// ctorArity is the number of argument columns the constructor unpacks
// into: the field count for structs/variants, the element count for
// sequences, zero for literals and ranges.
func ctorArity(c Ctor, ty typesystem.Type) int {
	switch ct := c.(type) {
	case Single, VariantCtor:
		switch t := ty.(type) {
		case typesystem.TTuple:
			return len(t.Elements)
		case typesystem.TRef:
			return 1
		case *typesystem.TData:
			return len(t.Variants[variantIndex(c, t)].Fields)
		case typesystem.TSlice, typesystem.TArray:
			diagnostics.Bugf("bad constructor %s for sequence type %s", c, ty)
			return 0
		default:
			return 0
		}
	case FixedSlice:
		return ct.Len
	case VarSlice:
		return ct.Prefix + ct.Suffix
	default:
		return 0
	}
}

// wildcardSubpatterns returns one fresh wildcard per argument of the
// constructor, typed by the corresponding field. Fields that are not
// visible from the observing module get the error placeholder type so
// their inhabitedness cannot leak into the analysis.
func wildcardSubpatterns(cx *MatchCtx, c Ctor, ty typesystem.Type) []*pat.Pat {
	var subTys []typesystem.Type
	switch c.(type) {
	case Single, VariantCtor:
		switch t := ty.(type) {
		case typesystem.TTuple:
			subTys = append(subTys, t.Elements...)
		case typesystem.TRef:
			subTys = append(subTys, t.Elem)
		case *typesystem.TData:
			v := t.Variants[variantIndex(c, t)]
			for _, f := range v.Fields {
				if !t.VisibleFrom(f, cx.Module) {
					subTys = append(subTys, typesystem.TErr{})
					continue
				}
				if arr, ok := f.Ty.(typesystem.TArray); ok && !arr.LenKnown {
					subTys = append(subTys, typesystem.TErr{})
					continue
				}
				subTys = append(subTys, f.Ty)
			}
		case typesystem.TSlice, typesystem.TArray:
			diagnostics.Bugf("bad constructor %s for sequence type %s", c, ty)
		}
	case FixedSlice, VarSlice:
		elem := sequenceElem(ty, c)
		for i := 0; i < ctorArity(c, ty); i++ {
			subTys = append(subTys, elem)
		}
	}

	wilds := make([]*pat.Pat, len(subTys))
	for i, st := range subTys {
		wilds[i] = cx.Arena.Wild(st)
	}
	return wilds
}

func sequenceElem(ty typesystem.Type, c Ctor) typesystem.Type {
	switch t := ty.(type) {
	case typesystem.TSlice:
		return t.Elem
	case typesystem.TArray:
		return t.Elem
	default:
		diagnostics.Bugf("bad sequence constructor %s for type %s", c, ty)
		return nil
	}
}

// ctorApply builds the pattern obtained by applying the constructor to the
// given argument patterns: Variant(Option.Some) applied to [false] yields
// Some(false). A Missing bag yields one wildcard-argument pattern per
// missing constructor, which is why the result is a list.
func ctorApply(cx *MatchCtx, c Ctor, ty typesystem.Type, args []*pat.Pat) []*pat.Pat {
	var kind pat.Kind
	switch ct := c.(type) {
	case Single, VariantCtor:
		switch t := ty.(type) {
		case typesystem.TTuple:
			kind = pat.Leaf{Subpatterns: fieldPats(args)}
		case *typesystem.TData:
			if t.IsEnum {
				kind = pat.Variant{Index: variantIndex(c, t), Subpatterns: fieldPats(args)}
			} else {
				kind = pat.Leaf{Subpatterns: fieldPats(args)}
			}
		case typesystem.TRef:
			if len(args) != 1 {
				diagnostics.Bugf("reference pattern with %d subpatterns", len(args))
			}
			kind = pat.Deref{Sub: args[0]}
		default:
			kind = pat.Wild{}
		}
	case FixedSlice:
		kind = pat.Slice{Prefix: args}
	case VarSlice:
		prefix := args[:ct.Prefix]
		suffix := args[ct.Prefix:]
		kind = pat.Slice{Prefix: prefix, HasRest: true, Suffix: suffix}
	case Value:
		kind = pat.Constant{Value: ct.V}
	case ConstRange:
		kind = pat.Range{Lo: ct.Lo, Hi: ct.Hi, End: ct.End}
	case IntRange:
		return []*pat.Pat{ct.toPat(cx)}
	case Wildcard:
		kind = pat.Wild{}
	case Missing:
		var out []*pat.Pat
		for _, missing := range ct.Set.Missing() {
			out = append(out, ctorApplyWildcards(cx, missing, ty)...)
		}
		return out
	default:
		diagnostics.Bugf("cannot apply constructor %s", c)
	}
	return []*pat.Pat{cx.Arena.Alloc(pat.Pat{Ty: ty, Kind: kind})}
}

// ctorApplyWildcards is ctorApply with every argument a fresh wildcard:
// the "matches anything built with this constructor" pattern, e.g. Some(_).
func ctorApplyWildcards(cx *MatchCtx, c Ctor, ty typesystem.Type) []*pat.Pat {
	return ctorApply(cx, c, ty, wildcardSubpatterns(cx, c, ty))
}

func fieldPats(args []*pat.Pat) []pat.FieldPat {
	out := make([]pat.FieldPat, len(args))
	for i, a := range args {
		out[i] = pat.FieldPat{Field: i, Pat: a}
	}
	return out
}
