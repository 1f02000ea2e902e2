package usefulness

import (
	"fmt"
	"strings"

	"github.com/funvibe/patcheck/internal/diagnostics"
	"github.com/funvibe/patcheck/internal/pat"
	"github.com/funvibe/patcheck/internal/typesystem"
)

// PatStack is one row of the matrix: a list of patterns matched against
// the same number of value columns. Specialization consumes the head
// pattern and replaces it with the constructor's arguments.
type PatStack struct {
	pats []*pat.Pat
}

// FromPattern makes a one-column row.
func FromPattern(p *pat.Pat) PatStack {
	return PatStack{pats: []*pat.Pat{p}}
}

func fromPatterns(ps []*pat.Pat) PatStack {
	return PatStack{pats: ps}
}

func (s PatStack) IsEmpty() bool { return len(s.pats) == 0 }
func (s PatStack) Len() int      { return len(s.pats) }

func (s PatStack) Head() *pat.Pat {
	if len(s.pats) == 0 {
		diagnostics.Bugf("head of an empty pattern stack")
	}
	return s.pats[0]
}

// headCtors lists the constructors the head pattern covers. Usually one;
// or-patterns contribute one per alternative.
func (s PatStack) headCtors(cx *MatchCtx) []Ctor {
	return patConstructors(cx, s.Head())
}

// specialize computes S(ctor, s): the rows this row contributes to the
// specialized matrix. wilds are the typed wildcards standing for the
// constructor's arguments. The result never aliases s's backing array.
func (s PatStack) specialize(cx *MatchCtx, ctor Ctor, wilds []*pat.Pat) []PatStack {
	heads := specializeOnePattern(cx, s.Head(), ctor, wilds)
	out := make([]PatStack, 0, len(heads))
	for _, h := range heads {
		row := make([]*pat.Pat, 0, len(h.pats)+len(s.pats)-1)
		row = append(row, h.pats...)
		row = append(row, s.pats[1:]...)
		out = append(out, fromPatterns(row))
	}
	return out
}

func (s PatStack) String() string {
	parts := make([]string, len(s.pats))
	for i, p := range s.pats {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Matrix is the stack of pattern rows already seen; the usefulness
// predicate asks whether a new row matches anything the matrix misses.
type Matrix struct {
	rows []PatStack
}

func NewMatrix() *Matrix {
	return &Matrix{}
}

func (m *Matrix) Push(row PatStack) {
	m.rows = append(m.rows, row)
}

func (m *Matrix) Rows() []PatStack { return m.rows }

// headCtors collects the non-wildcard constructors covered by the first
// column. Wildcards are dropped: they constrain nothing.
func (m *Matrix) headCtors(cx *MatchCtx) []Ctor {
	var out []Ctor
	for _, row := range m.rows {
		for _, c := range row.headCtors(cx) {
			if !isWildcard(c) {
				out = append(out, c)
			}
		}
	}
	return out
}

// specialize computes S(ctor, m) row by row.
func (m *Matrix) specialize(cx *MatchCtx, ctor Ctor, wilds []*pat.Pat) *Matrix {
	out := NewMatrix()
	for _, row := range m.rows {
		for _, r := range row.specialize(cx, ctor, wilds) {
			out.Push(r)
		}
	}
	return out
}

// String renders the matrix as an aligned table, one row per line.
func (m *Matrix) String() string {
	cells := make([][]string, len(m.rows))
	ncols := 0
	for i, row := range m.rows {
		cells[i] = make([]string, len(row.pats))
		for j, p := range row.pats {
			cells[i][j] = p.String()
		}
		if len(row.pats) > ncols {
			ncols = len(row.pats)
		}
	}
	widths := make([]int, ncols)
	for _, row := range cells {
		for j, c := range row {
			if len(c) > widths[j] {
				widths[j] = len(c)
			}
		}
	}
	var b strings.Builder
	b.WriteString("\n")
	for _, row := range cells {
		b.WriteString("+")
		for j, c := range row {
			fmt.Fprintf(&b, " %-*s +", widths[j], c)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// patConstructors lists the constructors a pattern covers: one for most
// patterns, the union of the alternatives for an or-pattern.
func patConstructors(cx *MatchCtx, p *pat.Pat) []Ctor {
	switch k := p.Kind.(type) {
	case pat.Wild, pat.Binding:
		return []Ctor{Wildcard{}}
	case pat.Leaf, pat.Deref:
		return []Ctor{Single{}}
	case pat.Variant:
		return []Ctor{VariantCtor{Index: k.Index}}
	case pat.Constant:
		if r, ok := intRangeFromConst(k.Value, p.Ty); ok {
			return []Ctor{r}
		}
		return []Ctor{Value{V: k.Value}}
	case pat.Range:
		if r, ok := intRangeFromBounds(k.Lo, k.Hi, k.End, p.Ty); ok {
			return []Ctor{r}
		}
		return []Ctor{ConstRange{Lo: k.Lo, Hi: k.Hi, End: k.End}}
	case pat.Slice:
		if arr, ok := p.Ty.(typesystem.TArray); ok && arr.LenKnown {
			return []Ctor{FixedSlice{Len: arr.Len}}
		}
		if k.HasRest {
			return []Ctor{VarSlice{Prefix: len(k.Prefix), Suffix: len(k.Suffix)}}
		}
		return []Ctor{FixedSlice{Len: len(k.Prefix) + len(k.Suffix)}}
	case pat.Or:
		var out []Ctor
		for _, alt := range k.Alternatives {
			out = append(out, patConstructors(cx, alt)...)
		}
		return out
	default:
		diagnostics.Bugf("unhandled pattern kind %T", p.Kind)
		return nil
	}
}

// specializeOnePattern expands p into the argument columns of ctor, or
// into nothing when p cannot match a value built with ctor. An or-pattern
// may expand into several rows, one per matching alternative.
func specializeOnePattern(cx *MatchCtx, p *pat.Pat, ctor Ctor, wilds []*pat.Pat) []PatStack {
	switch ctor.(type) {
	case Wildcard, Missing:
		// Values in these classes are built with constructors no pattern
		// of the column names, so only unconditional patterns match.
		switch k := p.Kind.(type) {
		case pat.Wild, pat.Binding:
			return []PatStack{{}}
		case pat.Or:
			var out []PatStack
			for _, alt := range k.Alternatives {
				out = append(out, specializeOnePattern(cx, alt, ctor, wilds)...)
			}
			return out
		default:
			return nil
		}
	}

	switch k := p.Kind.(type) {
	case pat.Wild, pat.Binding:
		row := make([]*pat.Pat, len(wilds))
		copy(row, wilds)
		return []PatStack{fromPatterns(row)}

	case pat.Variant:
		if vc, ok := ctor.(VariantCtor); ok && vc.Index == k.Index {
			return []PatStack{patternsForVariant(k.Subpatterns, wilds)}
		}
		return nil

	case pat.Leaf:
		return []PatStack{patternsForVariant(k.Subpatterns, wilds)}

	case pat.Deref:
		return []PatStack{FromPattern(k.Sub)}

	case pat.Constant, pat.Range:
		if ctorIntersectsPattern(cx, ctor, p) {
			return []PatStack{{}}
		}
		return nil

	case pat.Slice:
		if !isSliceCtor(ctor) {
			diagnostics.Bugf("unexpected constructor %s for slice pattern", ctor)
		}
		patLen := len(k.Prefix) + len(k.Suffix)
		sliceCount := len(wilds) - patLen
		if sliceCount < 0 {
			return nil
		}
		if sliceCount > 0 && !k.HasRest {
			return nil
		}
		row := make([]*pat.Pat, 0, len(wilds))
		row = append(row, k.Prefix...)
		row = append(row, wilds[len(k.Prefix):len(k.Prefix)+sliceCount]...)
		row = append(row, k.Suffix...)
		return []PatStack{fromPatterns(row)}

	case pat.Or:
		var out []PatStack
		for _, alt := range k.Alternatives {
			out = append(out, specializeOnePattern(cx, alt, ctor, wilds)...)
		}
		return out

	default:
		diagnostics.Bugf("unhandled pattern kind %T", p.Kind)
		return nil
	}
}

// patternsForVariant lines the written subpatterns up with the wildcard
// columns; fields the pattern omits stay wild.
func patternsForVariant(subs []pat.FieldPat, wilds []*pat.Pat) PatStack {
	row := make([]*pat.Pat, len(wilds))
	copy(row, wilds)
	for _, fp := range subs {
		if fp.Field >= len(row) {
			diagnostics.Bugf("field index %d out of range for arity %d", fp.Field, len(row))
		}
		row[fp.Field] = fp.Pat
	}
	return fromPatterns(row)
}

// ctorIntersectsPattern reports whether any value of ctor's class is
// matched by the constant or range pattern p. Splitting guarantees that
// ctor is either inside or outside p, never straddling it.
func ctorIntersectsPattern(cx *MatchCtx, ctor Ctor, p *pat.Pat) bool {
	switch ct := ctor.(type) {
	case Single:
		return true

	case IntRange:
		var pr IntRange
		var ok bool
		switch k := p.Kind.(type) {
		case pat.Constant:
			pr, ok = intRangeFromConst(k.Value, p.Ty)
		case pat.Range:
			pr, ok = intRangeFromBounds(k.Lo, k.Hi, k.End, p.Ty)
		default:
			diagnostics.Bugf("ctorIntersectsPattern called with %T", p.Kind)
		}
		if !ok {
			return false
		}
		exhaustive := shouldTreatRangeExhaustively(cx, p.Ty)
		if _, ok := ct.Intersection(pr, exhaustive); !ok {
			return false
		}
		if !(pr.Lo <= ct.Lo && ct.Hi <= pr.Hi) {
			diagnostics.Bugf("partial overlap after splitting: %s vs %s", ct, pr)
		}
		return true

	case Value, ConstRange:
		// Floats and strings never go through interval splitting, so
		// intersection devolves into the pattern covering the constructor.
		var patLo, patHi pat.Const
		patEnd := pat.Included
		switch k := p.Kind.(type) {
		case pat.Constant:
			patLo, patHi = k.Value, k.Value
		case pat.Range:
			patLo, patHi, patEnd = k.Lo, k.Hi, k.End
		default:
			diagnostics.Bugf("ctorIntersectsPattern called with %T", p.Kind)
		}
		var ctorLo, ctorHi pat.Const
		ctorEnd := pat.Included
		switch cc := ctor.(type) {
		case Value:
			ctorLo, ctorHi = cc.V, cc.V
		case ConstRange:
			ctorLo, ctorHi, ctorEnd = cc.Lo, cc.Hi, cc.End
		}
		orderFrom, ok := pat.Compare(ctorLo, patLo, p.Ty)
		if !ok {
			return false
		}
		orderTo, ok := pat.Compare(ctorHi, patHi, p.Ty)
		if !ok {
			return false
		}
		return orderFrom >= 0 && (orderTo < 0 || (patEnd == ctorEnd && orderTo == 0))

	default:
		diagnostics.Bugf("ctorIntersectsPattern called with constructor %s", ctor)
		return false
	}
}
