// Package pat is the internal pattern tree the match checking engine
// operates on. Patterns arrive here already lowered and type-checked:
// every subpattern list is consistent with the arity of its type, bindings
// never restrict values, and or-alternatives share a type.
//
// Patterns are immutable once built. Subtrees are shared freely by
// reference; fresh patterns synthesized during an analysis (wildcards,
// witnesses) live in a per-invocation Arena and die with it.
package pat

import (
	"github.com/funvibe/patcheck/internal/typesystem"
)

// RangeEnd says whether a range pattern includes its upper bound.
type RangeEnd int

const (
	Included RangeEnd = iota
	Excluded
)

func (e RangeEnd) String() string {
	if e == Excluded {
		return ".."
	}
	return "..="
}

// Pat is one pattern node, checked against the type Ty.
type Pat struct {
	Ty   typesystem.Type
	Kind Kind
}

// Kind is the interface for pattern shapes.
type Kind interface {
	isPatKind()
}

// Wild matches anything: `_`.
type Wild struct{}

func (Wild) isPatKind() {}

// Binding matches like its subpattern and names the value. A binding with
// no subpattern matches anything.
type Binding struct {
	Name string
	Sub  *Pat // may be nil
}

func (Binding) isPatKind() {}

// Constant matches one literal value.
type Constant struct {
	Value Const
}

func (Constant) isPatKind() {}

// Range matches a contiguous span of values, `lo..=hi` or `lo..hi`.
type Range struct {
	Lo, Hi Const
	End    RangeEnd
}

func (Range) isPatKind() {}

// FieldPat pairs a field index with the pattern for that field.
type FieldPat struct {
	Field int
	Pat   *Pat
}

// Leaf matches the single shape of a struct or tuple type. Subpatterns may
// be partial; absent fields match anything.
type Leaf struct {
	Subpatterns []FieldPat
}

func (Leaf) isPatKind() {}

// Variant matches one enum variant by index.
type Variant struct {
	Index       int
	Subpatterns []FieldPat
}

func (Variant) isPatKind() {}

// Deref transparently unwraps a reference/box.
type Deref struct {
	Sub *Pat
}

func (Deref) isPatKind() {}

// Slice matches a sequence: fixed-length when HasRest is false, otherwise
// any length >= len(Prefix)+len(Suffix).
type Slice struct {
	Prefix  []*Pat
	HasRest bool
	Suffix  []*Pat
}

func (Slice) isPatKind() {}

// Or matches when any alternative matches.
type Or struct {
	Alternatives []*Pat
}

func (Or) isPatKind() {}

// Arena owns every pattern synthesized during one analysis invocation.
// It is not safe for concurrent use; concurrent invocations must each have
// their own arena.
type Arena struct {
	pats []*Pat
}

func NewArena() *Arena {
	return &Arena{}
}

// Alloc copies p into the arena and returns the owned node.
func (a *Arena) Alloc(p Pat) *Pat {
	q := new(Pat)
	*q = p
	a.pats = append(a.pats, q)
	return q
}

// Wild allocates a fresh wildcard of the given type.
func (a *Arena) Wild(ty typesystem.Type) *Pat {
	return a.Alloc(Pat{Ty: ty, Kind: Wild{}})
}

// Len reports how many patterns the arena owns, for tests and tracing.
func (a *Arena) Len() int {
	return len(a.pats)
}
