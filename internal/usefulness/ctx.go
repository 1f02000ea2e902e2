// Package usefulness decides exhaustiveness and reachability for the
// pattern rows of one match expression.
//
// The algorithm is a generalization of Maranget's usefulness check: the
// predicate U(M, v) holds when the row v matches at least one value that no
// row of the matrix M matches. Exhaustiveness of M is the negation of
// U(M, [_]); reachability of an arm is U of that arm against the rows
// before it. Meta-constructors (wildcards, integer intervals,
// variable-length sequence classes, missing-constructor bags) keep the
// recursion finite on unbounded domains: splitting refines them into
// equivalence classes whose size is bounded by the matrix's row count,
// never by the domain's cardinality.
package usefulness

import (
	"github.com/funvibe/patcheck/internal/config"
	"github.com/funvibe/patcheck/internal/pat"
	"github.com/funvibe/patcheck/internal/typesystem"
)

// MatchCtx carries everything one analysis invocation needs: the module
// the match occurs in (inhabitedness and field visibility are
// module-relative), the arena owning synthesized patterns, and the engine
// options. A MatchCtx must not be shared between concurrent invocations.
type MatchCtx struct {
	Module string
	Arena  *pat.Arena
	Opts   *config.Options
}

// NewMatchCtx builds a context for checking matches located in module.
// A nil opts selects the defaults.
func NewMatchCtx(module string, opts *config.Options) *MatchCtx {
	if opts == nil {
		opts = config.Default()
	}
	return &MatchCtx{
		Module: module,
		Arena:  pat.NewArena(),
		Opts:   opts,
	}
}

// isUninhabited reports whether ty counts as empty for this analysis.
// Without the ExhaustivePatterns option every type is treated as
// inhabited, mirroring the guarded rollout of empty-type reasoning.
func (cx *MatchCtx) isUninhabited(ty typesystem.Type) bool {
	if !cx.Opts.ExhaustivePatterns {
		return false
	}
	return typesystem.IsUninhabitedFrom(ty, cx.Module)
}

// isNonExhaustiveVariant reports whether p matches a variant whose field
// list is declared open.
func (cx *MatchCtx) isNonExhaustiveVariant(p *pat.Pat) bool {
	k, ok := p.Kind.(pat.Variant)
	if !ok {
		return false
	}
	d, ok := p.Ty.(*typesystem.TData)
	if !ok || k.Index >= len(d.Variants) {
		return false
	}
	return d.Variants[k.Index].NonExhaustiveFields
}
