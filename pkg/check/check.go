// Package check is the public surface of the match analysis engine. It
// takes the arms of one match expression, already lowered and typed, and
// reports which arms are unreachable and which values no arm covers.
package check

import (
	"fmt"
	"strings"

	"github.com/funvibe/patcheck/internal/config"
	"github.com/funvibe/patcheck/internal/diagnostics"
	"github.com/funvibe/patcheck/internal/pat"
	"github.com/funvibe/patcheck/internal/typesystem"
	"github.com/funvibe/patcheck/internal/usefulness"
)

// Arm is one arm of a match expression. A guarded arm only matches when
// its guard evaluates true, which the analysis cannot see; such arms are
// checked for reachability but never counted as covering anything.
type Arm struct {
	Pat      *pat.Pat
	HasGuard bool
}

// Report is the outcome for one match expression.
type Report struct {
	// Unreachable lists the indices of arms that can never match, in
	// arm order.
	Unreachable []int
	// Witnesses are example values no arm matches. Empty means the
	// match is exhaustive.
	Witnesses []*pat.Pat
}

// Exhaustive reports whether every value of the scrutinee type is matched
// by some unguarded arm.
func (r *Report) Exhaustive() bool {
	return len(r.Witnesses) == 0
}

// Diagnostics renders the report as compiler-style diagnostics: one per
// unreachable arm, then one for missing coverage. A nil opts selects the
// defaults.
func (r *Report) Diagnostics(opts *config.Options) []*diagnostics.DiagnosticError {
	if opts == nil {
		opts = config.Default()
	}
	var out []*diagnostics.DiagnosticError
	for _, i := range r.Unreachable {
		out = append(out, diagnostics.Errorf("unreachable-pattern", "arm %d is unreachable", i+1))
	}
	if !r.Exhaustive() {
		noun := "pattern"
		if len(r.Witnesses) > 1 {
			noun = "patterns"
		}
		out = append(out, diagnostics.Errorf("non-exhaustive-match",
			"%s %s not covered", noun, FormatWitnesses(r.Witnesses, opts.MaxWitnesses)))
	}
	return out
}

// CheckMatch analyzes the arms of one match over a scrutinee of the given
// type, observed from module. A nil opts selects the defaults.
func CheckMatch(module string, scrutinee typesystem.Type, arms []Arm, opts *config.Options) (report *Report, err error) {
	defer diagnostics.RecoverInternal(&err)

	cx := usefulness.NewMatchCtx(module, opts)
	report = &Report{}

	seen := usefulness.NewMatrix()
	for i, arm := range arms {
		v := usefulness.FromPattern(expandPattern(cx, arm.Pat))
		res := usefulness.IsUseful(cx, seen, v, usefulness.LeaveOutWitness)
		if !res.IsUseful() {
			report.Unreachable = append(report.Unreachable, i)
		}
		// A guard can reject any value at runtime, so a guarded arm
		// contributes nothing to coverage.
		if !arm.HasGuard {
			seen.Push(v)
		}
	}

	probe := usefulness.FromPattern(cx.Arena.Wild(scrutinee))
	res := usefulness.IsUseful(cx, seen, probe, usefulness.ConstructWitness)
	if uw, ok := res.(usefulness.UsefulWithWitness); ok {
		for _, w := range uw.Witnesses {
			report.Witnesses = append(report.Witnesses, w.SinglePattern())
		}
	}
	return report, nil
}

// expandPattern rewrites away the forms the engine does not want to see:
// a binding with a subpattern matches exactly like the subpattern, so the
// binding layer is dropped. Untouched subtrees are shared, not copied.
func expandPattern(cx *usefulness.MatchCtx, p *pat.Pat) *pat.Pat {
	switch k := p.Kind.(type) {
	case pat.Binding:
		if k.Sub == nil {
			return p
		}
		return expandPattern(cx, k.Sub)

	case pat.Leaf:
		subs, changed := expandFields(cx, k.Subpatterns)
		if !changed {
			return p
		}
		return cx.Arena.Alloc(pat.Pat{Ty: p.Ty, Kind: pat.Leaf{Subpatterns: subs}})

	case pat.Variant:
		subs, changed := expandFields(cx, k.Subpatterns)
		if !changed {
			return p
		}
		return cx.Arena.Alloc(pat.Pat{Ty: p.Ty, Kind: pat.Variant{Index: k.Index, Subpatterns: subs}})

	case pat.Deref:
		sub := expandPattern(cx, k.Sub)
		if sub == k.Sub {
			return p
		}
		return cx.Arena.Alloc(pat.Pat{Ty: p.Ty, Kind: pat.Deref{Sub: sub}})

	case pat.Slice:
		prefix, pc := expandList(cx, k.Prefix)
		suffix, sc := expandList(cx, k.Suffix)
		if !pc && !sc {
			return p
		}
		return cx.Arena.Alloc(pat.Pat{
			Ty:   p.Ty,
			Kind: pat.Slice{Prefix: prefix, HasRest: k.HasRest, Suffix: suffix},
		})

	case pat.Or:
		alts, changed := expandList(cx, k.Alternatives)
		if !changed {
			return p
		}
		return cx.Arena.Alloc(pat.Pat{Ty: p.Ty, Kind: pat.Or{Alternatives: alts}})

	default:
		return p
	}
}

func expandFields(cx *usefulness.MatchCtx, subs []pat.FieldPat) ([]pat.FieldPat, bool) {
	changed := false
	out := make([]pat.FieldPat, len(subs))
	for i, fp := range subs {
		q := expandPattern(cx, fp.Pat)
		if q != fp.Pat {
			changed = true
		}
		out[i] = pat.FieldPat{Field: fp.Field, Pat: q}
	}
	if !changed {
		return subs, false
	}
	return out, true
}

func expandList(cx *usefulness.MatchCtx, ps []*pat.Pat) ([]*pat.Pat, bool) {
	changed := false
	out := make([]*pat.Pat, len(ps))
	for i, q := range ps {
		out[i] = expandPattern(cx, q)
		if out[i] != q {
			changed = true
		}
	}
	if !changed {
		return ps, false
	}
	return out, true
}

// FormatWitnesses renders missing values for a diagnostic, showing at most
// max examples: "`None` and `Some(false)` not covered". A non-positive
// max shows everything.
func FormatWitnesses(ws []*pat.Pat, max int) string {
	if len(ws) == 0 {
		return ""
	}
	shown := ws
	rest := 0
	if max > 0 && len(ws) > max {
		shown = ws[:max]
		rest = len(ws) - max
	}
	parts := make([]string, len(shown))
	for i, w := range shown {
		parts[i] = "`" + w.String() + "`"
	}
	switch {
	case rest > 0:
		return fmt.Sprintf("%s and %d more", strings.Join(parts, ", "), rest)
	case len(parts) == 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}
