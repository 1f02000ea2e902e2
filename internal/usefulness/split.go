package usefulness

import (
	"math"
	"sort"

	"github.com/funvibe/patcheck/internal/debug"
	"github.com/funvibe/patcheck/internal/diagnostics"
	"github.com/funvibe/patcheck/internal/typesystem"
)

// border marks the boundary just before a value, or the boundary past the
// largest encodable value. Two adjacent borders delimit one equivalence
// class of integers.
type border struct {
	afterMax bool
	val      uint64
}

func borderLess(a, b border) bool {
	if a.afterMax != b.afterMax {
		return b.afterMax
	}
	return a.val < b.val
}

func rangeBorders(r IntRange) []border {
	from := border{val: r.Lo}
	if r.Hi == math.MaxUint64 {
		return []border{from, {afterMax: true}}
	}
	return []border{from, {val: r.Hi + 1}}
}

// splitMetaCtor refines the meta-constructor c into equivalence classes
// relative to the constructors appearing at the head of the matrix: within
// one returned class, every value interacts with the matrix rows
// identically, so usefulness only needs one probe per class.
//
// headCtors must not contain wildcards; the matrix strips them before
// calling in.
func splitMetaCtor(cx *MatchCtx, c Ctor, ty typesystem.Type, headCtors []Ctor) []Ctor {
	debug.Splitf("split %s over %s against %d head ctors", c, ty, len(headCtors))
	switch ct := c.(type) {
	case Single, VariantCtor, Value, FixedSlice:
		// Base constructors are already a single class.
		return []Ctor{c}

	case IntRange:
		if !shouldTreatRangeExhaustively(cx, ty) {
			return []Ctor{c}
		}
		return splitIntRange(ct, headCtors)

	case ConstRange:
		// Float and string ranges are opaque: never split.
		return []Ctor{c}

	case VarSlice:
		return splitVarSlice(ct, headCtors)

	case Wildcard:
		return splitWildcard(cx, ty, headCtors)

	default:
		diagnostics.Bugf("shouldn't try to split constructor %s", c)
		return nil
	}
}

// splitIntRange cuts the interval at every border contributed by an
// overlapping head range, so that each piece is either disjoint from or
// contained in every head range.
func splitIntRange(self IntRange, headCtors []Ctor) []Ctor {
	var borders []border
	for _, hc := range headCtors {
		hr, ok := intRangeFromCtor(hc)
		if !ok {
			continue
		}
		if isect, ok := self.Intersection(hr, true); ok {
			borders = append(borders, rangeBorders(isect)...)
		}
	}
	borders = append(borders, rangeBorders(self)...)
	sort.Slice(borders, func(i, j int) bool { return borderLess(borders[i], borders[j]) })

	var out []Ctor
	for i := 0; i+1 < len(borders); i++ {
		lo, hi := borders[i], borders[i+1]
		switch {
		case lo.afterMax:
		case hi.afterMax:
			out = append(out, IntRange{Lo: lo.val, Hi: math.MaxUint64, Ty: self.Ty})
		case lo.val < hi.val:
			out = append(out, IntRange{Lo: lo.val, Hi: hi.val - 1, Ty: self.Ty})
		}
	}
	return out
}

// splitVarSlice splits the open-ended family of lengths covered by self
// into the individual lengths the matrix can distinguish plus one residual
// variable-length class covering everything longer.
//
// A length L is "sufficiently large" once it exceeds every fixed-length
// head pattern and leaves the maximal head prefix and suffix disjoint;
// all larger lengths then behave identically.
func splitVarSlice(self VarSlice, headCtors []Ctor) []Ctor {
	maxPrefix, maxSuffix := self.Prefix, self.Suffix
	maxFixed := 0
	for _, hc := range headCtors {
		switch h := hc.(type) {
		case FixedSlice:
			if h.Len > maxFixed {
				maxFixed = h.Len
			}
		case VarSlice:
			if h.Prefix > maxPrefix {
				maxPrefix = h.Prefix
			}
			if h.Suffix > maxSuffix {
				maxSuffix = h.Suffix
			}
		}
	}
	if maxFixed+1 >= maxPrefix+maxSuffix {
		if maxFixed+1-maxSuffix > maxPrefix {
			maxPrefix = maxFixed + 1 - maxSuffix
		}
	}

	var out []Ctor
	for l := self.Prefix + self.Suffix; l < maxPrefix+maxSuffix; l++ {
		out = append(out, FixedSlice{Len: l})
	}
	out = append(out, VarSlice{Prefix: maxPrefix, Suffix: maxSuffix})
	return out
}

// splitWildcard decides how a wildcard interacts with the matrix: for
// "open" types it stays a single unmatchable class, for covered types it
// delegates to every constructor of the type, and otherwise it collapses
// the absent constructors into one Missing bag.
func splitWildcard(cx *MatchCtx, ty typesystem.Type, headCtors []Ctor) []Ctor {
	isDeclaredNonExhaustive := !typesystem.IsLocal(ty, cx.Module) &&
		typesystem.IsNonExhaustiveEnum(ty)

	allCtors := allConstructors(cx, ty)

	// A type with no constructors here but not actually uninhabited is
	// empty only behind a privacy boundary, so outside code must still
	// write a wildcard arm for it.
	isPrivatelyEmpty := len(allCtors) == 0 && !cx.isUninhabited(ty)

	isNonExhaustive := isPrivatelyEmpty || isDeclaredNonExhaustive ||
		(typesystem.IsPtrSizedInt(ty) && !cx.Opts.PreciseIntMatching)

	if isNonExhaustive {
		// Pretend the type has an extra constructor nothing can name.
		return []Ctor{Wildcard{}}
	}

	missing := NewMissingCtors(allCtors, headCtors)
	debug.Splitf("wildcard over %s: missing empty=%v", ty, missing.IsEmpty())

	if missing.IsEmpty() {
		// Every constructor appears in the matrix: try them one by one.
		// None of them is a wildcard, so this cannot recurse forever.
		var out []Ctor
		for _, ac := range allCtors {
			out = append(out, splitMetaCtor(cx, ac, ty, headCtors)...)
		}
		return out
	}
	if len(headCtors) == 0 {
		// Nothing in the head column distinguishes constructors, so the
		// wildcard is already a single class.
		return []Ctor{Wildcard{}}
	}
	return []Ctor{Missing{Set: missing}}
}

// subtractMetaCtor computes the set difference c \ used, as a list of
// constructors. used must not contain wildcards.
func subtractMetaCtor(c Ctor, used []Ctor) []Ctor {
	for _, u := range used {
		if _, ok := u.(Wildcard); ok {
			diagnostics.Bugf("wildcard in used constructors")
		}
	}
	switch ct := c.(type) {
	case Single, VariantCtor, Value, ConstRange:
		// These only intersect another constructor when equal to it.
		for _, u := range used {
			if ctorsEqual(u, c) {
				return nil
			}
		}
		return []Ctor{c}

	case FixedSlice:
		for _, u := range used {
			switch h := u.(type) {
			case FixedSlice:
				if h.Len == ct.Len {
					return nil
				}
			case VarSlice:
				if h.Prefix+h.Suffix <= ct.Len {
					return nil
				}
			}
		}
		return []Ctor{c}

	case VarSlice:
		return subtractVarSlice(ct, used)

	case IntRange:
		remaining := []IntRange{ct}
		for _, u := range used {
			ur, ok := intRangeFromCtor(u)
			if !ok {
				continue
			}
			var next []IntRange
			for _, r := range remaining {
				next = append(next, ur.SubtractFrom(r)...)
			}
			remaining = next
			if len(remaining) == 0 {
				break
			}
		}
		out := make([]Ctor, len(remaining))
		for i, r := range remaining {
			out[i] = r
		}
		return out

	default:
		diagnostics.Bugf("shouldn't try to subtract constructor %s", c)
		return nil
	}
}

// subtractVarSlice removes the lengths covered by used from the open range
// of lengths self covers. Any used variable-length slice caps the range;
// used fixed lengths punch individual holes in it.
func subtractVarSlice(self VarSlice, used []Ctor) []Ctor {
	selfLen := self.Prefix + self.Suffix

	maxLen, capped := 0, false
	for _, u := range used {
		if h, ok := u.(VarSlice); ok {
			l := h.Prefix + h.Suffix
			if !capped || l < maxLen {
				maxLen = l
			}
			capped = true
		}
	}
	if capped && maxLen <= selfLen {
		return nil
	}

	usedFixed := make(map[int]bool)
	for _, u := range used {
		if h, ok := u.(FixedSlice); ok {
			usedFixed[h.Len] = true
		}
	}

	var out []Ctor
	if capped {
		for l := selfLen; l < maxLen; l++ {
			if !usedFixed[l] {
				out = append(out, FixedSlice{Len: l})
			}
		}
		return out
	}

	// Past the largest used fixed length every length survives, so one
	// trailing variable-length constructor stands for all of them.
	minFree := selfLen
	for l := range usedFixed {
		if l+1 > minFree {
			minFree = l + 1
		}
	}
	for l := selfLen; l < minFree; l++ {
		if !usedFixed[l] {
			out = append(out, FixedSlice{Len: l})
		}
	}
	out = append(out, VarSlice{Prefix: minFree - self.Suffix, Suffix: self.Suffix})
	return out
}

// MissingCtors is the lazily evaluated set difference between all
// constructors of a type and the ones a matrix's head column uses.
// Computing the difference is only needed when a witness must name the
// absent constructors; emptiness alone short-circuits.
type MissingCtors struct {
	all  []Ctor
	used []Ctor
}

func NewMissingCtors(all, used []Ctor) *MissingCtors {
	return &MissingCtors{all: all, used: used}
}

// IsEmpty reports whether every constructor of the type is used.
func (m *MissingCtors) IsEmpty() bool {
	for _, c := range m.all {
		if len(subtractMetaCtor(c, m.used)) > 0 {
			return false
		}
	}
	return true
}

// Missing materializes the absent constructors.
func (m *MissingCtors) Missing() []Ctor {
	var out []Ctor
	for _, c := range m.all {
		out = append(out, subtractMetaCtor(c, m.used)...)
	}
	return out
}
