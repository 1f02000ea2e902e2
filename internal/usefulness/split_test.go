package usefulness

import (
	"testing"

	"github.com/funvibe/patcheck/internal/typesystem"
)

func TestSplitIntRangeBorders(t *testing.T) {
	cx := NewMatchCtx("crate", nil)
	ty := typesystem.TInt{Bits: 8}
	full := IntRange{Lo: 0, Hi: 255, Ty: ty}

	heads := []Ctor{
		IntRange{Lo: 0, Hi: 2, Ty: ty},
		IntRange{Lo: 3, Hi: 4, Ty: ty},
	}
	got := splitMetaCtor(cx, full, ty, heads)
	want := []IntRange{
		{Lo: 0, Hi: 2, Ty: ty},
		{Lo: 3, Hi: 4, Ty: ty},
		{Lo: 5, Hi: 255, Ty: ty},
	}
	if len(got) != len(want) {
		t.Fatalf("split into %d classes %v, want %d", len(got), got, len(want))
	}
	for i, w := range want {
		if got[i] != Ctor(w) {
			t.Errorf("class %d = %v, want %v", i, got[i], w)
		}
	}

	// Overlapping heads cut the range at every border.
	heads = []Ctor{
		IntRange{Lo: 0, Hi: 10, Ty: ty},
		IntRange{Lo: 5, Hi: 20, Ty: ty},
	}
	got = splitMetaCtor(cx, full, ty, heads)
	want = []IntRange{
		{Lo: 0, Hi: 4, Ty: ty},
		{Lo: 5, Hi: 10, Ty: ty},
		{Lo: 11, Hi: 20, Ty: ty},
		{Lo: 21, Hi: 255, Ty: ty},
	}
	if len(got) != len(want) {
		t.Fatalf("split into %d classes %v, want %d", len(got), got, len(want))
	}
	for i, w := range want {
		if got[i] != Ctor(w) {
			t.Errorf("class %d = %v, want %v", i, got[i], w)
		}
	}

	// The class count is driven by the heads, not the domain size.
	wide := typesystem.TInt{Bits: 64}
	full64 := IntRange{Lo: 0, Hi: maxUnsigned(64), Ty: wide}
	got = splitMetaCtor(cx, full64, wide, []Ctor{IntRange{Lo: 42, Hi: 42, Ty: wide}})
	if len(got) != 3 {
		t.Errorf("split into %d classes %v, want 3", len(got), got)
	}
}

func TestSplitIntRangeNotExhaustive(t *testing.T) {
	cx := NewMatchCtx("crate", nil)
	ty := typesystem.TInt{Bits: 64, PtrSized: true}
	full := IntRange{Lo: 0, Hi: maxUnsigned(64), Ty: ty}

	got := splitMetaCtor(cx, full, ty, []Ctor{IntRange{Lo: 0, Hi: 10, Ty: ty}})
	if len(got) != 1 || got[0] != Ctor(full) {
		t.Errorf("pointer-sized range should not split, got %v", got)
	}
}

func TestSplitVarSlice(t *testing.T) {
	cx := NewMatchCtx("crate", nil)
	ty := typesystem.TSlice{Elem: typesystem.TBool{}}

	// Fixed lengths 1 and 3 force individual classes up to length 3,
	// then one open class.
	got := splitMetaCtor(cx, VarSlice{}, ty, []Ctor{FixedSlice{Len: 1}, FixedSlice{Len: 3}})
	want := []Ctor{
		FixedSlice{Len: 0},
		FixedSlice{Len: 1},
		FixedSlice{Len: 2},
		FixedSlice{Len: 3},
		VarSlice{Prefix: 4, Suffix: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("split into %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("class %d = %v, want %v", i, got[i], want[i])
		}
	}

	// Variable-length heads widen the residual class instead.
	got = splitMetaCtor(cx, VarSlice{Prefix: 1, Suffix: 1}, ty, []Ctor{VarSlice{Prefix: 2, Suffix: 1}})
	want = []Ctor{FixedSlice{Len: 2}, VarSlice{Prefix: 2, Suffix: 1}}
	if len(got) != len(want) {
		t.Fatalf("split into %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("class %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSubtractVarSlice(t *testing.T) {
	// A used variable-length slice caps the family; used fixed lengths
	// punch holes below the cap.
	used := []Ctor{FixedSlice{Len: 1}, FixedSlice{Len: 3}, VarSlice{Prefix: 3, Suffix: 3}}
	got := subtractMetaCtor(VarSlice{}, used)
	want := []Ctor{FixedSlice{Len: 0}, FixedSlice{Len: 2}, FixedSlice{Len: 4}, FixedSlice{Len: 5}}
	if len(got) != len(want) {
		t.Fatalf("subtract = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %v, want %v", i, got[i], want[i])
		}
	}

	// Without a cap, a trailing open class survives.
	got = subtractMetaCtor(VarSlice{}, []Ctor{FixedSlice{Len: 1}})
	want = []Ctor{FixedSlice{Len: 0}, VarSlice{Prefix: 2, Suffix: 0}}
	if len(got) != len(want) {
		t.Fatalf("subtract = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %v, want %v", i, got[i], want[i])
		}
	}

	// A cap at or below the family start removes everything.
	if got := subtractMetaCtor(VarSlice{Prefix: 2, Suffix: 2}, []Ctor{VarSlice{Prefix: 1, Suffix: 1}}); len(got) != 0 {
		t.Errorf("capped family should be empty, got %v", got)
	}
}

func TestSubtractBaseCtors(t *testing.T) {
	if got := subtractMetaCtor(VariantCtor{Index: 1}, []Ctor{VariantCtor{Index: 0}}); len(got) != 1 {
		t.Errorf("different variants must not cancel, got %v", got)
	}
	if got := subtractMetaCtor(VariantCtor{Index: 1}, []Ctor{VariantCtor{Index: 1}}); len(got) != 0 {
		t.Errorf("same variant must cancel, got %v", got)
	}
	if got := subtractMetaCtor(FixedSlice{Len: 2}, []Ctor{VarSlice{Prefix: 1, Suffix: 1}}); len(got) != 0 {
		t.Errorf("a covering var-slice must cancel a fixed length, got %v", got)
	}
	if got := subtractMetaCtor(FixedSlice{Len: 1}, []Ctor{VarSlice{Prefix: 1, Suffix: 1}}); len(got) != 1 {
		t.Errorf("a longer var-slice must not cancel a shorter fixed length, got %v", got)
	}
}

func TestMissingCtors(t *testing.T) {
	all := []Ctor{VariantCtor{Index: 0}, VariantCtor{Index: 1}, VariantCtor{Index: 2}}

	m := NewMissingCtors(all, []Ctor{VariantCtor{Index: 1}})
	if m.IsEmpty() {
		t.Errorf("variants 0 and 2 should be missing")
	}
	missing := m.Missing()
	if len(missing) != 2 || missing[0] != Ctor(VariantCtor{Index: 0}) || missing[1] != Ctor(VariantCtor{Index: 2}) {
		t.Errorf("missing = %v, want variants 0 and 2", missing)
	}

	m = NewMissingCtors(all, all)
	if !m.IsEmpty() {
		t.Errorf("fully used constructor set should be empty, missing %v", m.Missing())
	}
}

func TestSplitWildcardOpenTypes(t *testing.T) {
	cx := NewMatchCtx("crate", nil)

	open := &typesystem.TData{
		Name:          "Event",
		Module:        "upstream",
		IsEnum:        true,
		NonExhaustive: true,
		Variants:      []*typesystem.Variant{{Name: "Open"}},
	}
	got := splitMetaCtor(cx, Wildcard{}, open, []Ctor{VariantCtor{Index: 0}})
	if len(got) != 1 {
		t.Fatalf("split = %v, want a single class", got)
	}
	if _, ok := got[0].(Wildcard); !ok {
		t.Errorf("foreign non-exhaustive enum should keep the wildcard, got %v", got)
	}

	// Local to the declaring module the enum closes up again.
	cx = NewMatchCtx("upstream", nil)
	got = splitMetaCtor(cx, Wildcard{}, open, []Ctor{VariantCtor{Index: 0}})
	if len(got) != 1 {
		t.Fatalf("split = %v, want a single class", got)
	}
	if _, ok := got[0].(VariantCtor); !ok {
		t.Errorf("local split should enumerate the variants, got %v", got)
	}
}
