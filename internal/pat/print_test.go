package pat

import (
	"testing"

	"github.com/funvibe/patcheck/internal/typesystem"
)

func TestPatternString(t *testing.T) {
	a := NewArena()
	boolT := typesystem.TBool{}
	i8 := typesystem.TInt{Bits: 8, Signed: true}

	opt := &typesystem.TData{
		Name:   "Option",
		Module: "core",
		IsEnum: true,
		Variants: []*typesystem.Variant{
			{Name: "None"},
			{Name: "Some", Fields: []typesystem.Field{{Ty: boolT, Public: true}}},
		},
	}
	point := &typesystem.TData{
		Name:   "Point",
		Module: "crate",
		Variants: []*typesystem.Variant{
			{Name: "Point", Fields: []typesystem.Field{
				{Name: "x", Ty: i8, Public: true},
				{Name: "y", Ty: i8, Public: true},
			}},
		},
	}

	tr := a.Alloc(Pat{Ty: boolT, Kind: Constant{Value: BoolVal(true)}})
	wild := a.Wild(boolT)

	tests := []struct {
		name string
		p    *Pat
		want string
	}{
		{"wildcard", wild, "_"},
		{"bool constant", tr, "true"},
		{"binding", a.Alloc(Pat{Ty: boolT, Kind: Binding{Name: "x"}}), "x"},
		{"binding with sub", a.Alloc(Pat{Ty: boolT, Kind: Binding{Name: "x", Sub: tr}}), "x @ true"},
		{
			"signed constant",
			a.Alloc(Pat{Ty: i8, Kind: Constant{Value: IntVal{Bits: 0xFF}}}),
			"-1",
		},
		{
			"signed range",
			a.Alloc(Pat{Ty: i8, Kind: Range{Lo: IntVal{Bits: 0x80}, Hi: IntVal{Bits: 0xFF}, End: Included}}),
			"-128..=-1",
		},
		{
			"exclusive range",
			a.Alloc(Pat{Ty: typesystem.TInt{Bits: 8}, Kind: Range{Lo: IntVal{Bits: 0}, Hi: IntVal{Bits: 10}, End: Excluded}}),
			"0..10",
		},
		{"nullary variant", a.Alloc(Pat{Ty: opt, Kind: Variant{Index: 0}}), "None"},
		{
			"variant with argument",
			a.Alloc(Pat{Ty: opt, Kind: Variant{Index: 1, Subpatterns: []FieldPat{{Field: 0, Pat: tr}}}}),
			"Some(true)",
		},
		{
			"named struct fields",
			a.Alloc(Pat{Ty: point, Kind: Leaf{Subpatterns: []FieldPat{
				{Field: 1, Pat: a.Alloc(Pat{Ty: i8, Kind: Constant{Value: IntVal{Bits: 3}}})},
			}}}),
			"Point { x: _, y: 3 }",
		},
		{
			"tuple with gap",
			a.Alloc(Pat{
				Ty:   typesystem.TTuple{Elements: []typesystem.Type{boolT, boolT}},
				Kind: Leaf{Subpatterns: []FieldPat{{Field: 1, Pat: tr}}},
			}),
			"(_, true)",
		},
		{"deref", a.Alloc(Pat{Ty: typesystem.TRef{Elem: boolT}, Kind: Deref{Sub: tr}}), "&true"},
		{
			"slice with rest",
			a.Alloc(Pat{
				Ty:   typesystem.TSlice{Elem: boolT},
				Kind: Slice{Prefix: []*Pat{tr}, HasRest: true, Suffix: []*Pat{wild}},
			}),
			"[true, .., _]",
		},
		{
			"or pattern",
			a.Alloc(Pat{Ty: boolT, Kind: Or{Alternatives: []*Pat{tr, wild}}}),
			"true | _",
		},
		{
			"char constant",
			a.Alloc(Pat{Ty: typesystem.TChar{}, Kind: Constant{Value: IntVal{Bits: 'a'}}}),
			"'a'",
		},
		{
			"string constant",
			a.Alloc(Pat{Ty: typesystem.TStr{}, Kind: Constant{Value: StrVal("hi")}}),
			`"hi"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArenaOwnership(t *testing.T) {
	a := NewArena()
	if a.Len() != 0 {
		t.Fatalf("fresh arena should be empty")
	}
	p := a.Wild(typesystem.TBool{})
	q := a.Wild(typesystem.TBool{})
	if p == q {
		t.Errorf("allocations must be distinct nodes")
	}
	if a.Len() != 2 {
		t.Errorf("arena owns %d patterns, want 2", a.Len())
	}
}
