// Package typesystem models the ground types a match scrutinee can have.
//
// The match checking engine reads this metadata and never mutates it: field
// layouts, variant lists and visibility are fixed for the duration of an
// analysis. The caller (a type checker) is expected to hand the engine
// well-formed types; the engine does not validate them beyond the arity
// checks it needs for its own invariants.
package typesystem

import (
	"fmt"
	"strings"
)

// Type is the interface for all scrutinee types.
type Type interface {
	String() string
	isType()
}

// TBool is the boolean type.
type TBool struct{}

func (TBool) isType()        {}
func (TBool) String() string { return "Bool" }

// TChar is the Unicode scalar value type.
type TChar struct{}

func (TChar) isType()        {}
func (TChar) String() string { return "Char" }

// TInt is a fixed-width or pointer-sized integer type.
// PtrSized integers report 64 bits but whether ranges over them can be
// proven exhaustive is an engine option, not a property of the type.
type TInt struct {
	Bits     uint
	Signed   bool
	PtrSized bool
}

func (TInt) isType() {}

func (t TInt) String() string {
	if t.PtrSized {
		if t.Signed {
			return "Isize"
		}
		return "Usize"
	}
	if t.Signed {
		return fmt.Sprintf("Int%d", t.Bits)
	}
	return fmt.Sprintf("UInt%d", t.Bits)
}

// TFloat is a floating-point type. Floats are never treated exhaustively.
type TFloat struct {
	Bits uint
}

func (TFloat) isType()          {}
func (t TFloat) String() string { return fmt.Sprintf("Float%d", t.Bits) }

// TStr is the string type. Like floats it has no enumerable constructor
// set, so only literal patterns and wildcards apply to it.
type TStr struct{}

func (TStr) isType()        {}
func (TStr) String() string { return "String" }

// TTuple is a tuple type.
type TTuple struct {
	Elements []Type
}

func (TTuple) isType() {}

func (t TTuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// TRef is a reference/box type. Patterns unwrap it transparently via Deref.
type TRef struct {
	Elem Type
}

func (TRef) isType()          {}
func (t TRef) String() string { return "&" + t.Elem.String() }

// TArray is an array type. LenKnown is false when the length is a constant
// the front-end could not evaluate; such arrays behave like slices.
type TArray struct {
	Elem     Type
	Len      int
	LenKnown bool
}

func (TArray) isType() {}

func (t TArray) String() string {
	if !t.LenKnown {
		return fmt.Sprintf("[%s; ?]", t.Elem)
	}
	return fmt.Sprintf("[%s; %d]", t.Elem, t.Len)
}

// TSlice is a variable-length sequence type.
type TSlice struct {
	Elem Type
}

func (TSlice) isType()          {}
func (t TSlice) String() string { return fmt.Sprintf("[%s]", t.Elem) }

// TNever is the uninhabited type.
type TNever struct{}

func (TNever) isType()        {}
func (TNever) String() string { return "Never" }

// TErr is the error placeholder type. It stands in for inaccessible private
// fields so the engine cannot observe whether they are inhabited; only
// wildcard patterns ever carry it.
type TErr struct{}

func (TErr) isType()        {}
func (TErr) String() string { return "<error>" }

// IsErr reports whether ty is the error placeholder.
func IsErr(ty Type) bool {
	_, ok := ty.(TErr)
	return ok
}

// Field is one field of a variant.
type Field struct {
	Name   string
	Ty     Type
	Public bool
}

// Variant is one shape a data type can take. Structs have exactly one
// variant; enums have one per declared alternative.
type Variant struct {
	Name   string
	Fields []Field

	// NonExhaustiveFields marks a variant whose field list may grow
	// (the field-list analog of a non-exhaustive enum). Matching such a
	// variant from another module can never be proven complete.
	NonExhaustiveFields bool
}

// TData is a nominal data type: a struct (single variant, IsEnum false) or
// an enum. Used by pointer so recursive types can refer to themselves.
type TData struct {
	Name     string
	Module   string
	IsEnum   bool
	Variants []*Variant

	// NonExhaustive marks an enum whose variant list may grow; foreign
	// modules must always keep a wildcard arm for it.
	NonExhaustive bool
}

func (*TData) isType()          {}
func (t *TData) String() string { return t.Name }

// VisibleFrom reports whether the field can be named from the given module.
// Enum variant fields are always visible; struct fields obey Public.
func (t *TData) VisibleFrom(f Field, module string) bool {
	return t.IsEnum || f.Public || t.Module == module
}

// IsLocal reports whether the type is declared in the given module.
// Non-nominal types have no declaring module.
func IsLocal(ty Type, module string) bool {
	if d, ok := ty.(*TData); ok {
		return d.Module == module
	}
	return false
}

// IsNonExhaustiveEnum reports whether the type's variant list is declared
// open.
func IsNonExhaustiveEnum(ty Type) bool {
	if d, ok := ty.(*TData); ok {
		return d.NonExhaustive
	}
	return false
}

// IsPtrSizedInt reports whether ty is a pointer-sized integer.
func IsPtrSizedInt(ty Type) bool {
	if i, ok := ty.(TInt); ok {
		return i.PtrSized
	}
	return false
}

// IsIntegral reports whether values of ty can be encoded as integer
// intervals (chars and integers, but not floats).
func IsIntegral(ty Type) bool {
	switch ty.(type) {
	case TChar, TInt:
		return true
	default:
		return false
	}
}
