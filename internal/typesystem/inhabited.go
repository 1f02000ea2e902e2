package typesystem

// IsUninhabitedFrom reports whether ty is visibly uninhabited when observed
// from the given module. Visibility matters: a struct with a private field
// of an empty type cannot be seen to be empty from outside its module, so
// it must still be treated as matchable there.
//
// Recursive types are assumed inhabited along the cycle; a type is only
// empty if every path to a value bottoms out in an empty type.
func IsUninhabitedFrom(ty Type, module string) bool {
	return uninhabitedFrom(ty, module, make(map[*TData]bool))
}

func uninhabitedFrom(ty Type, module string, visiting map[*TData]bool) bool {
	switch t := ty.(type) {
	case TNever:
		return true
	case TTuple:
		for _, e := range t.Elements {
			if uninhabitedFrom(e, module, visiting) {
				return true
			}
		}
		return false
	case TRef:
		return uninhabitedFrom(t.Elem, module, visiting)
	case TArray:
		// A zero-length array always has the value []; an array of unknown
		// length might, too.
		return t.LenKnown && t.Len > 0 && uninhabitedFrom(t.Elem, module, visiting)
	case TSlice:
		return false
	case *TData:
		if visiting[t] {
			return false
		}
		visiting[t] = true
		defer delete(visiting, t)
		for _, v := range t.Variants {
			if !variantUninhabitedFrom(t, v, module, visiting) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// VariantUninhabitedFrom reports whether a single variant of data is
// visibly uninhabited from the given module.
func VariantUninhabitedFrom(data *TData, v *Variant, module string) bool {
	return variantUninhabitedFrom(data, v, module, make(map[*TData]bool))
}

func variantUninhabitedFrom(data *TData, v *Variant, module string, visiting map[*TData]bool) bool {
	for _, f := range v.Fields {
		// An invisible field hides its type; we must not learn emptiness
		// through it.
		if !data.VisibleFrom(f, module) {
			continue
		}
		if uninhabitedFrom(f.Ty, module, visiting) {
			return true
		}
	}
	return false
}
