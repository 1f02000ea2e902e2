package pat

import (
	"fmt"
	"strings"

	"github.com/funvibe/patcheck/internal/typesystem"
)

// String renders the pattern the way a user would write it. Witnesses
// returned by the engine are rendered with exactly this form.
func (p *Pat) String() string {
	switch k := p.Kind.(type) {
	case Wild:
		return "_"
	case Binding:
		if k.Sub == nil {
			if k.Name == "" {
				return "_"
			}
			return k.Name
		}
		return fmt.Sprintf("%s @ %s", k.Name, k.Sub)
	case Constant:
		return FormatConst(k.Value, p.Ty)
	case Range:
		return fmt.Sprintf("%s%s%s", FormatConst(k.Lo, p.Ty), k.End, FormatConst(k.Hi, p.Ty))
	case Leaf:
		return formatLeaf("", p.Ty, k.Subpatterns)
	case Variant:
		if d, ok := p.Ty.(*typesystem.TData); ok && k.Index < len(d.Variants) {
			v := d.Variants[k.Index]
			return formatFields(v.Name, v.Fields, k.Subpatterns)
		}
		return fmt.Sprintf("<variant %d>", k.Index)
	case Deref:
		return "&" + k.Sub.String()
	case Slice:
		parts := make([]string, 0, len(k.Prefix)+len(k.Suffix)+1)
		for _, q := range k.Prefix {
			parts = append(parts, q.String())
		}
		if k.HasRest {
			parts = append(parts, "..")
		}
		for _, q := range k.Suffix {
			parts = append(parts, q.String())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Or:
		parts := make([]string, len(k.Alternatives))
		for i, q := range k.Alternatives {
			parts[i] = q.String()
		}
		return strings.Join(parts, " | ")
	default:
		return "<pattern>"
	}
}

func formatLeaf(name string, ty typesystem.Type, subs []FieldPat) string {
	switch t := ty.(type) {
	case typesystem.TTuple:
		parts := make([]string, len(t.Elements))
		for i := range parts {
			parts[i] = "_"
		}
		for _, fp := range subs {
			if fp.Field < len(parts) {
				parts[fp.Field] = fp.Pat.String()
			}
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *typesystem.TData:
		if len(t.Variants) > 0 {
			return formatFields(t.Name, t.Variants[0].Fields, subs)
		}
		return t.Name
	default:
		if len(subs) == 0 {
			if name != "" {
				return name
			}
			return "_"
		}
		parts := make([]string, len(subs))
		for i, fp := range subs {
			parts[i] = fp.Pat.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
}

func formatFields(name string, fields []typesystem.Field, subs []FieldPat) string {
	if len(fields) == 0 {
		return name
	}
	named := true
	for _, f := range fields {
		if f.Name == "" {
			named = false
			break
		}
	}
	parts := make([]string, len(fields))
	for i := range parts {
		parts[i] = "_"
	}
	for _, fp := range subs {
		if fp.Field < len(parts) {
			parts[fp.Field] = fp.Pat.String()
		}
	}
	if !named {
		return name + "(" + strings.Join(parts, ", ") + ")"
	}
	for i, f := range fields {
		parts[i] = f.Name + ": " + parts[i]
	}
	return name + " { " + strings.Join(parts, ", ") + " }"
}

// FormatConst renders a literal the way it would appear in source, using
// ty to decode integer signedness and chars.
func FormatConst(c Const, ty typesystem.Type) string {
	switch v := c.(type) {
	case IntVal:
		switch t := ty.(type) {
		case typesystem.TChar:
			return fmt.Sprintf("%q", rune(v.Bits))
		case typesystem.TInt:
			if t.Signed {
				return fmt.Sprintf("%d", SignExtend(v.Bits, t.Bits))
			}
			return fmt.Sprintf("%d", v.Bits)
		default:
			return fmt.Sprintf("%d", v.Bits)
		}
	case BoolVal:
		if v {
			return "true"
		}
		return "false"
	case FloatVal:
		return fmt.Sprintf("%g", float64(v))
	case StrVal:
		return fmt.Sprintf("%q", string(v))
	default:
		return "<const>"
	}
}
