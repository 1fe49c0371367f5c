package feature

import (
	"strings"

	"github.com/arloliu/featlex/format"
)

// String renders f for humans:
//
//	pkg.cls:id(value)          discrete primitive
//	pkg.cls:id(strength)       real primitive
//	pkg.cls{left, right}       conjunction
func (f *Feature) String() string {
	var sb strings.Builder
	f.render(&sb, true)

	return sb.String()
}

// StringNoPackage renders f like String with every package name omitted.
func (f *Feature) StringNoPackage() string {
	var sb strings.Builder
	f.render(&sb, false)

	return sb.String()
}

func (f *Feature) render(sb *strings.Builder, withPackage bool) {
	if f == nil {
		sb.WriteString("<nil>")
		return
	}

	if withPackage {
		sb.WriteString(f.name)
	} else {
		sb.WriteString(nameString("", f.classifier, f.identifierText()))
	}

	if f.kind.IsConjunctive() {
		sb.WriteByte('{')
		f.left.render(sb, withPackage)
		sb.WriteString(", ")
		f.right.render(sb, withPackage)
		sb.WriteByte('}')

		if f.kind == format.KindRealConjunctive && f.strength != 1 {
			sb.WriteByte('(')
			sb.WriteString(formatStrength(f.strength))
			sb.WriteByte(')')
		}

		return
	}

	sb.WriteByte('(')
	sb.WriteString(f.StringValue())
	sb.WriteByte(')')
}
