package feature

import (
	"bytes"
	"strings"

	"github.com/arloliu/featlex/format"
)

// Compare orders features for paging and serialization.
//
// Name strings are compared first, byte-wise. Primitives with equal name
// strings compare equal whatever their values, so a classifier's features stay
// adjacent. A primitive sorts before a conjunction with the same name string,
// and conjunctions break ties on their left child, then their right child.
//
// Compare returns -1, 0 or +1. A nil feature sorts first.
func Compare(a, b *Feature) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	if d := strings.Compare(a.name, b.name); d != 0 {
		return d
	}

	ac, bc := a.kind.IsConjunctive(), b.kind.IsConjunctive()
	switch {
	case !ac && !bc:
		return 0
	case !ac:
		return -1
	case !bc:
		return 1
	}

	if d := Compare(a.left, b.left); d != 0 {
		return d
	}

	return Compare(a.right, b.right)
}

// Equal reports whether a and b are structurally equal.
//
// Equal features share kind, package, classifier and identity; discrete
// primitives must also share their value, and conjunctions must have equal
// children. Real strengths are not part of a feature's identity. Equal
// features always have equal hashes.
func Equal(a, b *Feature) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.kind != b.kind || a.hash != b.hash || a.pkg != b.pkg || a.classifier != b.classifier {
		return false
	}

	switch a.kind {
	case format.KindDiscrete:
		return a.id == b.id && a.value == b.value
	case format.KindReal:
		return a.id == b.id
	case format.KindDiscreteBytes:
		return a.byteID.Equal(b.byteID) && bytes.Equal(a.byteValue, b.byteValue)
	case format.KindRealBytes:
		return a.byteID.Equal(b.byteID)
	default:
		return Equal(a.left, b.left) && Equal(a.right, b.right)
	}
}

// Compare is shorthand for Compare(f, o).
func (f *Feature) Compare(o *Feature) int {
	return Compare(f, o)
}

// Equal is shorthand for Equal(f, o).
func (f *Feature) Equal(o *Feature) bool {
	return Equal(f, o)
}

// CompareSerial is the order in which lexicon entries are written: shallower
// entries first, so every conjunction follows both of its children, then
// Compare within a depth.
func CompareSerial(a, b *Feature) int {
	if a.depth != b.depth {
		if a.depth < b.depth {
			return -1
		}

		return 1
	}

	return Compare(a, b)
}
