package feature

import (
	"fmt"
	"math"

	"github.com/arloliu/featlex/errs"
	"github.com/arloliu/featlex/format"
	"github.com/arloliu/featlex/internal/hash"
)

// Feature is an observation emitted by a classifier.
//
// A Feature is a node of an immutable binary tree: primitives are leaves
// carrying their own identifier, conjunctions carry two children and derive
// their identity from them. The variant is selected by Kind; see package
// format for the closed set of kinds.
//
// Features are never modified after construction, so a *Feature can be shared
// freely between lexicon entries, vectors and goroutines.
type Feature struct {
	kind       format.FeatureKind
	pkg        string
	classifier string

	id     string     // text identity, KindDiscrete and KindReal
	byteID ByteString // byte identity, KindDiscreteBytes and KindRealBytes

	value     string // text value, KindDiscrete
	byteValue []byte // value in byteID's encoding, KindDiscreteBytes

	valueIndex  int16
	totalValues int16
	strength    float64

	left  *Feature
	right *Feature

	// derived at construction
	name  string
	hash  uint64
	depth int
}

// NewDiscrete creates a primitive discrete feature with a text identifier.
//
// When totalValues > 0 the value is constrained to an enumeration and
// valueIndex must lie in [0, totalValues). Use -1 and 0 for an unconstrained
// value.
func NewDiscrete(pkg, classifier, id, value string, valueIndex, totalValues int16) (*Feature, error) {
	if err := checkValueIndex(valueIndex, totalValues); err != nil {
		return nil, err
	}

	f := &Feature{
		kind:        format.KindDiscrete,
		pkg:         pkg,
		classifier:  classifier,
		id:          id,
		value:       value,
		valueIndex:  valueIndex,
		totalValues: totalValues,
		strength:    1,
	}
	f.derive()

	return f, nil
}

// NewDiscreteBytes creates a primitive discrete feature with a byte
// identifier. value is interpreted in the identifier's encoding.
func NewDiscreteBytes(pkg, classifier string, id ByteString, value []byte, valueIndex, totalValues int16) (*Feature, error) {
	if err := checkValueIndex(valueIndex, totalValues); err != nil {
		return nil, err
	}

	f := &Feature{
		kind:        format.KindDiscreteBytes,
		pkg:         pkg,
		classifier:  classifier,
		byteID:      id,
		byteValue:   append([]byte(nil), value...),
		valueIndex:  valueIndex,
		totalValues: totalValues,
		strength:    1,
	}
	f.derive()

	return f, nil
}

// NewReal creates a primitive real-valued feature with a text identifier.
func NewReal(pkg, classifier, id string, strength float64) *Feature {
	f := &Feature{
		kind:        format.KindReal,
		pkg:         pkg,
		classifier:  classifier,
		id:          id,
		valueIndex:  -1,
		totalValues: 0,
		strength:    strength,
	}
	f.derive()

	return f
}

// NewRealBytes creates a primitive real-valued feature with a byte identifier.
func NewRealBytes(pkg, classifier string, id ByteString, strength float64) *Feature {
	f := &Feature{
		kind:        format.KindRealBytes,
		pkg:         pkg,
		classifier:  classifier,
		byteID:      id,
		valueIndex:  -1,
		totalValues: 0,
		strength:    strength,
	}
	f.derive()

	return f
}

// NewDiscreteConjunction conjoins two discrete features.
//
// When both children are constrained, the conjunction's value is the
// mixed-radix composition of theirs:
//
//	totalValues = left.TotalValues() * right.TotalValues()
//	valueIndex  = left.TotalValues() * right.ValueIndex() + left.ValueIndex()
//
// Otherwise the conjunction is unconstrained (-1, 0).
func NewDiscreteConjunction(pkg, classifier string, left, right *Feature) (*Feature, error) {
	if err := checkChildren(format.KindDiscreteConjunctive, left, right); err != nil {
		return nil, err
	}

	lt, rt := int(left.totalValues), int(right.totalValues)
	if lt <= 0 || rt <= 0 {
		return newConjunction(format.KindDiscreteConjunctive, pkg, classifier, left, right, -1, 0, 1), nil
	}

	total := lt * rt
	if total > math.MaxInt16 {
		return nil, fmt.Errorf("%w: %d * %d", errs.ErrValueIndexOverflow, lt, rt)
	}
	index := lt*int(right.valueIndex) + int(left.valueIndex)

	return newConjunction(format.KindDiscreteConjunctive, pkg, classifier, left, right, int16(index), int16(total), 1), nil
}

// NewDiscreteConjunctionWithValue conjoins two discrete features with an
// explicit value index, as canonicalization and decoding do.
func NewDiscreteConjunctionWithValue(pkg, classifier string, left, right *Feature, valueIndex, totalValues int16) (*Feature, error) {
	if err := checkChildren(format.KindDiscreteConjunctive, left, right); err != nil {
		return nil, err
	}
	if err := checkValueIndex(valueIndex, totalValues); err != nil {
		return nil, err
	}

	return newConjunction(format.KindDiscreteConjunctive, pkg, classifier, left, right, valueIndex, totalValues, 1), nil
}

// NewRealConjunction conjoins two features of any kind into a real-valued
// feature whose strength is the product of the children's strengths.
func NewRealConjunction(pkg, classifier string, left, right *Feature) (*Feature, error) {
	if err := checkChildren(format.KindRealConjunctive, left, right); err != nil {
		return nil, err
	}

	return newConjunction(format.KindRealConjunctive, pkg, classifier, left, right, -1, 0, left.Strength()*right.Strength()), nil
}

// NewRealConjunctionWithStrength conjoins two features with an explicit strength.
func NewRealConjunctionWithStrength(pkg, classifier string, left, right *Feature, strength float64) (*Feature, error) {
	if err := checkChildren(format.KindRealConjunctive, left, right); err != nil {
		return nil, err
	}

	return newConjunction(format.KindRealConjunctive, pkg, classifier, left, right, -1, 0, strength), nil
}

func newConjunction(kind format.FeatureKind, pkg, classifier string, left, right *Feature, valueIndex, totalValues int16, strength float64) *Feature {
	f := &Feature{
		kind:        kind,
		pkg:         pkg,
		classifier:  classifier,
		valueIndex:  valueIndex,
		totalValues: totalValues,
		strength:    strength,
		left:        left,
		right:       right,
	}
	f.derive()

	return f
}

func checkValueIndex(valueIndex, totalValues int16) error {
	if totalValues > 0 && (valueIndex < 0 || valueIndex >= totalValues) {
		return fmt.Errorf("%w: index %d, total %d", errs.ErrValueIndexOutOfRange, valueIndex, totalValues)
	}

	return nil
}

func checkChildren(kind format.FeatureKind, left, right *Feature) error {
	if left == nil || right == nil {
		return fmt.Errorf("%w: conjunction child", errs.ErrNilFeature)
	}
	if kind == format.KindDiscreteConjunctive && (!left.kind.IsDiscrete() || !right.kind.IsDiscrete()) {
		return fmt.Errorf("%w: discrete conjunction of %s and %s", errs.ErrKindMismatch, left.kind, right.kind)
	}

	return nil
}

// derive fills the name string, hash and depth from the other fields.
func (f *Feature) derive() {
	f.name = nameString(f.pkg, f.classifier, f.identifierText())

	switch f.kind {
	case format.KindDiscrete:
		f.hash = hash.Parts(f.name, f.value)
	case format.KindDiscreteBytes:
		f.hash = hash.Parts(f.name, f.byteEncoding(), string(f.byteValue))
	case format.KindRealBytes:
		f.hash = hash.Parts(f.name, f.byteEncoding())
	case format.KindDiscreteConjunctive, format.KindRealConjunctive:
		f.hash = 31*hash.ID(f.name) + 17*f.left.hash + f.right.hash
		f.depth = max(f.left.depth, f.right.depth) + 1
	default:
		f.hash = hash.ID(f.name)
	}
}

// byteEncoding is the identifier encoding as far as equality sees it: empty
// byte strings compare equal in any encoding.
func (f *Feature) byteEncoding() string {
	if f.byteID.IsEmpty() {
		return ""
	}

	return f.byteID.encoding
}

func (f *Feature) identifierText() string {
	switch f.kind.Identity() {
	case format.IdentityText:
		return f.id
	case format.IdentityBytes:
		return f.byteID.String()
	default:
		return ""
	}
}

// nameString renders package, classifier and identifier the way features are
// grouped for ordering: "pkg.classifier:id".
func nameString(pkg, classifier, id string) string {
	n := len(classifier)
	if pkg != "" {
		n += len(pkg) + 1
	}
	if id != "" {
		n += len(id) + 1
	}

	b := make([]byte, 0, n)
	if pkg != "" {
		b = append(b, pkg...)
		b = append(b, '.')
	}
	b = append(b, classifier...)
	if id != "" {
		b = append(b, ':')
		b = append(b, id...)
	}

	return string(b)
}

// Kind returns the feature's variant tag.
func (f *Feature) Kind() format.FeatureKind { return f.kind }

// Package returns the containing package; empty means "same as context".
func (f *Feature) Package() string { return f.pkg }

// Classifier returns the name of the classifier that produced the feature.
func (f *Feature) Classifier() string { return f.classifier }

// StringIdentifier returns the text identifier. Conjunctions and byte-identified
// features return "".
func (f *Feature) StringIdentifier() string { return f.id }

// ByteStringIdentifier returns the byte identifier. Conjunctions and
// text-identified features return EmptyByteString.
func (f *Feature) ByteStringIdentifier() ByteString { return f.byteID }

// IsConjunctive reports whether f is built from two children.
func (f *Feature) IsConjunctive() bool { return f.kind.IsConjunctive() }

// IsPrimitive reports whether f has no children.
func (f *Feature) IsPrimitive() bool { return !f.kind.IsConjunctive() }

// IsDiscrete reports whether f carries a value index.
func (f *Feature) IsDiscrete() bool { return f.kind.IsDiscrete() }

// IsReal reports whether f carries an arbitrary strength.
func (f *Feature) IsReal() bool { return f.kind.IsReal() }

// Left returns the first child of a conjunction, nil for primitives.
func (f *Feature) Left() *Feature { return f.left }

// Right returns the second child of a conjunction, nil for primitives.
func (f *Feature) Right() *Feature { return f.right }

// ValueIndex returns the ordinal of the value within its enumeration, or -1.
func (f *Feature) ValueIndex() int16 { return f.valueIndex }

// TotalValues returns the size of the value enumeration; 0 or less means
// unconstrained.
func (f *Feature) TotalValues() int16 { return f.totalValues }

// Depth returns 0 for primitives and 1 + the deeper child's depth otherwise.
func (f *Feature) Depth() int { return f.depth }

// NameString returns "pkg.classifier:id", the primary ordering key.
func (f *Feature) NameString() string { return f.name }

// Hash returns the structural hash. Equal features have equal hashes.
func (f *Feature) Hash() uint64 { return f.hash }

// Strength returns 1 for discrete features and the stored strength otherwise.
func (f *Feature) Strength() float64 {
	if f.kind.IsDiscrete() {
		return 1
	}

	return f.strength
}
