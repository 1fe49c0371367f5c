package feature

import (
	"fmt"

	"github.com/arloliu/featlex/errs"
	"github.com/arloliu/featlex/format"
)

// ChildResolver interns a canonical child feature and returns the exact object
// stored as its key. *lexicon.Lexicon implements it.
type ChildResolver interface {
	ChildFeature(f *Feature, label int) (*Feature, error)
}

// Key returns the feature that must be used as f's lexicon key.
//
// Outside training f is returned as is: test-time lookups either match an
// existing key structurally or are unknown. During training a primitive is its
// own key. A conjunction's children are canonicalized first and interned
// through r, and the key is a new conjunction over the resolved child objects
// with f's value index, total values or strength preserved. Children are
// therefore always interned before the conjunction that uses them.
func (f *Feature) Key(r ChildResolver, training bool, label int) (*Feature, error) {
	if f == nil {
		return nil, errs.ErrNilFeature
	}
	if !training || !f.kind.IsConjunctive() {
		return f, nil
	}

	left, err := resolveChild(r, f.left, label)
	if err != nil {
		return nil, fmt.Errorf("left child of %s: %w", f.name, err)
	}
	right, err := resolveChild(r, f.right, label)
	if err != nil {
		return nil, fmt.Errorf("right child of %s: %w", f.name, err)
	}

	return f.WithChildren(left, right)
}

// WithChildren returns a copy of conjunction f built over left and right, with
// f's value index, total values or strength preserved. It returns f itself when
// both children are already the exact objects f holds.
func (f *Feature) WithChildren(left, right *Feature) (*Feature, error) {
	if !f.kind.IsConjunctive() {
		return nil, fmt.Errorf("%w: %s is not a conjunction", errs.ErrKindMismatch, f.name)
	}
	if left == f.left && right == f.right {
		return f, nil
	}
	if f.kind == format.KindDiscreteConjunctive {
		return NewDiscreteConjunctionWithValue(f.pkg, f.classifier, left, right, f.valueIndex, f.totalValues)
	}

	return NewRealConjunctionWithStrength(f.pkg, f.classifier, left, right, f.strength)
}

func resolveChild(r ChildResolver, child *Feature, label int) (*Feature, error) {
	key, err := child.Key(r, true, label)
	if err != nil {
		return nil, err
	}

	return r.ChildFeature(key, label)
}
