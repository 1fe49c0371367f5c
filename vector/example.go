package vector

import (
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/featlex/errs"
	"github.com/arloliu/featlex/feature"
	"github.com/arloliu/featlex/lexicon"
)

// Example is one labeled sparse vector: lexicon indices in ascending order
// and the strength of the feature at each index.
type Example struct {
	Labels    []int
	Indices   []int
	Strengths []float64
}

// Build maps features to a sparse example through l.
//
// With training set, unseen features are interned and every feature is counted
// under label (-1 for none). Otherwise features the lexicon does not know are
// dropped. A feature seen twice contributes the sum of its strengths.
func Build(l *lexicon.Lexicon, features []*feature.Feature, training bool, label int) (Example, error) {
	strengths := make(map[int]float64, len(features))
	for _, f := range features {
		i, err := l.Lookup(f, training, label)
		if err != nil {
			return Example{}, fmt.Errorf("lookup %s: %w", f, err)
		}
		if i == lexicon.Unknown {
			continue
		}
		strengths[i] += f.Strength()
	}

	ex := Example{
		Indices:   make([]int, 0, len(strengths)),
		Strengths: make([]float64, 0, len(strengths)),
	}
	if label >= 0 {
		ex.Labels = []int{label}
	}
	for i := range strengths {
		ex.Indices = append(ex.Indices, i)
	}
	slices.Sort(ex.Indices)
	for _, i := range ex.Indices {
		ex.Strengths = append(ex.Strengths, strengths[i])
	}

	return ex, nil
}

// Len returns the number of non-zero entries.
func (e Example) Len() int {
	return len(e.Indices)
}

// All yields (index, strength) pairs in index order.
func (e Example) All() iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for k, i := range e.Indices {
			if !yield(i, e.Strengths[k]) {
				return
			}
		}
	}
}

// Dot returns the inner product of e with a dense weight vector. Indices
// beyond the end of weights count as zero weight.
func (e Example) Dot(weights []float64) float64 {
	var sum float64
	for i, s := range e.All() {
		if i < len(weights) {
			sum += weights[i] * s
		}
	}

	return sum
}

// Validate checks that indices and strengths pair up, that indices are
// strictly ascending and non-negative, and that labels are non-negative.
func (e Example) Validate() error {
	if len(e.Indices) != len(e.Strengths) {
		return fmt.Errorf("%w: %d indices, %d strengths", errs.ErrMismatchedVectorDimension, len(e.Indices), len(e.Strengths))
	}
	for k, i := range e.Indices {
		if i < 0 || (k > 0 && i <= e.Indices[k-1]) {
			return fmt.Errorf("%w: index %d at position %d is not ascending", errs.ErrInvalidVectorFile, i, k)
		}
	}
	for _, label := range e.Labels {
		if label < 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidLabel, label)
		}
	}

	return nil
}
