// Package featlex interns the features emitted by learning-based classifiers
// into stable integer indices and persists them in a compact binary form.
//
// A feature names what was observed (package, classifier and identifier) and
// carries a discrete value or a real strength. Conjunctions combine two
// features and are interned after their children. A lexicon assigns every
// distinct feature a dense index, counts how often it was seen, and can prune
// rare entries without breaking the conjunctions that survive.
//
// # Core Features
//
//   - Discrete, real and conjunctive features in one immutable type
//   - Text or byte identifiers, with character-set transcoding
//   - Per-label occurrence counts and cascade-safe pruning
//   - Frozen lexicons for read-only lookups at test time
//   - Compact files: context-elided entries, optional compression (Zstd, S2,
//     LZ4) and xxHash64 checksums
//
// # Basic Usage
//
// Training a lexicon and turning an example into a sparse vector:
//
//	lex, _ := featlex.NewDefaultLexicon()
//
//	w, _ := featlex.Discrete("edu.nlp", "pos", "w[0]", "cat")
//	prev, _ := featlex.Discrete("edu.nlp", "pos", "w[-1]", "the")
//	pair, _ := feature.NewDiscreteConjunction("edu.nlp", "bigram", prev, w)
//
//	ex, _ := featlex.Vectorize(lex, []*feature.Feature{w, prev, pair}, true, label)
//	_ = featlex.SaveLexicon(lex, "pos.lex")
//
// Testing against a frozen copy:
//
//	lex, _ := featlex.LoadFrozenLexicon("pos.lex")
//	ex, _ := featlex.Vectorize(lex, features, false, -1)
//
// # Package Structure
//
// This package provides top-level wrappers around the feature, lexicon and
// vector packages for the most common use cases. Use those packages directly
// for fine-grained control.
package featlex

import (
	"github.com/arloliu/featlex/feature"
	"github.com/arloliu/featlex/format"
	"github.com/arloliu/featlex/internal/hash"
	"github.com/arloliu/featlex/lexicon"
	"github.com/arloliu/featlex/vector"
)

var defaultLexiconOptions = []lexicon.Option{
	lexicon.WithLittleEndian(),
	lexicon.WithCompression(format.CompressionZstd),
}

// NewLexicon creates an empty lexicon with custom options.
//
// Available options:
//   - lexicon.WithLabelCount(n)
//   - lexicon.WithCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - lexicon.WithLittleEndian() / lexicon.WithBigEndian()
//   - lexicon.WithLogger(logger)
func NewLexicon(opts ...lexicon.Option) (*lexicon.Lexicon, error) {
	return lexicon.New(opts...)
}

// NewDefaultLexicon creates an empty lexicon that saves little-endian,
// zstd-compressed files.
func NewDefaultLexicon() (*lexicon.Lexicon, error) {
	return lexicon.New(defaultLexiconOptions...)
}

// LoadLexicon reads a lexicon file for further training.
func LoadLexicon(path string, opts ...lexicon.Option) (*lexicon.Lexicon, error) {
	return lexicon.Load(path, opts...)
}

// LoadFrozenLexicon reads a lexicon file and freezes it for testing.
func LoadFrozenLexicon(path string, opts ...lexicon.Option) (*lexicon.Lexicon, error) {
	lex, err := lexicon.Load(path, opts...)
	if err != nil {
		return nil, err
	}
	lex.Freeze()

	return lex, nil
}

// SaveLexicon writes lex to path.
func SaveLexicon(lex *lexicon.Lexicon, path string) error {
	return lex.Save(path)
}

// Discrete creates a primitive discrete feature whose value is not drawn from
// a fixed enumeration.
func Discrete(pkg, classifier, id, value string) (*feature.Feature, error) {
	return feature.NewDiscrete(pkg, classifier, id, value, -1, 0)
}

// Real creates a primitive real-valued feature.
func Real(pkg, classifier, id string, strength float64) *feature.Feature {
	return feature.NewReal(pkg, classifier, id, strength)
}

// Vectorize maps the features of one example to a sparse vector through lex.
// See vector.Build.
func Vectorize(lex *lexicon.Lexicon, features []*feature.Feature, training bool, label int) (vector.Example, error) {
	return vector.Build(lex, features, training, label)
}

// NameID returns the 64-bit xxHash of a feature name, the value conjunction
// hashes are built from.
func NameID(name string) uint64 {
	return hash.ID(name)
}
