// Package lexicon interns features and maps them to dense integer indices.
//
// A Lexicon is trained by looking features up with training set: every new
// feature gets the next index, and every lookup is counted globally and under
// the example's label. Conjunctions are canonicalized before they are stored,
// so their children are interned first and shared with the lexicon.
//
//	lex, _ := lexicon.New(lexicon.WithLabelCount(2))
//	i, err := lex.Lookup(f, true, label)
//
// After training, rare entries can be pruned. Pruning never removes a child of
// a live conjunction, and removing a conjunction releases its children, which
// may cascade:
//
//	removed, err := lex.Prune(lexicon.Policy{Threshold: 3})
//
// A frozen lexicon is read-only: Lookup returns Unknown for unseen features.
//
// # File Format
//
// Save and Encode write a section.Header followed by a single payload that
// holds the entries in children-before-parents order. Each entry records its
// own index, so pruning holes survive a round trip and indices stay stable.
// The payload is compressed with the configured codec (zstd by default) and
// protected by an xxHash64 checksum that also covers the header counts.
package lexicon
