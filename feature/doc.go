// Package feature implements the feature model: the observations classifiers
// emit and a lexicon interns.
//
// # Variants
//
// A Feature is a closed tagged union selected by format.FeatureKind:
//
//   - Discrete primitives carry a text or byte identifier and a categorical
//     value, optionally constrained to an enumeration (valueIndex, totalValues).
//   - Real primitives carry a text or byte identifier and a float64 strength.
//   - Discrete conjunctions combine two discrete features. Their value is the
//     mixed-radix composition of the children's values, a bijection between
//     the pair of child ordinals and the conjunction's ordinal.
//   - Real conjunctions combine any two features with a float64 strength.
//
// Features are immutable and always handled as *Feature.
//
// # Identity
//
// Compare, Equal and Hash agree: equal features hash equal, and the total
// order groups features by their "pkg.classifier:id" name string so all values
// of one classifier output stay adjacent.
//
// # Lexicon Keys
//
// Key converts a freshly produced conjunction into the feature a lexicon must
// store: each child is replaced by the object already interned for it, so
// conjunctions share substructure with the lexicon instead of duplicating it.
//
// # Wire Forms
//
// Write and Read handle the self-describing form, which needs no shared state.
// LexWrite and LexRead handle lexicon entries: metadata equal to the assumed
// Context is elided and conjunction children are written as lexicon indices.
//
//	w := encoding.NewWriter(endian.GetLittleEndianEngine())
//	defer w.Release()
//	if err := feature.Write(w, f); err != nil {
//		return err
//	}
//	g, err := feature.Read(encoding.NewReader(w.Bytes(), w.Engine()))
package feature
