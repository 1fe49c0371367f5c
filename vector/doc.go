// Package vector turns the features of one example into a sparse vector of
// (lexicon index, strength) pairs and persists batches of such examples.
//
// During training Build interns every feature; at test time features the
// lexicon has never seen are dropped, since no learned weight exists for them.
//
// Example files share the section.Header of lexicon files under their own
// magic number, so the same compression and checksum rules apply.
package vector
