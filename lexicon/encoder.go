package lexicon

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/featlex/compress"
	"github.com/arloliu/featlex/encoding"
	"github.com/arloliu/featlex/feature"
	"github.com/arloliu/featlex/section"
)

// encoder writes a lexicon file image.
//
// Payload layout, after the section.Header:
//
//	default package    (string)
//	default classifier (string)
//	entries, in feature.CompareSerial order:
//	  index      (uvarint)
//	  feature    (feature.LexWrite against the previous entry's context)
//	  counts     (LabelCount varints, then the global count varint)
//
// The defaults are the most common package and classifier, so the first entry
// of a single-classifier lexicon already elides both.
//
// Note: The encoder is NOT reusable. Create one per Encode call.
type encoder struct {
	lex    *Lexicon
	header *section.Header
	w      *encoding.Writer
}

func newEncoder(l *Lexicon) (*encoder, error) {
	header, err := section.NewLexiconHeader(l.live, l.next, l.cfg.labelCount)
	if err != nil {
		return nil, err
	}
	header.Flag.SetPayloadCompression(l.cfg.compression)
	if l.cfg.bigEndian {
		header.Flag.WithBigEndian()
	}

	return &encoder{
		lex:    l,
		header: header,
		w:      encoding.NewFileWriter(header.GetEndianEngine()),
	}, nil
}

func (e *encoder) encode() ([]byte, compress.Stats, error) {
	defer e.w.Release()

	pkg, classifier := e.lex.defaults()
	e.w.WriteString(pkg)
	e.w.WriteString(classifier)

	ctx := feature.Context{Package: pkg, Classifier: classifier}
	for i, f := range e.lex.Sorted() {
		e.w.WriteUvarint(uint64(i)) //nolint: gosec

		var err error
		if ctx, err = f.LexWrite(e.w, e.lex, ctx); err != nil {
			return nil, compress.Stats{}, fmt.Errorf("entry %d: %w", i, err)
		}
		e.writeCounts(&e.lex.entries[i])
	}

	payload := e.w.Bytes()
	if err := e.header.SetPayload(payload); err != nil {
		return nil, compress.Stats{}, err
	}
	compressed, stats, err := compress.Compress(e.lex.cfg.compression, payload)
	if err != nil {
		return nil, compress.Stats{}, err
	}

	out := make([]byte, 0, section.HeaderSize+len(compressed))
	out = append(out, e.header.Bytes()...)
	out = append(out, compressed...)

	return out, stats, nil
}

func (e *encoder) writeCounts(ent *entry) {
	for k := range e.lex.cfg.labelCount {
		var c int64
		if k < len(ent.counts) {
			c = ent.counts[k]
		}
		e.w.WriteVarint(c)
	}
	e.w.WriteVarint(ent.total)
}

// defaults returns the most common package and classifier among live entries.
// Ties go to the smallest string so the output is deterministic.
func (l *Lexicon) defaults() (pkg, classifier string) {
	pkgs := make(map[string]int)
	classifiers := make(map[string]int)
	for _, f := range l.All() {
		pkgs[f.Package()]++
		classifiers[f.Classifier()]++
	}

	return mostCommon(pkgs), mostCommon(classifiers)
}

func mostCommon(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	slices.SortFunc(keys, func(a, b string) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}
		return strings.Compare(a, b)
	})

	return keys[0]
}

// Encode serializes the lexicon into a file image: a section.Header followed
// by the compressed payload.
func (l *Lexicon) Encode() ([]byte, error) {
	data, _, err := l.EncodeWithStats()
	return data, err
}

// EncodeWithStats is Encode that also reports the payload compression.
func (l *Lexicon) EncodeWithStats() ([]byte, compress.Stats, error) {
	enc, err := newEncoder(l)
	if err != nil {
		return nil, compress.Stats{}, err
	}

	data, stats, err := enc.encode()
	if err != nil {
		return nil, compress.Stats{}, err
	}

	l.cfg.logger.Debug().
		Int("entries", l.live).
		Int("capacity", l.next).
		Int("labels", l.cfg.labelCount).
		Stringer("compression", stats.Algorithm).
		Int("payload_bytes", stats.OriginalSize).
		Int("compressed_bytes", stats.CompressedSize).
		Msg("lexicon encoded")

	return data, stats, nil
}
