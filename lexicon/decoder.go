package lexicon

import (
	"fmt"
	"math"

	"github.com/arloliu/featlex/compress"
	"github.com/arloliu/featlex/encoding"
	"github.com/arloliu/featlex/errs"
	"github.com/arloliu/featlex/feature"
	"github.com/arloliu/featlex/internal/options"
	"github.com/arloliu/featlex/section"
)

// decoder rebuilds a lexicon from a file image.
//
// Note: The decoder is NOT reusable. After calling decode, a new decoder must
// be created for further decoding.
type decoder struct {
	data   []byte
	header section.Header
}

// newDecoder validates the header; the payload is left untouched until decode.
func newDecoder(data []byte) (*decoder, error) {
	d := &decoder{data: data}
	if err := d.parseHeader(); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *decoder) parseHeader() error {
	if len(d.data) < section.HeaderSize {
		return fmt.Errorf("%w: file of %d bytes is shorter than the header", errs.ErrInvalidHeaderSize, len(d.data))
	}
	if err := d.header.Parse(d.data[:section.HeaderSize], section.MagicLexiconV1); err != nil {
		return err
	}
	if d.header.Capacity > math.MaxInt32 {
		return fmt.Errorf("%w: capacity %d", errs.ErrInvalidHeaderSize, d.header.Capacity)
	}
	if d.header.LabelCount > MaxLabels {
		return fmt.Errorf("%w: %d labels", errs.ErrInvalidLabel, d.header.LabelCount)
	}

	return nil
}

// config seeds a Config from the header; opts may override the compression,
// byte order and logger but never shrink the label count.
func (d *decoder) config(opts []Option) (*Config, error) {
	cfg := newConfig()
	cfg.compression = d.header.Flag.GetPayloadCompression()
	cfg.labelCount = int(d.header.LabelCount)
	if d.header.Flag.IsBigEndian() {
		cfg.setEndianness(bigEndianOpt)
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	cfg.labelCount = max(cfg.labelCount, int(d.header.LabelCount))

	return cfg, nil
}

func (d *decoder) decode(opts []Option) (*Lexicon, error) {
	cfg, err := d.config(opts)
	if err != nil {
		return nil, err
	}

	payload, err := compress.Decompress(d.header.Flag.GetPayloadCompression(), d.data[section.HeaderSize:], int(d.header.PayloadSize))
	if err != nil {
		return nil, err
	}
	if err := d.header.VerifyPayload(payload); err != nil {
		return nil, err
	}

	// Capacity and EntryCount are not covered by the checksum; size the table
	// by what the payload can actually hold.
	capacity := int(d.header.Capacity)
	l := newLexicon(cfg, min(capacity, int(d.header.EntryCount), len(payload)))
	l.next = capacity

	r := encoding.NewReader(payload, d.header.GetEndianEngine())
	pkg, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("default package: %w", err)
	}
	classifier, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("default classifier: %w", err)
	}

	ctx := feature.Context{Package: pkg, Classifier: classifier}
	for n := range int(d.header.EntryCount) {
		if ctx, err = d.readEntry(r, l, ctx); err != nil {
			return nil, fmt.Errorf("entry %d of %d: %w", n, d.header.EntryCount, err)
		}
	}
	if !r.Done() {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrTrailingData, r.Remaining())
	}

	cfg.logger.Debug().
		Int("entries", l.live).
		Int("capacity", capacity).
		Int("labels", cfg.labelCount).
		Stringer("compression", d.header.Flag.GetPayloadCompression()).
		Msg("lexicon decoded")

	return l, nil
}

func (d *decoder) readEntry(r *encoding.Reader, l *Lexicon, ctx feature.Context) (feature.Context, error) {
	index, err := r.ReadInt()
	if err != nil {
		return ctx, fmt.Errorf("index: %w", err)
	}
	if uint64(index) >= uint64(d.header.Capacity) {
		return ctx, fmt.Errorf("%w: %d not in [0, %d)", errs.ErrIndexOutOfRange, index, d.header.Capacity)
	}
	if index < len(l.entries) && !l.entries[index].removed() {
		return ctx, fmt.Errorf("%w: %d", errs.ErrDuplicateEntryIndex, index)
	}

	f, next, err := feature.LexRead(r, l, ctx)
	if err != nil {
		return ctx, err
	}
	if _, ok := l.find(f); ok {
		return ctx, fmt.Errorf("%w: %s stored twice", errs.ErrDuplicateEntryIndex, f)
	}

	e := entry{key: f, left: Unknown, right: Unknown}
	if f.IsConjunctive() {
		// LexRead built f over the stored child objects
		e.left, _ = l.find(f.Left())
		e.right, _ = l.find(f.Right())
	}

	if labels := int(d.header.LabelCount); labels > 0 {
		e.counts = make([]int64, l.cfg.labelCount)
		for k := range labels {
			if e.counts[k], err = r.ReadVarint(); err != nil {
				return ctx, fmt.Errorf("count for label %d: %w", k, err)
			}
		}
	}
	if e.total, err = r.ReadVarint(); err != nil {
		return ctx, fmt.Errorf("global count: %w", err)
	}

	l.place(index, e)

	return next, nil
}

// Decode rebuilds a lexicon from a file image produced by Encode. The header's
// compression, byte order and label count become the lexicon's configuration;
// opts are applied on top.
func Decode(data []byte, opts ...Option) (*Lexicon, error) {
	d, err := newDecoder(data)
	if err != nil {
		return nil, err
	}

	return d.decode(opts)
}

// Inspect parses and validates the header of a lexicon file image without
// decoding its payload.
func Inspect(data []byte) (*section.Header, error) {
	d, err := newDecoder(data)
	if err != nil {
		return nil, err
	}

	return &d.header, nil
}
