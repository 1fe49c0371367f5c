package vector

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/arloliu/featlex/compress"
	"github.com/arloliu/featlex/encoding"
	"github.com/arloliu/featlex/errs"
	"github.com/arloliu/featlex/format"
	"github.com/arloliu/featlex/internal/options"
	"github.com/arloliu/featlex/section"
)

// Config holds the settings used when writing an example file.
type Config struct {
	compression format.CompressionType
	bigEndian   bool
}

// Option is a functional option for Encode and Save.
type Option = options.Option[*Config]

// WithCompression configures the payload compression.
// Default is format.CompressionZstd.
func WithCompression(comp format.CompressionType) Option {
	return options.New(func(cfg *Config) error {
		if _, err := compress.GetCodec(comp); err != nil {
			return err
		}
		cfg.compression = comp

		return nil
	})
}

// WithBigEndian writes strengths in big-endian byte order.
func WithBigEndian() Option {
	return options.NoError(func(cfg *Config) {
		cfg.bigEndian = true
	})
}

// WithLittleEndian writes strengths in little-endian byte order. This is the default.
func WithLittleEndian() Option {
	return options.NoError(func(cfg *Config) {
		cfg.bigEndian = false
	})
}

// Encode writes examples as a file image: a section.Header followed by the
// compressed payload.
//
// The header records the example count, the dimension (largest index + 1) and
// the label count (largest label + 1). Per example the payload holds:
//
//	label count (uvarint), labels (uvarint each)
//	entry count (uvarint), then (index uvarint, strength float64) pairs
func Encode(examples []Example, opts ...Option) ([]byte, error) {
	cfg := &Config{compression: format.CompressionZstd}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	dimension, labels := 0, 0
	for n, ex := range examples {
		if err := ex.Validate(); err != nil {
			return nil, fmt.Errorf("example %d: %w", n, err)
		}
		if k := len(ex.Indices); k > 0 {
			dimension = max(dimension, ex.Indices[k-1]+1)
		}
		for _, label := range ex.Labels {
			labels = max(labels, label+1)
		}
	}

	header, err := section.NewExamplesHeader(len(examples), dimension, labels)
	if err != nil {
		return nil, err
	}
	header.Flag.SetPayloadCompression(cfg.compression)
	if cfg.bigEndian {
		header.Flag.WithBigEndian()
	}

	w := encoding.NewFileWriter(header.GetEndianEngine())
	defer w.Release()

	for _, ex := range examples {
		w.WriteUvarint(uint64(len(ex.Labels)))
		for _, label := range ex.Labels {
			w.WriteUvarint(uint64(label)) //nolint: gosec
		}
		w.WriteUvarint(uint64(len(ex.Indices)))
		for i, s := range ex.All() {
			w.WriteUvarint(uint64(i)) //nolint: gosec
			w.WriteFloat64(s)
		}
	}

	payload := w.Bytes()
	if err := header.SetPayload(payload); err != nil {
		return nil, err
	}
	compressed, _, err := compress.Compress(cfg.compression, payload)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, section.HeaderSize+len(compressed))
	out = append(out, header.Bytes()...)

	return append(out, compressed...), nil
}

// Decode reads the examples of a file image produced by Encode.
func Decode(data []byte) ([]Example, error) {
	header, err := Inspect(data)
	if err != nil {
		return nil, err
	}
	if header.Capacity > math.MaxInt32 {
		return nil, fmt.Errorf("%w: dimension %d", errs.ErrInvalidHeaderSize, header.Capacity)
	}

	payload, err := compress.Decompress(header.Flag.GetPayloadCompression(), data[section.HeaderSize:], int(header.PayloadSize))
	if err != nil {
		return nil, err
	}
	if err := header.VerifyPayload(payload); err != nil {
		return nil, err
	}

	r := encoding.NewReader(payload, header.GetEndianEngine())
	examples := make([]Example, 0, min(int(header.EntryCount), len(payload)))
	for n := range int(header.EntryCount) {
		ex, err := readExample(r, header)
		if err != nil {
			return nil, fmt.Errorf("example %d of %d: %w", n, header.EntryCount, err)
		}
		examples = append(examples, ex)
	}
	if !r.Done() {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrTrailingData, r.Remaining())
	}

	return examples, nil
}

func readExample(r *encoding.Reader, header *section.Header) (Example, error) {
	var ex Example

	count, err := r.ReadInt()
	if err != nil {
		return ex, fmt.Errorf("label count: %w", err)
	}
	if count > r.Remaining() {
		return ex, fmt.Errorf("%w: %d labels", errs.ErrTruncated, count)
	}
	for range count {
		label, err := r.ReadInt()
		if err != nil {
			return ex, fmt.Errorf("label: %w", err)
		}
		if uint64(label) >= uint64(header.LabelCount) {
			return ex, fmt.Errorf("%w: label %d, file has %d", errs.ErrInvalidVectorFile, label, header.LabelCount)
		}
		ex.Labels = append(ex.Labels, label)
	}

	if count, err = r.ReadInt(); err != nil {
		return ex, fmt.Errorf("entry count: %w", err)
	}
	if count > r.Remaining() {
		return ex, fmt.Errorf("%w: %d entries", errs.ErrTruncated, count)
	}
	ex.Indices = make([]int, 0, count)
	ex.Strengths = make([]float64, 0, count)
	for range count {
		i, err := r.ReadInt()
		if err != nil {
			return ex, fmt.Errorf("index: %w", err)
		}
		if uint64(i) >= uint64(header.Capacity) {
			return ex, fmt.Errorf("%w: index %d, dimension %d", errs.ErrInvalidVectorFile, i, header.Capacity)
		}
		s, err := r.ReadFloat64()
		if err != nil {
			return ex, fmt.Errorf("strength: %w", err)
		}
		ex.Indices = append(ex.Indices, i)
		ex.Strengths = append(ex.Strengths, s)
	}

	if err := ex.Validate(); err != nil {
		return ex, err
	}

	return ex, nil
}

// Save writes examples to path, replacing any existing file.
func Save(path string, examples []Example, opts ...Option) (err error) {
	data, err := Encode(examples, opts...)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create example file: %w", err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	if _, err = file.Write(data); err != nil {
		return fmt.Errorf("write example file %s: %w", path, err)
	}

	return nil
}

// Load reads the example file at path.
func Load(path string) ([]Example, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read example file: %w", err)
	}

	examples, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode example file %s: %w", path, err)
	}

	return examples, nil
}

// Inspect parses and validates the header of an example file image without
// decoding its payload.
func Inspect(data []byte) (*section.Header, error) {
	if len(data) < section.HeaderSize {
		return nil, fmt.Errorf("%w: file of %d bytes is shorter than the header", errs.ErrInvalidHeaderSize, len(data))
	}

	header := &section.Header{}
	if err := header.Parse(data[:section.HeaderSize], section.MagicExamplesV1); err != nil {
		return nil, err
	}

	return header, nil
}
