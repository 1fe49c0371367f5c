package lexicon

import (
	"fmt"

	"github.com/arloliu/featlex/endian"
	"github.com/arloliu/featlex/errs"
	"github.com/arloliu/featlex/format"
	"github.com/arloliu/featlex/internal/options"
	"github.com/rs/zerolog"
)

// MaxLabels bounds the number of per-label counters an entry may carry.
const MaxLabels = 1 << 16

type endianness uint8

const (
	littleEndianOpt endianness = iota
	bigEndianOpt
)

// Config holds the settings shared by a Lexicon and the files it writes.
//
// Settings read back from a file header (compression, byte order, label count)
// are recorded here, so a loaded lexicon is saved the way it was stored unless
// options say otherwise.
type Config struct {
	labelCount  int
	compression format.CompressionType
	bigEndian   bool
	engine      endian.EndianEngine
	logger      zerolog.Logger
}

func newConfig() *Config {
	return &Config{
		compression: format.CompressionZstd,
		engine:      endian.GetLittleEndianEngine(),
		logger:      zerolog.Nop(),
	}
}

func (c *Config) setLabelCount(n int) error {
	if n < 0 || n > MaxLabels {
		return fmt.Errorf("%w: label count %d not in [0, %d]", errs.ErrInvalidLabel, n, MaxLabels)
	}
	c.labelCount = n

	return nil
}

func (c *Config) setCompression(comp format.CompressionType) error {
	switch comp {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		c.compression = comp
		return nil
	default:
		return fmt.Errorf("%w: %v", errs.ErrInvalidCompressionType, comp)
	}
}

func (c *Config) setEndianness(e endianness) {
	c.bigEndian = e == bigEndianOpt
	c.engine = endian.ForBigEndian(c.bigEndian)
}

// LabelCount returns the number of per-label counters each entry carries.
func (c *Config) LabelCount() int {
	return c.labelCount
}

// Compression returns the payload compression used when saving.
func (c *Config) Compression() format.CompressionType {
	return c.compression
}

// Engine returns the byte order used when saving.
func (c *Config) Engine() endian.EndianEngine {
	return c.engine
}

// Option is a functional option for configuring a Lexicon.
type Option = options.Option[*Config]

// WithLabelCount preallocates n per-label counters on every entry.
// Counters also grow on demand when a larger label is counted.
// Default is 0: counts are global until a label is seen.
func WithLabelCount(n int) Option {
	return options.New(func(cfg *Config) error {
		return cfg.setLabelCount(n)
	})
}

// WithCompression configures the payload compression used when saving.
// Default is format.CompressionZstd.
func WithCompression(comp format.CompressionType) Option {
	return options.New(func(cfg *Config) error {
		return cfg.setCompression(comp)
	})
}

// WithLittleEndian writes fixed-width fields in little-endian byte order.
// This is the default.
func WithLittleEndian() Option {
	return options.NoError(func(cfg *Config) {
		cfg.setEndianness(littleEndianOpt)
	})
}

// WithBigEndian writes fixed-width fields in big-endian byte order.
func WithBigEndian() Option {
	return options.NoError(func(cfg *Config) {
		cfg.setEndianness(bigEndianOpt)
	})
}

// WithLogger sets the logger used for pruning and persistence events.
// Default is a disabled logger.
func WithLogger(logger zerolog.Logger) Option {
	return options.NoError(func(cfg *Config) {
		cfg.logger = logger
	})
}
