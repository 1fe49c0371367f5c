package section

import (
	"fmt"

	"github.com/arloliu/featlex/errs"
	"github.com/arloliu/featlex/format"
)

// Flag represents the packed flag field at the start of a file header.
type Flag struct {
	// Options is a packed field for various options.
	// Bit 0 is the per-label flag, 1 means every entry stores one count per label.
	// Bit 1 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 2-3 are reserved for future use, must be set to 0.
	// Bits 4-15 are magic number to identify the file format:
	//   - 0xEC10: lexicon file v1
	//   - 0xED10: example vector file v1
	Options uint16

	// PayloadCompression indicates the compression used for the payload.
	// Valid values: CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4
	PayloadCompression uint8
}

// NewFlag creates a little-endian, zstd-compressed Flag for the given magic number.
func NewFlag(magic uint16) Flag {
	flag := Flag{
		Options:            magic & MagicNumberMask,
		PayloadCompression: uint8(format.CompressionZstd),
	}
	flag.WithLittleEndian()

	return flag
}

// HasPerLabelCounts returns whether entries carry per-label counts.
func (f Flag) HasPerLabelCounts() bool {
	return (f.Options & PerLabelMask) != 0
}

// SetPerLabelCounts enables or disables per-label counts.
func (f *Flag) SetPerLabelCounts(enabled bool) {
	if enabled {
		f.Options |= PerLabelMask
	} else {
		f.Options &^= PerLabelMask
	}
}

// IsLittleEndian returns whether the data is little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the data is big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// SetPayloadCompression sets the payload compression type.
func (f *Flag) SetPayloadCompression(compression format.CompressionType) {
	f.PayloadCompression = uint8(compression)
}

// GetPayloadCompression returns the payload compression type.
func (f Flag) GetPayloadCompression() format.CompressionType {
	return format.CompressionType(f.PayloadCompression)
}

// Validate checks that the flag carries the expected magic number, zero
// reserved bits and a known compression.
func (f Flag) Validate(magic uint16) error {
	if f.GetMagicNumber() != magic {
		return fmt.Errorf("%w: 0x%04x, want 0x%04x", errs.ErrInvalidMagicNumber, f.GetMagicNumber(), magic)
	}

	if (f.Options & ReservedBitsMask) != 0 {
		return fmt.Errorf("%w: reserved bits set", errs.ErrInvalidHeaderFlags)
	}

	if _, ok := validCompressions[f.PayloadCompression]; !ok {
		return fmt.Errorf("%w: compression 0x%x", errs.ErrInvalidHeaderFlags, f.PayloadCompression)
	}

	return nil
}
