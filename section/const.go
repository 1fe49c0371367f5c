package section

import "github.com/arloliu/featlex/format"

const (
	// Bit masks
	PerLabelMask     = 0x0001 // Mask for per-label counts bit (bit 0)
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	ReservedBitsMask = 0x000C // Mask for reserved bits (bits 2-3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// Magic numbers (bits 4-15)
	MagicLexiconV1  = 0xEC10 // MagicLexiconV1 is the version 1 magic number for lexicon files.
	MagicExamplesV1 = 0xED10 // MagicExamplesV1 is the version 1 magic number for example vector files.
)

// HeaderSize is the fixed size in bytes of every featlex file header.
const HeaderSize = 32

var validCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}
