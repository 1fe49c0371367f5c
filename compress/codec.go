package compress

import (
	"fmt"

	"github.com/arloliu/featlex/errs"
	"github.com/arloliu/featlex/format"
)

// Compressor compresses a complete file payload: the encoded entries of a
// lexicon or the encoded examples of a vector file.
//
// Memory management:
//   - Returned slice is owned by the caller, except for NoOpCompressor which
//     returns its input
//   - Input slice is not modified
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload compressed by the matching Compressor.
//
// size is the uncompressed payload size recorded in the file header. Codecs
// use it to size their output buffer and fail with errs.ErrPayloadSizeMismatch
// when the data does not decompress to exactly that many bytes.
type Decompressor interface {
	Decompress(data []byte, size int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// Stats describes one payload compression, reported by lexicon and vector
// encoders and printed by lexinspect.
type Stats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of the payload before compression
	OriginalSize int

	// CompressedSize is the size of the payload after compression
	CompressedSize int
}

// Ratio returns the compression ratio (compressed size / original size), or 0
// for an empty payload.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved by compression as a percentage.
func (s Stats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.Ratio()) * 100.0
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s (0x%x)", errs.ErrInvalidCompressionType, compressionType, uint8(compressionType))
}

// Compress compresses payload with the codec for compressionType and reports
// the sizes involved.
func Compress(compressionType format.CompressionType, payload []byte) ([]byte, Stats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, Stats{}, err
	}

	out, err := codec.Compress(payload)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%s compression failed: %w", compressionType, err)
	}

	return out, Stats{Algorithm: compressionType, OriginalSize: len(payload), CompressedSize: len(out)}, nil
}

// Decompress restores a payload of the given uncompressed size with the codec
// for compressionType.
func Decompress(compressionType format.CompressionType, data []byte, size int) ([]byte, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	return codec.Decompress(data, size)
}

// maxPresizeRatio bounds how far a header-declared size may exceed the
// compressed input before it is no longer trusted as an allocation hint.
const maxPresizeRatio = 64

func checkSize(out []byte, size int) ([]byte, error) {
	if len(out) != size {
		return nil, sizeMismatch(len(out), size)
	}

	return out, nil
}

func sizeMismatch(got, want int) error {
	return fmt.Errorf("%w: decompressed %d bytes, want %d", errs.ErrPayloadSizeMismatch, got, want)
}

// presize returns a capacity hint for decompressing compressed bytes into a
// payload said to be size bytes long. The size comes from an unchecked header
// field, so the hint never outgrows the input by more than maxPresizeRatio.
func presize(size, compressed int) int {
	return max(0, min(size, compressed*maxPresizeRatio))
}
