// Package compress provides the payload codecs of featlex files.
//
// Lexicon and example files hold one payload after their fixed header. The
// payload is encoded first (varints, elided strings) and then compressed as a
// whole with the codec named in the header flag:
//   - None: No compression (fastest, largest)
//   - Zstd: Best ratio on repetitive lexicon entries, the default
//   - S2: Balanced compression and speed
//   - LZ4: Fastest decompression
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte, size int) ([]byte, error)
//	}
//
// Decompressors receive the uncompressed size recorded in the header. They
// allocate their output once and fail with errs.ErrPayloadSizeMismatch when
// the payload does not restore to exactly that size, so a damaged file is
// reported before its entries are decoded.
//
// # Usage
//
//	out, stats, err := compress.Compress(format.CompressionZstd, payload)
//	...
//	payload, err := compress.Decompress(format.CompressionZstd, out, stats.OriginalSize)
//
// # Zstd Backends
//
// Zstd uses github.com/klauspost/compress/zstd with pooled encoders and
// decoders. Building with cgo and the gozstd tag switches to
// github.com/valyala/gozstd:
//
//	go build -tags gozstd ./...
//
// All codecs are stateless values and safe for concurrent use.
package compress
