package compress

// ZstdCompressor is the default payload codec. Lexicon payloads are dominated by
// repeated package, classifier and identifier prefixes, which Zstandard's
// dictionary matching compresses well.
//
// The pure-Go klauspost/compress backend is used unless the module is built
// with cgo and the gozstd tag, which selects the libzstd binding instead. Both
// produce standard zstd frames, so files are interchangeable.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(payload)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
