package compress

// NoOpCompressor stores payloads as they are. It suits small lexicons, where
// codec framing outweighs the savings, and debugging with a hex dump.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data as-is, without copying.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data as-is, without copying, after checking its size.
// The returned slice shares memory with data.
func (c NoOpCompressor) Decompress(data []byte, size int) ([]byte, error) {
	return checkSize(data, size)
}
