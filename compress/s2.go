package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor favours speed over ratio; a good fit for lexicons that are
// rewritten after every training epoch.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses the input data using S2 compression.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses the input data using S2 decompression.
func (c S2Compressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return checkSize(nil, size)
	}

	if n, err := s2.DecodedLen(data); err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	} else if n != size {
		return nil, sizeMismatch(n, size)
	}

	out, err := s2.Decode(make([]byte, size), data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return checkSize(out, size)
}
