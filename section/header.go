package section

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/featlex/endian"
	"github.com/arloliu/featlex/errs"
	"github.com/cespare/xxhash/v2"
)

// Header is the fixed-size header at the start of lexicon and example files.
// It is 32 bytes; the magic number in Flag tells the file types apart.
//
// Layout:
//
//	Bytes  | Field              | Type    | Description
//	-------|--------------------|---------|----------------------------------------
//	0-1    | Flag.Options       | uint16  | Magic, endianness, per-label (always LE)
//	2      | PayloadCompression | uint8   | format.CompressionType of the payload
//	3      | Reserved           | uint8   | Must be zero
//	4-7    | EntryCount         | uint32  | Lexicon entries or examples
//	8-11   | Capacity           | uint32  | Next lexicon index / vector dimension
//	12-15  | LabelCount         | uint32  | Labels counted per entry, 0 for global
//	16-19  | PayloadSize        | uint32  | Uncompressed payload size in bytes
//	20-27  | Checksum           | uint64  | xxHash64 of the counts and payload
//	28-31  | Reserved           | [4]byte | Must be zero
type Header struct {
	// Flag is a packed field for options, the magic number and payload compression.
	Flag Flag // 3 bytes, offset 0-2

	// EntryCount is the number of live lexicon entries or the number of examples.
	EntryCount uint32 // 4 bytes, offset 4-7
	// Capacity is the next index a lexicon would assign, so indices survive
	// pruning holes. Example files store the vector dimension.
	Capacity uint32 // 4 bytes, offset 8-11
	// LabelCount is the number of per-label counters, 0 when counts are global.
	LabelCount uint32 // 4 bytes, offset 12-15
	// PayloadSize is the uncompressed size of the payload in bytes.
	PayloadSize uint32 // 4 bytes, offset 16-19
	// Checksum is the xxHash64 of EntryCount, Capacity and LabelCount
	// followed by the uncompressed payload.
	Checksum uint64 // 8 bytes, offset 20-27

	Reserved [4]byte // Reserved for future use, must be zero, offset 28-31
}

// NewLexiconHeader creates a header for a lexicon file.
func NewLexiconHeader(entryCount, capacity, labelCount int) (*Header, error) {
	return newHeader(MagicLexiconV1, entryCount, capacity, labelCount)
}

// NewExamplesHeader creates a header for an example vector file.
func NewExamplesHeader(exampleCount, dimension, labelCount int) (*Header, error) {
	return newHeader(MagicExamplesV1, exampleCount, dimension, labelCount)
}

func newHeader(magic uint16, entryCount, capacity, labelCount int) (*Header, error) {
	for _, v := range []int{entryCount, capacity, labelCount} {
		if v < 0 || uint64(v) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: count %d out of range", errs.ErrInvalidHeaderSize, v)
		}
	}

	h := &Header{
		Flag:       NewFlag(magic),
		EntryCount: uint32(entryCount), //nolint: gosec
		Capacity:   uint32(capacity),   //nolint: gosec
		LabelCount: uint32(labelCount), //nolint: gosec
	}
	h.Flag.SetPerLabelCounts(labelCount > 0)

	return h, nil
}

// SetPayload records the size and checksum of the uncompressed payload.
func (h *Header) SetPayload(payload []byte) error {
	if uint64(len(payload)) > math.MaxUint32 {
		return fmt.Errorf("%w: payload of %d bytes", errs.ErrInvalidHeaderSize, len(payload))
	}
	h.PayloadSize = uint32(len(payload)) //nolint: gosec
	h.Checksum = h.sum(payload)

	return nil
}

// sum hashes the counts in a fixed byte order ahead of the payload, so a
// tampered count fails verification like a tampered payload does.
func (h *Header) sum(payload []byte) uint64 {
	var counts [12]byte
	binary.LittleEndian.PutUint32(counts[0:4], h.EntryCount)
	binary.LittleEndian.PutUint32(counts[4:8], h.Capacity)
	binary.LittleEndian.PutUint32(counts[8:12], h.LabelCount)

	d := xxhash.New()
	_, _ = d.Write(counts[:])
	_, _ = d.Write(payload)

	return d.Sum64()
}

// VerifyPayload checks an uncompressed payload against the recorded size and checksum.
func (h *Header) VerifyPayload(payload []byte) error {
	if uint64(len(payload)) != uint64(h.PayloadSize) {
		return fmt.Errorf("%w: got %d bytes, header says %d", errs.ErrPayloadSizeMismatch, len(payload), h.PayloadSize)
	}
	if sum := h.sum(payload); sum != h.Checksum {
		return fmt.Errorf("%w: got %016x, header says %016x", errs.ErrChecksumMismatch, sum, h.Checksum)
	}

	return nil
}

// Parse parses the header from a byte slice and validates it against magic.
// It returns an error if the data is not exactly 32 bytes or if the flags are invalid.
func (h *Header) Parse(data []byte, magic uint16) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: got %d bytes, want %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	// Options are always little-endian; they say how to read the rest.
	h.Flag.Options = binary.LittleEndian.Uint16(data[0:2])
	h.Flag.PayloadCompression = data[2]
	if data[3] != 0 {
		return fmt.Errorf("%w: reserved byte set", errs.ErrInvalidHeaderFlags)
	}

	if err := h.Flag.Validate(magic); err != nil {
		return err
	}

	engine := h.GetEndianEngine()
	h.EntryCount = engine.Uint32(data[4:8])
	h.Capacity = engine.Uint32(data[8:12])
	h.LabelCount = engine.Uint32(data[12:16])
	h.PayloadSize = engine.Uint32(data[16:20])
	h.Checksum = engine.Uint64(data[20:28])
	copy(h.Reserved[:], data[28:32])
	if h.Reserved != [4]byte{} {
		return fmt.Errorf("%w: reserved bytes set", errs.ErrInvalidHeaderFlags)
	}

	if h.Flag.HasPerLabelCounts() != (h.LabelCount > 0) {
		return fmt.Errorf("%w: per-label bit disagrees with label count %d", errs.ErrInvalidHeaderFlags, h.LabelCount)
	}
	if h.EntryCount > h.Capacity && magic == MagicLexiconV1 {
		return fmt.Errorf("%w: %d entries exceed capacity %d", errs.ErrInvalidHeaderSize, h.EntryCount, h.Capacity)
	}

	return nil
}

// Bytes serializes the Header into a byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.GetEndianEngine()

	binary.LittleEndian.PutUint16(b[0:2], h.Flag.Options)
	b[2] = h.Flag.PayloadCompression
	engine.PutUint32(b[4:8], h.EntryCount)
	engine.PutUint32(b[8:12], h.Capacity)
	engine.PutUint32(b[12:16], h.LabelCount)
	engine.PutUint32(b[16:20], h.PayloadSize)
	engine.PutUint64(b[20:28], h.Checksum)
	copy(b[28:32], h.Reserved[:])

	return b
}

// GetEndianEngine returns the appropriate endian engine based on the header flags.
func (h *Header) GetEndianEngine() endian.EndianEngine {
	return endian.ForBigEndian(h.Flag.IsBigEndian())
}
