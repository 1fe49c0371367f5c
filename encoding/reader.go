package encoding

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/featlex/endian"
	"github.com/arloliu/featlex/errs"
)

// Reader decodes featlex fields from a byte slice.
//
// Every method either returns a fully decoded value or an error; the read
// offset is only advanced on success.
type Reader struct {
	data   []byte
	off    int
	engine endian.EndianEngine
}

// NewReader creates a Reader over data. The Reader does not copy data;
// strings and byte slices it returns are copies.
func NewReader(data []byte, engine endian.EndianEngine) *Reader {
	return &Reader{
		data:   data,
		engine: engine,
	}
}

// Engine returns the byte order used for fixed-width fields.
func (r *Reader) Engine() endian.EndianEngine {
	return r.engine
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// Done reports whether every byte has been consumed.
func (r *Reader) Done() bool {
	return r.off >= len(r.data)
}

func (r *Reader) truncated(need int) error {
	return fmt.Errorf("%w: need %d bytes at offset %d, have %d", errs.ErrTruncated, need, r.off, r.Remaining())
}

// ReadUint8 reads a single byte.
func (r *Reader) ReadUint8() (uint8, error) {
	if r.Remaining() < 1 {
		return 0, r.truncated(1)
	}
	b := r.data[r.off]
	r.off++

	return b, nil
}

// ReadUvarint reads an unsigned varint.
func (r *Reader) ReadUvarint() (uint64, error) {
	v, n := binary.Uvarint(r.data[r.off:])
	if n == 0 {
		return 0, r.truncated(1)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: uvarint at offset %d", errs.ErrVarintOverflow, r.off)
	}
	r.off += n

	return v, nil
}

// ReadVarint reads a zigzag signed varint.
func (r *Reader) ReadVarint() (int64, error) {
	v, n := binary.Varint(r.data[r.off:])
	if n == 0 {
		return 0, r.truncated(1)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: varint at offset %d", errs.ErrVarintOverflow, r.off)
	}
	r.off += n

	return v, nil
}

// ReadInt16 reads a signed varint that must fit in an int16.
func (r *Reader) ReadInt16() (int16, error) {
	start := r.off
	v, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	if v < math.MinInt16 || v > math.MaxInt16 {
		r.off = start
		return 0, fmt.Errorf("%w: %d does not fit int16", errs.ErrVarintOverflow, v)
	}

	return int16(v), nil
}

// ReadInt reads an unsigned varint that must fit in a non-negative int32,
// the range of lexicon indices and counts.
func (r *Reader) ReadInt() (int, error) {
	start := r.off
	v, err := r.ReadUvarint()
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt32 {
		r.off = start
		return 0, fmt.Errorf("%w: %d does not fit int32", errs.ErrVarintOverflow, v)
	}

	return int(v), nil
}

// ReadFloat64 reads 8 bytes in the Reader's byte order as an IEEE-754 value.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(v), nil
}

// ReadUint64 reads 8 bytes in the Reader's byte order.
func (r *Reader) ReadUint64() (uint64, error) {
	if r.Remaining() < 8 {
		return 0, r.truncated(8)
	}
	v := r.engine.Uint64(r.data[r.off:])
	r.off += 8

	return v, nil
}

// ReadString reads a length-prefixed string.
func (r *Reader) ReadString() (string, error) {
	b, err := r.readPrefixed()
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// ReadBytes reads a length-prefixed byte slice and returns a copy of it.
func (r *Reader) ReadBytes() ([]byte, error) {
	b, err := r.readPrefixed()
	if err != nil {
		return nil, err
	}

	return append([]byte(nil), b...), nil
}

// ReadElidedString reads a string written by Writer.WriteElidedString,
// substituting assumed for the "same as assumed" marker. The second result
// reports whether the value was elided.
func (r *Reader) ReadElidedString(assumed string) (string, bool, error) {
	b, elided, err := r.readElided()
	if err != nil {
		return "", false, err
	}
	if elided {
		return assumed, true, nil
	}

	return string(b), false, nil
}

// ReadElidedBytes reads bytes written by Writer.WriteElidedBytes. When the
// marker is found it returns (nil, true, nil) and the caller substitutes its
// assumed value.
func (r *Reader) ReadElidedBytes() ([]byte, bool, error) {
	b, elided, err := r.readElided()
	if err != nil || elided {
		return nil, elided, err
	}

	return append([]byte(nil), b...), false, nil
}

func (r *Reader) readElided() ([]byte, bool, error) {
	start := r.off
	marker, err := r.ReadUvarint()
	if err != nil {
		return nil, false, err
	}
	if marker == 0 {
		return nil, true, nil
	}

	n := marker - 1
	if n > uint64(r.Remaining()) {
		r.off = start
		return nil, false, fmt.Errorf("%w: string of %d bytes at offset %d, have %d", errs.ErrTruncated, n, start, len(r.data)-start)
	}
	b := r.data[r.off : r.off+int(n)]
	r.off += int(n)

	return b, false, nil
}

// readPrefixed reads a uvarint length and that many bytes. The returned slice
// aliases the Reader's data.
func (r *Reader) readPrefixed() ([]byte, error) {
	start := r.off
	n, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(r.Remaining()) {
		r.off = start
		return nil, fmt.Errorf("%w: string of %d bytes at offset %d, have %d", errs.ErrTruncated, n, start, len(r.data)-start)
	}
	b := r.data[r.off : r.off+int(n)]
	r.off += int(n)

	return b, nil
}

// ReadRaw reads exactly n bytes without a length prefix. The returned slice
// aliases the Reader's data.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, r.truncated(n)
	}
	b := r.data[r.off : r.off+n]
	r.off += n

	return b, nil
}
