package encoding

import (
	"encoding/binary"
	"math"

	"github.com/arloliu/featlex/endian"
	"github.com/arloliu/featlex/internal/pool"
)

// Writer appends featlex fields to a pooled byte buffer.
//
// Note: The Writer is NOT reusable after Release.
type Writer struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	file   bool
	tmp    [binary.MaxVarintLen64]byte
}

// NewWriter creates a Writer sized for a handful of feature records.
func NewWriter(engine endian.EndianEngine) *Writer {
	return &Writer{
		buf:    pool.GetStreamBuffer(),
		engine: engine,
	}
}

// NewFileWriter creates a Writer sized for a whole lexicon or example payload.
func NewFileWriter(engine endian.EndianEngine) *Writer {
	return &Writer{
		buf:    pool.GetFileBuffer(),
		engine: engine,
		file:   true,
	}
}

// Engine returns the byte order used for fixed-width fields.
func (w *Writer) Engine() endian.EndianEngine {
	return w.engine
}

// WriteUint8 appends a single byte.
func (w *Writer) WriteUint8(b uint8) {
	w.buf.MustWriteByte(b)
}

// WriteUvarint appends v as an unsigned varint.
func (w *Writer) WriteUvarint(v uint64) {
	n := binary.PutUvarint(w.tmp[:], v)
	w.buf.MustWrite(w.tmp[:n])
}

// WriteVarint appends v as a zigzag signed varint.
func (w *Writer) WriteVarint(v int64) {
	n := binary.PutVarint(w.tmp[:], v)
	w.buf.MustWrite(w.tmp[:n])
}

// WriteFloat64 appends the IEEE-754 bits of v in the Writer's byte order.
func (w *Writer) WriteFloat64(v float64) {
	w.buf.B = w.engine.AppendUint64(w.buf.B, math.Float64bits(v))
}

// WriteUint64 appends v as 8 bytes in the Writer's byte order.
func (w *Writer) WriteUint64(v uint64) {
	w.buf.B = w.engine.AppendUint64(w.buf.B, v)
}

// WriteString appends a uvarint length followed by the bytes of s.
func (w *Writer) WriteString(s string) {
	w.buf.Grow(binary.MaxVarintLen64 + len(s))
	w.WriteUvarint(uint64(len(s)))
	w.buf.MustWriteString(s)
}

// WriteBytes appends a uvarint length followed by b.
func (w *Writer) WriteBytes(b []byte) {
	w.buf.Grow(binary.MaxVarintLen64 + len(b))
	w.WriteUvarint(uint64(len(b)))
	w.buf.MustWrite(b)
}

// WriteElidedString appends s, or the "same as assumed" marker when s equals
// assumed. It reports whether s was elided.
func (w *Writer) WriteElidedString(s, assumed string) bool {
	if s == assumed {
		w.WriteUvarint(0)
		return true
	}

	w.buf.Grow(binary.MaxVarintLen64 + len(s))
	w.WriteUvarint(uint64(len(s)) + 1)
	w.buf.MustWriteString(s)

	return false
}

// WriteElidedBytes appends b, or the "same as assumed" marker when same is
// true. The caller decides sameness because byte identities also compare
// their character encoding.
func (w *Writer) WriteElidedBytes(b []byte, same bool) {
	if same {
		w.WriteUvarint(0)
		return
	}

	w.buf.Grow(binary.MaxVarintLen64 + len(b))
	w.WriteUvarint(uint64(len(b)) + 1)
	w.buf.MustWrite(b)
}

// WriteRaw appends b without a length prefix.
func (w *Writer) WriteRaw(b []byte) {
	w.buf.MustWrite(b)
}

// Bytes returns the encoded data. The slice is owned by the Writer and is
// valid until the next write or Release.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of encoded bytes.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Reset discards the encoded data and keeps the buffer.
func (w *Writer) Reset() {
	w.buf.Reset()
}

// Release returns the buffer to its pool.
func (w *Writer) Release() {
	if w.buf == nil {
		return
	}
	if w.file {
		pool.PutFileBuffer(w.buf)
	} else {
		pool.PutStreamBuffer(w.buf)
	}
	w.buf = nil
}
