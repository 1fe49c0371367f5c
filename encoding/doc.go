// Package encoding provides the byte-level Writer and Reader shared by every
// featlex codec: standalone feature records, lexicon entries and example
// vectors.
//
// # Field Encodings
//
//   - uint8: one byte (kind tags, identity flags)
//   - uvarint / varint: encoding/binary varints (indices, counts, value indices)
//   - float64: 8 bytes in the Writer's byte order (strengths)
//   - string / bytes: uvarint length followed by the raw bytes
//   - elided string: uvarint 0 means "same as the assumed value"; otherwise
//     uvarint(len+1) followed by the raw bytes
//
// # Error Handling
//
// Writes go to an in-memory buffer and cannot fail. Every Reader method returns
// an explicit error; a short read yields errs.ErrTruncated wrapped with the
// offset at which the stream ended. The Reader never returns a partially
// decoded value together with a nil error.
//
// # Usage
//
//	w := encoding.NewWriter(endian.GetLittleEndianEngine())
//	defer w.Release()
//	w.WriteString("pkg")
//	w.WriteVarint(-1)
//
//	r := encoding.NewReader(w.Bytes(), endian.GetLittleEndianEngine())
//	pkg, err := r.ReadString()
//
// Writer and Reader are not safe for concurrent use.
package encoding
