// Package endian selects the byte order used for the fixed-width fields of
// featlex streams: file header integers, checksums and float64 strengths.
//
// Variable-length fields (indices, counts, string lengths) are varints and do
// not depend on byte order. A lexicon file records its byte order in the header
// flag, so a file written on a big-endian host reads back anywhere:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint64(buf, math.Float64bits(strength))
//
// All functions are safe for concurrent use; engines are stateless.
package endian

import "encoding/binary"

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder so a single
// value can both append to a growing buffer and decode from a fixed slice.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the featlex default.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// ForBigEndian returns the big-endian engine when big is true and the
// little-endian engine otherwise. Header parsers use it after reading the
// endianness bit.
func ForBigEndian(big bool) EndianEngine {
	if big {
		return GetBigEndianEngine()
	}

	return GetLittleEndianEngine()
}
