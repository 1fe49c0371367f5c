// Package section defines the fixed-size header shared by featlex files.
//
// Lexicon files and example vector files both start with a 32-byte Header
// followed by a single, optionally compressed payload:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                                │
//	│  - Flag (3 bytes): magic, endianness, compression       │
//	│  - Counts (12 bytes): entries, capacity, labels         │
//	│  - PayloadSize (4 bytes), Checksum (8 bytes)            │
//	├─────────────────────────────────────────────────────────┤
//	│ Payload (variable)                                      │
//	│  - Compressed with Flag.PayloadCompression              │
//	│  - Checksum covers the counts and uncompressed bytes    │
//	└─────────────────────────────────────────────────────────┘
//
// # Flag Format
//
//	Byte 0-1 (Options, 16 bits, always little-endian):
//	  Bit 0: Per-label counts (0=global count only, 1=one count per label)
//	  Bit 1: Endianness (0=little-endian, 1=big-endian)
//	  Bit 2-3: Reserved (must be 0)
//	  Bit 4-15: Magic number (0xEC10 lexicon v1, 0xED10 examples v1)
//
//	Byte 2 (PayloadCompression):
//	  0x1: None, 0x2: Zstd, 0x3: S2, 0x4: LZ4
//
// Every other multi-byte field uses the byte order selected by bit 1, so a
// reader inspects the options before decoding anything else.
//
// # Validation
//
// Parse rejects a header that is not exactly HeaderSize bytes, carries the
// wrong magic number, sets reserved bits or bytes, or names an unknown
// compression. VerifyPayload then checks the decompressed payload's size and
// the xxHash64 checksum over the header counts and payload, so a corrupt or truncated file is detected before any entry is
// decoded.
package section
