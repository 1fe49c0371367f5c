// Package errs defines the sentinel errors returned by featlex packages.
//
// Errors are grouped by how a caller should react to them:
//
//   - Constraint violations: the feature being built is invalid; fix the producer.
//   - Decode faults: a persisted stream is truncated or malformed.
//   - Corruption: a lexicon index refers to an entry that does not exist.
//   - Mutation errors: the requested change is not allowed in the lexicon's state.
//
// Callers match them with errors.Is; most are wrapped with field or index context.
package errs

import "errors"

// Constraint violations.
var (
	ErrValueIndexOutOfRange      = errors.New("value index out of declared range")
	ErrValueIndexOverflow        = errors.New("conjunction value count overflows int16")
	ErrKindMismatch              = errors.New("feature kind mismatch")
	ErrStrengthNotRepresentable  = errors.New("strength not representable by feature kind")
	ErrNilFeature                = errors.New("nil feature")
	ErrUnsupportedEncoding       = errors.New("unsupported character encoding")
	ErrInvalidLabel              = errors.New("invalid label")
	ErrInvalidPruneThreshold     = errors.New("invalid prune threshold")
	ErrInvalidCompressionType    = errors.New("invalid compression type")
	ErrMismatchedVectorDimension = errors.New("indices and strengths differ in length")
)

// Decode faults.
var (
	ErrMalformedFeature    = errors.New("malformed feature")
	ErrTruncated           = errors.New("truncated stream")
	ErrUnknownFeatureKind  = errors.New("unknown feature kind")
	ErrIdentityMismatch    = errors.New("identity flag does not match feature kind")
	ErrInvalidHeaderSize   = errors.New("invalid header size")
	ErrInvalidHeaderFlags  = errors.New("invalid header flags")
	ErrInvalidMagicNumber  = errors.New("invalid magic number")
	ErrChecksumMismatch    = errors.New("payload checksum mismatch")
	ErrPayloadSizeMismatch = errors.New("payload size mismatch")
	ErrTrailingData        = errors.New("trailing data after last entry")
	ErrVarintOverflow      = errors.New("varint overflows target type")
	ErrInvalidVectorFile   = errors.New("invalid example file")
)

// Corruption.
var (
	ErrIndexOutOfRange     = errors.New("lexicon index out of range")
	ErrRemovedEntry        = errors.New("lexicon index refers to a removed entry")
	ErrFeatureNotInterned  = errors.New("feature not interned")
	ErrChildNotInterned    = errors.New("conjunction child not interned")
	ErrDuplicateEntryIndex = errors.New("duplicate lexicon entry index")
)

// Mutation errors.
var (
	ErrLexiconFrozen = errors.New("lexicon is frozen")
	ErrLiveParent    = errors.New("entry is referenced by a live conjunction")
	ErrNotChild      = errors.New("entry is not a child of the conjunction")
)
