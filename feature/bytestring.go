package feature

import (
	"bytes"
	"fmt"
	"strings"

	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/arloliu/featlex/errs"
)

// UTF8 is the canonical name of the default byte encoding.
const UTF8 = "UTF-8"

// ByteString is text held as bytes in a named character encoding. Features
// use it for identifiers and values that were transcoded with Encode, which
// keeps lexicons built from non-UTF-8 corpora byte-exact.
//
// The zero value is the empty string with no encoding.
type ByteString struct {
	encoding string
	data     []byte
}

// EmptyByteString is the identifier of every conjunction.
var EmptyByteString = ByteString{}

// NewByteString encodes s in the named character encoding. Encoding names are
// IANA names or aliases ("UTF-8", "ISO-8859-1", "UTF-16BE", "Shift_JIS", ...).
func NewByteString(s string, encoding string) (ByteString, error) {
	name, enc, err := lookupEncoding(encoding)
	if err != nil {
		return ByteString{}, err
	}
	if enc == nil {
		return ByteString{encoding: name, data: []byte(s)}, nil
	}

	data, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return ByteString{}, fmt.Errorf("%w: %s cannot represent %q: %w", errs.ErrUnsupportedEncoding, name, s, err)
	}

	return ByteString{encoding: name, data: data}, nil
}

// ByteStringFromBytes wraps data, already encoded in the named encoding.
// The slice is copied.
func ByteStringFromBytes(encoding string, data []byte) (ByteString, error) {
	name, _, err := lookupEncoding(encoding)
	if err != nil {
		return ByteString{}, err
	}

	return ByteString{encoding: name, data: bytes.Clone(data)}, nil
}

// Encoding returns the canonical encoding name.
func (b ByteString) Encoding() string {
	return b.encoding
}

// Bytes returns the encoded bytes. The caller must not modify them.
func (b ByteString) Bytes() []byte {
	return b.data
}

// Len returns the number of encoded bytes.
func (b ByteString) Len() int {
	return len(b.data)
}

// IsEmpty reports whether b holds no bytes.
func (b ByteString) IsEmpty() bool {
	return len(b.data) == 0
}

// Equal reports whether b and o hold the same bytes in the same encoding.
// Two empty byte strings are equal regardless of encoding.
func (b ByteString) Equal(o ByteString) bool {
	if len(b.data) == 0 && len(o.data) == 0 {
		return true
	}

	return b.encoding == o.encoding && bytes.Equal(b.data, o.data)
}

// String decodes b. Bytes that cannot be decoded are returned unchanged.
func (b ByteString) String() string {
	if len(b.data) == 0 {
		return ""
	}
	_, enc, err := lookupEncoding(b.encoding)
	if err != nil || enc == nil {
		return string(b.data)
	}
	decoded, err := enc.NewDecoder().Bytes(b.data)
	if err != nil {
		return string(b.data)
	}

	return string(decoded)
}

// Transcode returns b re-encoded in the named encoding, or b itself when it
// already uses that encoding.
func (b ByteString) Transcode(encoding string) (ByteString, error) {
	name, _, err := lookupEncoding(encoding)
	if err != nil {
		return ByteString{}, err
	}
	if name == b.encoding {
		return b, nil
	}

	return NewByteString(b.String(), name)
}

// Append returns the concatenation of b and others in b's encoding. Parts in a
// different encoding are transcoded; parts that cannot be transcoded are
// appended byte for byte.
func (b ByteString) Append(others ...ByteString) ByteString {
	size := len(b.data)
	for _, o := range others {
		size += len(o.data)
	}

	out := make([]byte, 0, size)
	out = append(out, b.data...)
	for _, o := range others {
		if o.encoding != b.encoding && b.encoding != "" && o.encoding != "" {
			if t, err := o.Transcode(b.encoding); err == nil {
				o = t
			}
		}
		out = append(out, o.data...)
	}

	return ByteString{encoding: b.encoding, data: out}
}

// lookupEncoding resolves an encoding name to its canonical IANA name. A nil
// encoding means UTF-8, which needs no transcoding.
func lookupEncoding(name string) (string, xenc.Encoding, error) {
	if strings.EqualFold(name, UTF8) || strings.EqualFold(name, "utf8") {
		return UTF8, nil, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return "", nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedEncoding, name)
	}

	canonical, err := ianaindex.MIME.Name(enc)
	if err != nil {
		if canonical, err = ianaindex.IANA.Name(enc); err != nil {
			canonical = name
		}
	}
	if canonical == UTF8 {
		return UTF8, nil, nil
	}

	return canonical, enc, nil
}
