package feature

import (
	"testing"

	"github.com/arloliu/featlex/errs"
	"github.com/stretchr/testify/require"
)

func TestNewByteString(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		encoding string
		want     []byte
	}{
		{"utf8", "naïve", "UTF-8", []byte("naïve")},
		{"utf8 alias", "abc", "utf8", []byte("abc")},
		{"latin1", "naïve", "ISO-8859-1", []byte{'n', 'a', 0xef, 'v', 'e'}},
		{"utf16", "ab", "UTF-16BE", []byte{0, 'a', 0, 'b'}},
		{"empty", "", "ISO-8859-1", []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewByteString(tt.text, tt.encoding)
			require.NoError(t, err)
			require.Equal(t, len(tt.want), b.Len())
			if len(tt.want) > 0 {
				require.Equal(t, tt.want, b.Bytes())
			}
			require.Equal(t, tt.text, b.String())
		})
	}
}

func TestNewByteString_Errors(t *testing.T) {
	_, err := NewByteString("x", "klingon")
	require.ErrorIs(t, err, errs.ErrUnsupportedEncoding)

	_, err = NewByteString("日本", "ISO-8859-1")
	require.ErrorIs(t, err, errs.ErrUnsupportedEncoding)
}

func TestByteString_Equal(t *testing.T) {
	a, err := NewByteString("abc", UTF8)
	require.NoError(t, err)
	b, err := ByteStringFromBytes("utf-8", []byte("abc"))
	require.NoError(t, err)
	latin, err := NewByteString("abc", "ISO-8859-1")
	require.NoError(t, err)

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(latin), "same bytes in a different encoding")
	require.True(t, EmptyByteString.Equal(ByteString{encoding: UTF8}))
}

func TestByteString_Transcode(t *testing.T) {
	a, err := NewByteString("café", UTF8)
	require.NoError(t, err)

	same, err := a.Transcode("utf8")
	require.NoError(t, err)
	require.Equal(t, a, same)

	latin, err := a.Transcode("ISO-8859-1")
	require.NoError(t, err)
	require.Equal(t, 4, latin.Len())
	require.Equal(t, "café", latin.String())
}

func TestByteString_Append(t *testing.T) {
	a, err := NewByteString("ab", "ISO-8859-1")
	require.NoError(t, err)
	b, err := NewByteString("é", UTF8)
	require.NoError(t, err)

	joined := a.Append(b)
	require.Equal(t, a.Encoding(), joined.Encoding())
	require.Equal(t, []byte{'a', 'b', 0xe9}, joined.Bytes())
	require.Equal(t, "abé", joined.String())
}
