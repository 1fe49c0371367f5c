package section

import (
	"testing"

	"github.com/arloliu/featlex/errs"
	"github.com/arloliu/featlex/format"
	"github.com/stretchr/testify/require"
)

func TestNewFlag(t *testing.T) {
	flag := NewFlag(MagicLexiconV1)

	// Default values
	require.False(t, flag.HasPerLabelCounts())
	require.True(t, flag.IsLittleEndian())
	require.False(t, flag.IsBigEndian())
	require.Equal(t, uint16(MagicLexiconV1), flag.GetMagicNumber())
	require.Equal(t, format.CompressionZstd, flag.GetPayloadCompression())
	require.NoError(t, flag.Validate(MagicLexiconV1))
}

func TestFlag_PerLabelCounts(t *testing.T) {
	flag := NewFlag(MagicLexiconV1)

	flag.SetPerLabelCounts(true)
	require.True(t, flag.HasPerLabelCounts())
	require.Equal(t, uint16(MagicLexiconV1), flag.GetMagicNumber())

	flag.SetPerLabelCounts(false)
	require.False(t, flag.HasPerLabelCounts())
}

func TestFlag_Endianness(t *testing.T) {
	flag := NewFlag(MagicExamplesV1)

	flag.WithBigEndian()
	require.True(t, flag.IsBigEndian())
	require.False(t, flag.IsLittleEndian())
	require.Equal(t, uint16(MagicExamplesV1), flag.GetMagicNumber())

	flag.WithLittleEndian()
	require.True(t, flag.IsLittleEndian())
}

func TestFlag_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *Flag)
		magic   uint16
		wantErr error
	}{
		{"valid", func(*Flag) {}, MagicLexiconV1, nil},
		{"other file type", func(*Flag) {}, MagicExamplesV1, errs.ErrInvalidMagicNumber},
		{"reserved bit", func(f *Flag) { f.Options |= 0x0004 }, MagicLexiconV1, errs.ErrInvalidHeaderFlags},
		{"unknown compression", func(f *Flag) { f.PayloadCompression = 0x9 }, MagicLexiconV1, errs.ErrInvalidHeaderFlags},
		{"zero compression", func(f *Flag) { f.PayloadCompression = 0 }, MagicLexiconV1, errs.ErrInvalidHeaderFlags},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := NewFlag(MagicLexiconV1)
			tt.mutate(&flag)

			err := flag.Validate(tt.magic)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFlag_AllCompressions(t *testing.T) {
	for _, c := range []format.CompressionType{format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		flag := NewFlag(MagicLexiconV1)
		flag.SetPayloadCompression(c)
		require.Equal(t, c, flag.GetPayloadCompression())
		require.NoError(t, flag.Validate(MagicLexiconV1))
	}
}
