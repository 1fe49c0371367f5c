package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeatureKind_Classification(t *testing.T) {
	tests := []struct {
		kind        FeatureKind
		conjunctive bool
		discrete    bool
		identity    IdentityType
	}{
		{KindDiscrete, false, true, IdentityText},
		{KindDiscreteBytes, false, true, IdentityBytes},
		{KindReal, false, false, IdentityText},
		{KindRealBytes, false, false, IdentityBytes},
		{KindDiscreteConjunctive, true, true, IdentityNone},
		{KindRealConjunctive, true, false, IdentityNone},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			require.True(t, tt.kind.Valid())
			require.Equal(t, tt.conjunctive, tt.kind.IsConjunctive())
			require.Equal(t, tt.discrete, tt.kind.IsDiscrete())
			require.Equal(t, !tt.discrete, tt.kind.IsReal())
			require.Equal(t, tt.identity, tt.kind.Identity())
		})
	}
}

func TestFeatureKind_Invalid(t *testing.T) {
	require.False(t, FeatureKind(0).Valid())
	require.False(t, FeatureKind(0x7).Valid())
	require.Equal(t, "Unknown", FeatureKind(0x7).String())
}

func TestParseCompression(t *testing.T) {
	for _, c := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4} {
		parsed, ok := ParseCompression(c.String())
		require.True(t, ok)
		require.Equal(t, c, parsed)
	}

	_, ok := ParseCompression("gzip")
	require.False(t, ok)
}
