package endian

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForBigEndian(t *testing.T) {
	require.Equal(t, GetBigEndianEngine(), ForBigEndian(true))
	require.Equal(t, GetLittleEndianEngine(), ForBigEndian(false))
}

func TestEngine_Float64RoundTrip(t *testing.T) {
	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		for _, v := range []float64{0, 1, -1.5, math.Pi, math.Inf(1), math.SmallestNonzeroFloat64} {
			buf := engine.AppendUint64(nil, math.Float64bits(v))
			require.Len(t, buf, 8)
			require.Equal(t, v, math.Float64frombits(engine.Uint64(buf)))
		}
	}
}

func TestEngine_ByteLayout(t *testing.T) {
	le := GetLittleEndianEngine().AppendUint32(nil, 0x01020304)
	be := GetBigEndianEngine().AppendUint32(nil, 0x01020304)

	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, le)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, be)
}
