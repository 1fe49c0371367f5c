package hash

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.id, ID(tt.data))
			require.Equal(t, tt.id, Bytes([]byte(tt.data)))
		})
	}
}

func TestParts(t *testing.T) {
	require.Equal(t, ID("test"), Parts("test"))
	require.Equal(t, ID(""), Parts())
	require.NotEqual(t, Parts("ab", "c"), Parts("a", "bc"))
	require.Equal(t, Parts("pkg", "cls", "id"), Parts("pkg", "cls", "id"))
}

func randString(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, n)
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range b {
		b[i] = letters[seededRand.Intn(len(letters))]
	}

	return string(b)
}

func BenchmarkParts(b *testing.B) {
	pkg, cls, id := randString(12), randString(16), randString(8)
	b.ResetTimer()
	for b.Loop() {
		Parts(pkg, cls, id)
	}
}
