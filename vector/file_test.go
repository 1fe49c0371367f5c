package vector

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/featlex/errs"
	"github.com/arloliu/featlex/format"
	"github.com/arloliu/featlex/section"
)

func sampleExamples() []Example {
	return []Example{
		{Labels: []int{0}, Indices: []int{0, 3, 7}, Strengths: []float64{1, -0.5, 2}},
		{Labels: []int{2, 1}, Indices: []int{1}, Strengths: []float64{1e-9}},
		{},
		{Indices: []int{41}, Strengths: []float64{1}},
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	for _, comp := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		for name, order := range map[string]Option{"little": WithLittleEndian(), "big": WithBigEndian()} {
			t.Run(comp.String()+"/"+name, func(t *testing.T) {
				want := sampleExamples()

				data, err := Encode(want, WithCompression(comp), order)
				require.NoError(t, err)

				h, err := Inspect(data)
				require.NoError(t, err)
				require.EqualValues(t, 4, h.EntryCount)
				require.EqualValues(t, 42, h.Capacity)
				require.EqualValues(t, 3, h.LabelCount)
				require.Equal(t, comp, h.Flag.GetPayloadCompression())

				got, err := Decode(data)
				require.NoError(t, err)
				if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
					t.Fatalf("decoded examples differ (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestEncode_Invalid(t *testing.T) {
	_, err := Encode([]Example{{Indices: []int{2, 1}, Strengths: []float64{1, 1}}})
	require.ErrorIs(t, err, errs.ErrInvalidVectorFile)

	_, err = Encode(nil, WithCompression(format.CompressionType(0x7)))
	require.ErrorIs(t, err, errs.ErrInvalidCompressionType)
}

func TestDecode_Corruption(t *testing.T) {
	data, err := Encode(sampleExamples(), WithCompression(format.CompressionNone))
	require.NoError(t, err)

	flipped := bytes.Clone(data)
	flipped[len(flipped)-1] ^= 0x01

	lexiconMagic := bytes.Clone(data)
	lexiconMagic[1] = 0xEC

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short", data[:10], errs.ErrInvalidHeaderSize},
		{"truncated", data[:len(data)-1], errs.ErrPayloadSizeMismatch},
		{"checksum", flipped, errs.ErrChecksumMismatch},
		{"lexicon magic", lexiconMagic, errs.ErrInvalidMagicNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecode_IndexBeyondDimension(t *testing.T) {
	data, err := Encode(sampleExamples(), WithCompression(format.CompressionNone))
	require.NoError(t, err)

	// shrink the dimension to 8 and keep the payload intact
	h, err := Inspect(data)
	require.NoError(t, err)
	h.Capacity = 8
	require.NoError(t, h.SetPayload(data[section.HeaderSize:]))
	forged := append(h.Bytes(), data[section.HeaderSize:]...)

	_, err = Decode(forged)
	require.ErrorIs(t, err, errs.ErrInvalidVectorFile)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.vec")
	want := sampleExamples()

	require.NoError(t, Save(path, want, WithCompression(format.CompressionS2)))

	got, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("loaded examples differ (-want +got):\n%s", diff)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.vec"))
	require.Error(t, err)
}
