package feature

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompare_NameStringFirst(t *testing.T) {
	a := mustDiscrete(t, "pkg", "clsA", "id1", "x", -1, 0)
	b := mustDiscrete(t, "pkg", "clsA", "id2", "x", -1, 0)
	c := mustDiscrete(t, "pkg", "clsB", "id0", "x", -1, 0)

	require.Negative(t, Compare(a, b))
	require.Negative(t, Compare(b, c))
	require.Negative(t, Compare(a, c))
	require.Positive(t, Compare(c, a))
	require.Zero(t, Compare(a, a))
}

func TestCompare_SameNameDifferentValue(t *testing.T) {
	x := mustDiscrete(t, "pkg", "cls", "id", "x", 0, 2)
	y := mustDiscrete(t, "pkg", "cls", "id", "y", 1, 2)

	require.Zero(t, Compare(x, y))
	require.False(t, Equal(x, y))
}

func TestCompare_Conjunctions(t *testing.T) {
	a := mustDiscrete(t, "", "c", "a", "1", -1, 0)
	b := mustDiscrete(t, "", "c", "b", "1", -1, 0)
	ab := mustConj(t, "", "c", a, b)
	ba := mustConj(t, "", "c", b, a)
	aa := mustConj(t, "", "c", a, a)

	require.Negative(t, Compare(aa, ab))
	require.Negative(t, Compare(ab, ba))

	// primitive before conjunction with the same name string
	prim := mustDiscrete(t, "", "c", "", "v", -1, 0)
	require.Equal(t, prim.NameString(), ab.NameString())
	require.Negative(t, Compare(prim, ab))
	require.Positive(t, Compare(ab, prim))
}

func TestCompare_SortIsStable(t *testing.T) {
	a := mustDiscrete(t, "", "a", "x", "1", -1, 0)
	b := mustDiscrete(t, "", "b", "x", "1", -1, 0)
	c := mustDiscrete(t, "", "c", "x", "1", -1, 0)

	got := []*Feature{c, a, b}
	slices.SortFunc(got, Compare)
	require.Equal(t, []*Feature{a, b, c}, got)
}

func TestCompareSerial_ChildrenFirst(t *testing.T) {
	z := mustDiscrete(t, "", "z", "z", "1", -1, 0)
	a := mustDiscrete(t, "", "a", "a", "1", -1, 0)
	za := mustConj(t, "", "a", z, a)

	require.Negative(t, Compare(za, z))
	require.Positive(t, CompareSerial(za, z))
	require.Negative(t, CompareSerial(a, z))
}

func TestEqual_Structural(t *testing.T) {
	mk := func() *Feature {
		l := mustDiscrete(t, "p", "c", "a", "x", 0, 2)
		r := mustDiscrete(t, "p", "c", "b", "y", 1, 3)

		return mustConj(t, "p", "c", l, r)
	}
	c1, c2 := mk(), mk()

	require.NotSame(t, c1, c2)
	require.True(t, Equal(c1, c2))
	require.True(t, c1.Equal(c2))
	require.Equal(t, c1.Hash(), c2.Hash())

	other := mustConj(t, "p", "c", c1.Right(), c1.Left())
	require.False(t, Equal(c1, other))

	otherPkg := mustConj(t, "q", "c", c1.Left(), c1.Right())
	require.False(t, Equal(c1, otherPkg))

	require.False(t, Equal(c1, c1.MakeReal()))
	require.False(t, Equal(c1, nil))
	require.True(t, Equal(nil, nil))
}

func TestEqual_ByteIdentity(t *testing.T) {
	d := mustDiscrete(t, "p", "c", "word", "x", -1, 0)
	utf, err := d.Encode(UTF8)
	require.NoError(t, err)
	latin, err := d.Encode("ISO-8859-1")
	require.NoError(t, err)

	require.False(t, Equal(d, utf), "text and byte identity differ in kind")
	require.False(t, Equal(utf, latin), "encodings differ")

	utf2, err := mustDiscrete(t, "p", "c", "word", "x", -1, 0).Encode(UTF8)
	require.NoError(t, err)
	require.True(t, Equal(utf, utf2))
	require.Equal(t, utf.Hash(), utf2.Hash())
}

func TestHash_Distribution(t *testing.T) {
	seen := make(map[uint64]struct{})
	for _, id := range []string{"a", "b", "c", "d"} {
		for _, v := range []string{"1", "2", "3"} {
			f := mustDiscrete(t, "p", "c", id, v, -1, 0)
			seen[f.Hash()] = struct{}{}
		}
	}
	require.Len(t, seen, 12)

	a := mustDiscrete(t, "", "c", "a", "1", -1, 0)
	b := mustDiscrete(t, "", "c", "b", "1", -1, 0)
	require.NotEqual(t, mustConj(t, "", "c", a, b).Hash(), mustConj(t, "", "c", b, a).Hash())
}
