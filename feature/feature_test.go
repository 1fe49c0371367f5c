package feature

import (
	"fmt"
	"testing"

	"github.com/arloliu/featlex/errs"
	"github.com/arloliu/featlex/format"
	"github.com/stretchr/testify/require"
)

func mustDiscrete(t testing.TB, pkg, cls, id, value string, vi, tv int16) *Feature {
	t.Helper()
	f, err := NewDiscrete(pkg, cls, id, value, vi, tv)
	require.NoError(t, err)

	return f
}

func mustConj(t testing.TB, pkg, cls string, l, r *Feature) *Feature {
	t.Helper()
	f, err := NewDiscreteConjunction(pkg, cls, l, r)
	require.NoError(t, err)

	return f
}

// indexTable is a minimal in-memory lexicon used by the package tests.
type indexTable struct {
	keys []*Feature
}

func (x *indexTable) LookupChild(f *Feature) (int, error) {
	for i, k := range x.keys {
		if Equal(k, f) {
			return i, nil
		}
	}

	return -1, fmt.Errorf("%w: %s", errs.ErrFeatureNotInterned, f)
}

func (x *indexTable) LookupKey(index int) (*Feature, error) {
	if index < 0 || index >= len(x.keys) {
		return nil, fmt.Errorf("%w: %d", errs.ErrIndexOutOfRange, index)
	}

	return x.keys[index], nil
}

func (x *indexTable) ChildFeature(f *Feature, _ int) (*Feature, error) {
	if i, err := x.LookupChild(f); err == nil {
		return x.keys[i], nil
	}
	x.keys = append(x.keys, f)

	return f, nil
}

func TestDiscreteConjunction_EndToEnd(t *testing.T) {
	p1 := mustDiscrete(t, "pkg", "clsA", "id1", "c", 2, 5)
	p2 := mustDiscrete(t, "pkg", "clsA", "id2", "b", 1, 3)

	c := mustConj(t, "pkg", "clsA", p1, p2)

	require.Equal(t, int16(15), c.TotalValues())
	require.Equal(t, int16(7), c.ValueIndex())
	require.Equal(t, 1, c.Depth())
	require.Empty(t, c.StringIdentifier())
	require.True(t, c.ByteStringIdentifier().IsEmpty())
	require.True(t, c.IsConjunctive())
	require.False(t, c.IsPrimitive())
	require.Same(t, p1, c.Left())
	require.Same(t, p2, c.Right())
}

func TestDiscreteConjunction_MixedRadixBijection(t *testing.T) {
	const lt, rt = 4, 7

	seen := make(map[int16][2]int16, lt*rt)
	for lv := int16(0); lv < lt; lv++ {
		for rv := int16(0); rv < rt; rv++ {
			l := mustDiscrete(t, "", "L", "l", fmt.Sprint(lv), lv, lt)
			r := mustDiscrete(t, "", "R", "r", fmt.Sprint(rv), rv, rt)
			c := mustConj(t, "", "LR", l, r)

			require.Equal(t, int16(lt*rt), c.TotalValues())
			require.Equal(t, lt*rv+lv, c.ValueIndex())

			prev, dup := seen[c.ValueIndex()]
			require.Falsef(t, dup, "(%d,%d) collides with %v", lv, rv, prev)
			seen[c.ValueIndex()] = [2]int16{lv, rv}

			// inverse mapping
			require.Equal(t, lv, c.ValueIndex()%lt)
			require.Equal(t, rv, c.ValueIndex()/lt)
		}
	}
	require.Len(t, seen, lt*rt)
}

func TestDiscreteConjunction_Unconstrained(t *testing.T) {
	l := mustDiscrete(t, "", "L", "l", "x", -1, 0)
	r := mustDiscrete(t, "", "R", "r", "y", 1, 2)

	c := mustConj(t, "", "LR", l, r)
	require.Equal(t, int16(-1), c.ValueIndex())
	require.Equal(t, int16(0), c.TotalValues())
}

func TestDiscreteConjunction_Errors(t *testing.T) {
	big := mustDiscrete(t, "", "B", "b", "v", 0, 1000)
	_, err := NewDiscreteConjunction("", "BB", big, big)
	require.ErrorIs(t, err, errs.ErrValueIndexOverflow)

	_, err = NewDiscreteConjunction("", "X", big, nil)
	require.ErrorIs(t, err, errs.ErrNilFeature)

	r := NewReal("", "R", "r", 0.5)
	_, err = NewDiscreteConjunction("", "X", big, r)
	require.ErrorIs(t, err, errs.ErrKindMismatch)

	_, err = NewDiscreteConjunctionWithValue("", "X", big, big, 3, 2)
	require.ErrorIs(t, err, errs.ErrValueIndexOutOfRange)
}

func TestNewDiscrete_ValueIndexRange(t *testing.T) {
	tests := []struct {
		name    string
		vi, tv  int16
		wantErr bool
	}{
		{"first", 0, 3, false},
		{"last", 2, 3, false},
		{"unconstrained", -1, 0, false},
		{"negative total", 5, -1, false},
		{"at total", 3, 3, true},
		{"negative index", -1, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDiscrete("p", "c", "i", "v", tt.vi, tt.tv)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIndexOutOfRange)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestFeature_Depth(t *testing.T) {
	a := mustDiscrete(t, "", "c", "a", "1", -1, 0)
	b := mustDiscrete(t, "", "c", "b", "1", -1, 0)
	ab := mustConj(t, "", "c", a, b)
	abb := mustConj(t, "", "c", ab, b)
	deep := mustConj(t, "", "c", a, abb)

	require.Equal(t, 0, a.Depth())
	require.Equal(t, 1, ab.Depth())
	require.Equal(t, 2, abb.Depth())
	require.Equal(t, 3, deep.Depth())
}

func TestRealConjunction_Strength(t *testing.T) {
	l := NewReal("", "c", "l", 0.5)
	r := NewReal("", "c", "r", 4)

	c, err := NewRealConjunction("", "c", l, r)
	require.NoError(t, err)
	require.Equal(t, format.KindRealConjunctive, c.Kind())
	require.InDelta(t, 2.0, c.Strength(), 1e-12)
	require.Equal(t, int16(-1), c.ValueIndex())

	d := mustDiscrete(t, "", "c", "d", "v", -1, 0)
	mixed, err := NewRealConjunction("", "c", d, r)
	require.NoError(t, err)
	require.InDelta(t, 4.0, mixed.Strength(), 1e-12)
}

func TestFeature_NameString(t *testing.T) {
	require.Equal(t, "pkg.cls:id", mustDiscrete(t, "pkg", "cls", "id", "v", -1, 0).NameString())
	require.Equal(t, "cls:id", mustDiscrete(t, "", "cls", "id", "v", -1, 0).NameString())

	a := mustDiscrete(t, "", "c", "a", "1", -1, 0)
	require.Equal(t, "pkg.conj", mustConj(t, "pkg", "conj", a, a).NameString())
}
