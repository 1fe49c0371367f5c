package lexicon

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/featlex/errs"
)

func requireRemoved(t *testing.T, l *Lexicon, indices ...int) {
	t.Helper()
	for _, i := range indices {
		_, err := l.LookupKey(i)
		require.ErrorIs(t, err, errs.ErrRemovedEntry, "entry %d", i)
	}
}

func requireCount(t *testing.T, l *Lexicon, index int, want int64) {
	t.Helper()
	c, err := l.Count(index, -1)
	require.NoError(t, err)
	require.Equal(t, want, c, "entry %d", index)
}

func TestRemove_LiveParent(t *testing.T) {
	l := mustNew(t)
	mustLookup(t, l, conj(t, word(t, "w", "a"), word(t, "w", "b")), -1)

	_, err := l.Remove(0)
	require.ErrorIs(t, err, errs.ErrLiveParent)
	require.Equal(t, 3, l.Len())
}

func TestRemove_ReleasesChildren(t *testing.T) {
	l := mustNew(t)
	a, b := word(t, "w", "a"), word(t, "w", "b")

	mustLookup(t, l, a, -1)
	mustLookup(t, l, conj(t, a, b), -1)
	mustLookup(t, l, conj(t, a, b), -1)
	requireCount(t, l, 0, 3)
	requireCount(t, l, 1, 2)

	n, err := l.Remove(2)
	require.NoError(t, err)
	require.Equal(t, 2, n, "b was only seen inside the conjunction")

	requireRemoved(t, l, 1, 2)
	requireCount(t, l, 0, 1)
	p, err := l.Parents(0)
	require.NoError(t, err)
	require.Zero(t, p)
	require.Equal(t, 1, l.Len())
	require.Equal(t, 3, l.Cap())
}

func TestRemove_SharedChildKeepsLiveParent(t *testing.T) {
	l := mustNew(t)
	a, b, c := word(t, "w", "a"), word(t, "w", "b"), word(t, "w", "c")

	ab := mustLookup(t, l, conj(t, a, b), -1)
	mustLookup(t, l, conj(t, a, c), -1)
	require.Equal(t, 5, l.Len())

	n, err := l.Remove(ab)
	require.NoError(t, err)
	require.Equal(t, 2, n, "only a&b and b go")

	requireRemoved(t, l, ab, 1)
	requireCount(t, l, 0, 1)
	p, err := l.Parents(0)
	require.NoError(t, err)
	require.Equal(t, 1, p)
	require.Equal(t, 3, l.Len())
}

func TestRemove_NestedCascade(t *testing.T) {
	l := mustNew(t)
	ab := conj(t, word(t, "w", "a"), word(t, "w", "b"))
	require.Equal(t, 4, mustLookup(t, l, conj(t, ab, word(t, "w", "c")), -1))

	n, err := l.Remove(4)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Zero(t, l.Len())
	requireRemoved(t, l, 0, 1, 2, 3, 4)
}

func TestRemove_SelfConjunction(t *testing.T) {
	l := mustNew(t)
	a := word(t, "w", "a")
	mustLookup(t, l, conj(t, a, a), -1)

	p, err := l.Parents(0)
	require.NoError(t, err)
	require.Equal(t, 2, p)
	requireCount(t, l, 0, 2)

	n, err := l.Remove(1)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Zero(t, l.Len())
}

func TestRemove_PerLabelCounts(t *testing.T) {
	l := mustNew(t, WithLabelCount(2))
	a, b := word(t, "w", "a"), word(t, "w", "b")

	mustLookup(t, l, a, 1)
	mustLookup(t, l, conj(t, a, b), 0)

	_, err := l.Remove(2)
	require.NoError(t, err)

	c0, err := l.Count(0, 0)
	require.NoError(t, err)
	c1, err := l.Count(0, 1)
	require.NoError(t, err)
	require.Zero(t, c0)
	require.Equal(t, int64(1), c1)
}

func TestDecrementParentCounts_Errors(t *testing.T) {
	l := mustNew(t)
	mustLookup(t, l, conj(t, word(t, "w", "a"), word(t, "w", "b")), -1)
	mustLookup(t, l, word(t, "w", "c"), -1)

	_, err := l.DecrementParentCounts(0, 2)
	require.ErrorIs(t, err, errs.ErrLiveParent)
	_, err = l.DecrementParentCounts(0, 9)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)

	_, err = l.Remove(2)
	require.NoError(t, err)

	// Remove already released both children
	_, err = l.DecrementParentCounts(0, 2)
	require.ErrorIs(t, err, errs.ErrNotChild)
	_, err = l.DecrementParentCounts(3, 2)
	require.ErrorIs(t, err, errs.ErrNotChild)
}

func TestPrune_Threshold(t *testing.T) {
	l := mustNew(t)
	a, b := word(t, "w", "a"), word(t, "w", "b")

	mustLookup(t, l, a, -1)
	mustLookup(t, l, a, -1)
	mustLookup(t, l, conj(t, a, b), -1)

	n, err := l.Prune(Policy{Threshold: 2})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	requireRemoved(t, l, 1, 2)
	requireCount(t, l, 0, 2)
}

func TestPrune_Fixpoint(t *testing.T) {
	l := mustNew(t)
	a, b := word(t, "w", "a"), word(t, "w", "b")

	mustLookup(t, l, a, -1)
	mustLookup(t, l, conj(t, a, b), -1)
	mustLookup(t, l, conj(t, a, b), -1)
	requireCount(t, l, 0, 3)

	// a reaches the threshold only through the conjunction
	n, err := l.Prune(Policy{Threshold: 3})
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Zero(t, l.Len())
}

func TestPrune_KeepsChildrenOfSurvivors(t *testing.T) {
	l := mustNew(t)
	c := conj(t, word(t, "w", "a"), word(t, "w", "b"))
	for range 3 {
		mustLookup(t, l, c, -1)
	}
	mustLookup(t, l, word(t, "w", "rare"), -1)

	n, err := l.Prune(Policy{Threshold: 2})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, 3, l.Len())
	requireRemoved(t, l, 3)
}

func TestPrune_PerLabel(t *testing.T) {
	l := mustNew(t)
	a, b := word(t, "w", "a"), word(t, "w", "b")

	for _, label := range []int{0, 0, 1} {
		mustLookup(t, l, a, label)
	}
	for _, label := range []int{0, 1, 2} {
		mustLookup(t, l, b, label)
	}

	n, err := l.Prune(Policy{Threshold: 2, PerLabel: true})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	requireRemoved(t, l, 1)

	// the same counts survive a global threshold
	l = mustNew(t)
	for _, label := range []int{0, 1, 2} {
		mustLookup(t, l, b, label)
	}
	n, err = l.Prune(Policy{Threshold: 2})
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestPrune_InvalidThreshold(t *testing.T) {
	l := mustNew(t)

	_, err := l.Prune(Policy{Threshold: 0})
	require.ErrorIs(t, err, errs.ErrInvalidPruneThreshold)
}
