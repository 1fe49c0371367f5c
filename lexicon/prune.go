package lexicon

import (
	"fmt"
	"slices"

	"github.com/arloliu/featlex/errs"
)

// Policy selects the entries Prune removes.
type Policy struct {
	// Threshold is the smallest count an entry needs to survive. Must be >= 1.
	Threshold int64
	// PerLabel keeps an entry when any single label reaches Threshold instead
	// of comparing the global count.
	PerLabel bool
}

func (p Policy) below(e *entry) bool {
	if !p.PerLabel || len(e.counts) == 0 {
		return e.total < p.Threshold
	}

	return !slices.ContainsFunc(e.counts, func(c int64) bool { return c >= p.Threshold })
}

// Remove deletes the entry at index. An entry that is still a child of a live
// conjunction cannot be removed. Removing a conjunction releases its children
// with DecrementParentCounts, which may remove them in turn.
//
// Remove returns the number of entries removed, including the cascade.
func (l *Lexicon) Remove(index int) (int, error) {
	if l.frozen {
		return 0, errs.ErrLexiconFrozen
	}
	e, err := l.entryAt(index)
	if err != nil {
		return 0, err
	}
	if e.parents > 0 {
		return 0, fmt.Errorf("%w: entry %d has %d", errs.ErrLiveParent, index, e.parents)
	}

	return l.drop(index), nil
}

// DecrementParentCounts releases child from parent, a conjunction that has
// already been removed. The parent's counts are subtracted from the child's
// and the child loses one live parent. A child left with no live parent and a
// global count of zero or less is removed as well, releasing its own children.
//
// Remove and Prune call it for every conjunction they delete; it returns the
// number of entries removed by the cascade.
func (l *Lexicon) DecrementParentCounts(child, parent int) (int, error) {
	if l.frozen {
		return 0, errs.ErrLexiconFrozen
	}
	if parent < 0 || parent >= l.next {
		return 0, fmt.Errorf("%w: parent %d not in [0, %d)", errs.ErrIndexOutOfRange, parent, l.next)
	}
	if parent >= len(l.entries) {
		return 0, fmt.Errorf("%w: %d of hole %d", errs.ErrNotChild, child, parent)
	}
	p := &l.entries[parent]
	if !p.removed() {
		return 0, fmt.Errorf("%w: conjunction %d must be removed first", errs.ErrLiveParent, parent)
	}

	switch child {
	case Unknown:
		return 0, fmt.Errorf("%w: %d of %d", errs.ErrNotChild, child, parent)
	case p.right:
		p.right = Unknown
	case p.left:
		p.left = Unknown
	default:
		return 0, fmt.Errorf("%w: %d of %d", errs.ErrNotChild, child, parent)
	}

	c, err := l.entryAt(child)
	if err != nil {
		return 0, err
	}

	before := entry{counts: slices.Clone(c.counts), total: c.total}
	c.parents--
	c.total -= p.total
	for k := range min(len(c.counts), len(p.counts)) {
		c.counts[k] -= p.counts[k]
	}
	if c.parents > 0 || c.total > 0 {
		return 0, nil
	}

	// a removed entry keeps the counts it contributed to its own children
	c.counts, c.total = before.counts, before.total

	return l.drop(child), nil
}

// Prune removes every entry without live parents whose count is below the
// policy threshold, repeating until no entry qualifies. Removing a
// conjunction can leave its children orphaned and under the threshold, so
// they are pruned in the same call. It returns the number of entries removed.
func (l *Lexicon) Prune(p Policy) (int, error) {
	if l.frozen {
		return 0, errs.ErrLexiconFrozen
	}
	if p.Threshold < 1 {
		return 0, fmt.Errorf("%w: %d", errs.ErrInvalidPruneThreshold, p.Threshold)
	}

	removed, passes := 0, 0
	for {
		passes++
		n := 0
		// parents always sit above their children
		for i := len(l.entries) - 1; i >= 0; i-- {
			e := &l.entries[i]
			if e.removed() || e.parents > 0 || !p.below(e) {
				continue
			}
			n += l.drop(i)
		}
		removed += n
		if n == 0 {
			break
		}
	}

	l.cfg.logger.Debug().
		Int64("threshold", p.Threshold).
		Bool("per_label", p.PerLabel).
		Int("removed", removed).
		Int("live", l.live).
		Int("passes", passes).
		Msg("lexicon pruned")

	return removed, nil
}

// drop unlinks the entry at index, leaving a hole, and releases its children.
func (l *Lexicon) drop(index int) int {
	e := &l.entries[index]

	h := e.key.Hash()
	bucket := slices.DeleteFunc(l.buckets[h], func(i int) bool { return i == index })
	if len(bucket) == 0 {
		delete(l.buckets, h)
	} else {
		l.buckets[h] = bucket
	}
	e.key = nil
	l.live--

	removed := 1
	for _, child := range []int{e.right, e.left} {
		if child == Unknown {
			continue
		}
		// both links are known to be live, so this cannot fail
		n, _ := l.DecrementParentCounts(child, index)
		removed += n
	}

	return removed
}
