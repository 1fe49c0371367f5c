package lexicon

import (
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/featlex/errs"
	"github.com/arloliu/featlex/feature"
	"github.com/arloliu/featlex/internal/options"
)

// Unknown is the index returned for a feature the lexicon does not hold.
const Unknown = -1

type entry struct {
	// key is the canonical feature, nil once the entry is removed.
	key *feature.Feature
	// left and right are the indices of a conjunction's children that still
	// hold a parent reference from this entry, Unknown otherwise.
	left, right int
	counts      []int64
	total       int64
	parents     int
}

func (e *entry) removed() bool {
	return e.key == nil
}

// Lexicon interns features and assigns each a dense, stable integer index.
//
// Indices are handed out in insertion order starting at 0 and are never
// reused: a removed entry leaves a hole. Each entry counts how often it was
// seen, globally and per label, and how many live conjunctions use it as a
// child. Conjunction keys share their children with the lexicon, so a key's
// Left and Right are the exact objects stored under the children's indices.
//
// Note: Lexicon is NOT thread-safe. Guard it externally when training from
// several goroutines, or Freeze it and only call Lookup concurrently.
type Lexicon struct {
	cfg     *Config
	entries []entry
	buckets map[uint64][]int
	next    int // next index to assign; trailing holes past len(entries) are implicit
	live    int
	frozen  bool
}

var (
	_ feature.ChildResolver = (*Lexicon)(nil)
	_ feature.Indexer       = (*Lexicon)(nil)
)

// New creates an empty lexicon.
func New(opts ...Option) (*Lexicon, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return newLexicon(cfg, 0), nil
}

func newLexicon(cfg *Config, capacity int) *Lexicon {
	return &Lexicon{
		cfg:     cfg,
		entries: make([]entry, 0, capacity),
		buckets: make(map[uint64][]int, capacity),
	}
}

// Lookup returns the index of f.
//
// When training on a lexicon that is not frozen, f is canonicalized with
// feature.Key, interned if new, and counted under label (-1 counts globally
// only). Otherwise the lexicon is only searched and Unknown is returned on a
// miss; nothing is inserted or counted.
func (l *Lexicon) Lookup(f *feature.Feature, training bool, label int) (int, error) {
	if f == nil {
		return Unknown, errs.ErrNilFeature
	}
	if !training || l.frozen {
		if i, ok := l.find(f); ok {
			return i, nil
		}

		return Unknown, nil
	}
	if err := checkLabel(label); err != nil {
		return Unknown, err
	}

	key, err := f.Key(l, true, label)
	if err != nil {
		return Unknown, err
	}

	return l.ChildLexiconLookup(key, label)
}

// ChildLexiconLookup interns f as it is, counts it under label and returns its
// index. A conjunction is only accepted when both children are already
// interned; the stored key is rebuilt over the interned child objects when f
// holds equal copies, and each child gains a live parent.
func (l *Lexicon) ChildLexiconLookup(f *feature.Feature, label int) (int, error) {
	if f == nil {
		return Unknown, errs.ErrNilFeature
	}
	if l.frozen {
		return Unknown, errs.ErrLexiconFrozen
	}
	if err := checkLabel(label); err != nil {
		return Unknown, err
	}

	i, ok := l.find(f)
	if !ok {
		var err error
		if i, err = l.insert(f); err != nil {
			return Unknown, err
		}
	}
	l.count(i, label)

	return i, nil
}

// ChildFeature interns f like ChildLexiconLookup and returns the stored key.
func (l *Lexicon) ChildFeature(f *feature.Feature, label int) (*feature.Feature, error) {
	i, err := l.ChildLexiconLookup(f, label)
	if err != nil {
		return nil, err
	}

	return l.entries[i].key, nil
}

// LookupKey returns the feature stored at index.
func (l *Lexicon) LookupKey(index int) (*feature.Feature, error) {
	e, err := l.entryAt(index)
	if err != nil {
		return nil, err
	}

	return e.key, nil
}

// LookupChild returns the index of an interned feature, typically a
// conjunction child being written to a file.
func (l *Lexicon) LookupChild(f *feature.Feature) (int, error) {
	if f == nil {
		return Unknown, errs.ErrNilFeature
	}
	if i, ok := l.find(f); ok {
		return i, nil
	}

	return Unknown, fmt.Errorf("%w: %s", errs.ErrFeatureNotInterned, f)
}

// Count returns how often the entry at index was counted under label, or its
// global count when label is negative.
func (l *Lexicon) Count(index, label int) (int64, error) {
	e, err := l.entryAt(index)
	if err != nil {
		return 0, err
	}
	if label < 0 {
		return e.total, nil
	}
	if label >= len(e.counts) {
		return 0, nil
	}

	return e.counts[label], nil
}

// Parents returns how many live conjunctions use the entry at index as a child.
func (l *Lexicon) Parents(index int) (int, error) {
	e, err := l.entryAt(index)
	if err != nil {
		return 0, err
	}

	return e.parents, nil
}

// Children returns the indices of a conjunction's children, or Unknown twice
// for a primitive.
func (l *Lexicon) Children(index int) (left, right int, err error) {
	e, err := l.entryAt(index)
	if err != nil {
		return Unknown, Unknown, err
	}

	return e.left, e.right, nil
}

// Len returns the number of live entries.
func (l *Lexicon) Len() int {
	return l.live
}

// Cap returns the next index the lexicon would assign.
func (l *Lexicon) Cap() int {
	return l.next
}

// LabelCount returns the number of labels counted so far.
func (l *Lexicon) LabelCount() int {
	return l.cfg.labelCount
}

// Config returns the lexicon's configuration.
func (l *Lexicon) Config() *Config {
	return l.cfg
}

// Freeze switches the lexicon to test mode: Lookup no longer inserts or counts
// and every mutating call fails with errs.ErrLexiconFrozen.
func (l *Lexicon) Freeze() {
	l.frozen = true
}

// Frozen reports whether the lexicon is frozen.
func (l *Lexicon) Frozen() bool {
	return l.frozen
}

// All yields live entries in index order.
func (l *Lexicon) All() iter.Seq2[int, *feature.Feature] {
	return func(yield func(int, *feature.Feature) bool) {
		for i := range l.entries {
			if l.entries[i].removed() {
				continue
			}
			if !yield(i, l.entries[i].key) {
				return
			}
		}
	}
}

// Sorted yields live entries ordered by feature.CompareSerial, so every
// conjunction comes after both of its children.
func (l *Lexicon) Sorted() iter.Seq2[int, *feature.Feature] {
	order := make([]int, 0, l.live)
	for i := range l.All() {
		order = append(order, i)
	}
	slices.SortFunc(order, func(a, b int) int {
		return feature.CompareSerial(l.entries[a].key, l.entries[b].key)
	})

	return func(yield func(int, *feature.Feature) bool) {
		for _, i := range order {
			if !yield(i, l.entries[i].key) {
				return
			}
		}
	}
}

func (l *Lexicon) find(f *feature.Feature) (int, bool) {
	for _, i := range l.buckets[f.Hash()] {
		if feature.Equal(l.entries[i].key, f) {
			return i, true
		}
	}

	return Unknown, false
}

func (l *Lexicon) entryAt(index int) (*entry, error) {
	if index < 0 || index >= l.next {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", errs.ErrIndexOutOfRange, index, l.next)
	}
	if index >= len(l.entries) {
		return nil, fmt.Errorf("%w: %d", errs.ErrRemovedEntry, index)
	}
	e := &l.entries[index]
	if e.removed() {
		return nil, fmt.Errorf("%w: %d", errs.ErrRemovedEntry, index)
	}

	return e, nil
}

func (l *Lexicon) insert(f *feature.Feature) (int, error) {
	e := entry{key: f, left: Unknown, right: Unknown}

	if f.IsConjunctive() {
		left, ok := l.find(f.Left())
		if !ok {
			return Unknown, fmt.Errorf("%w: left child of %s", errs.ErrChildNotInterned, f)
		}
		right, ok := l.find(f.Right())
		if !ok {
			return Unknown, fmt.Errorf("%w: right child of %s", errs.ErrChildNotInterned, f)
		}
		key, err := f.WithChildren(l.entries[left].key, l.entries[right].key)
		if err != nil {
			return Unknown, err
		}
		e.key, e.left, e.right = key, left, right
	}

	return l.place(l.next, e), nil
}

// place stores e at index, growing the entry table with holes when needed, and
// links it into its bucket and its children.
func (l *Lexicon) place(index int, e entry) int {
	for len(l.entries) <= index {
		l.entries = append(l.entries, entry{left: Unknown, right: Unknown})
	}
	if e.counts == nil && l.cfg.labelCount > 0 {
		e.counts = make([]int64, l.cfg.labelCount)
	}
	if e.left != Unknown {
		l.entries[e.left].parents++
		l.entries[e.right].parents++
	}

	l.entries[index] = e
	l.next = max(l.next, index+1)
	h := e.key.Hash()
	l.buckets[h] = append(l.buckets[h], index)
	l.live++

	return index
}

func (l *Lexicon) count(index, label int) {
	e := &l.entries[index]
	e.total++
	if label < 0 {
		return
	}
	if label >= len(e.counts) {
		e.counts = append(e.counts, make([]int64, label+1-len(e.counts))...)
	}
	e.counts[label]++
	if label >= l.cfg.labelCount {
		l.cfg.labelCount = label + 1
	}
}

func checkLabel(label int) error {
	if label < -1 || label >= MaxLabels {
		return fmt.Errorf("%w: %d not in [-1, %d)", errs.ErrInvalidLabel, label, MaxLabels)
	}

	return nil
}
