package index

import "github.com/hyperjump/lexicon/internal/mrlock"

// ThreadSafe wraps an Index with a multi-reader lock, making the lock an
// internal detail of the type rather than something every call site must
// remember to hold — the design note this package follows: "make the lock
// an internal detail of the concurrent index type, exposing only the
// thread-safe contract."
type ThreadSafe struct {
	lock *mrlock.Lock
	idx  *Index
}

// NewThreadSafe returns an empty, lock-guarded index.
func NewThreadSafe() *ThreadSafe {
	return &ThreadSafe{lock: mrlock.New(), idx: New()}
}

// Add records one occurrence of token at position within location under
// the write lock.
func (t *ThreadSafe) Add(token, location string, position int) {
	t.lock.WriteLock()
	defer t.lock.WriteUnlock()
	t.idx.Add(token, location, position)
}

// AddAll records tokens[i] at position start+i under the write lock.
func (t *ThreadSafe) AddAll(tokens []string, location string, start int) {
	t.lock.WriteLock()
	defer t.lock.WriteUnlock()
	t.idx.AddAll(tokens, location, start)
}

// Merge unions other (an unsynchronized local Index, typically built by a
// worker goroutine) into the shared index under a single write-lock
// acquisition. See Index.Merge for the non-overlapping-locations
// contract this relies on.
func (t *ThreadSafe) Merge(other *Index) {
	t.lock.WriteLock()
	defer t.lock.WriteUnlock()
	t.idx.Merge(other)
}

// Search runs exact or prefix search under the read lock.
func (t *ThreadSafe) Search(stems []string, prefix bool) []QueryResult {
	t.lock.ReadLock()
	defer t.lock.ReadUnlock()
	return t.idx.Search(stems, prefix)
}

func (t *ThreadSafe) ContainsWord(tok string) bool {
	t.lock.ReadLock()
	defer t.lock.ReadUnlock()
	return t.idx.ContainsWord(tok)
}

func (t *ThreadSafe) ContainsLocation(tok, l string) bool {
	t.lock.ReadLock()
	defer t.lock.ReadUnlock()
	return t.idx.ContainsLocation(tok, l)
}

func (t *ThreadSafe) ContainsPosition(tok, l string, p int) bool {
	t.lock.ReadLock()
	defer t.lock.ReadUnlock()
	return t.idx.ContainsPosition(tok, l, p)
}

func (t *ThreadSafe) ContainsCount(l string) bool {
	t.lock.ReadLock()
	defer t.lock.ReadUnlock()
	return t.idx.ContainsCount(l)
}

func (t *ThreadSafe) NumWords() int {
	t.lock.ReadLock()
	defer t.lock.ReadUnlock()
	return t.idx.NumWords()
}

func (t *ThreadSafe) NumLocations(tok string) int {
	t.lock.ReadLock()
	defer t.lock.ReadUnlock()
	return t.idx.NumLocations(tok)
}

func (t *ThreadSafe) NumPositions(tok, l string) int {
	t.lock.ReadLock()
	defer t.lock.ReadUnlock()
	return t.idx.NumPositions(tok, l)
}

func (t *ThreadSafe) NumCounts() int {
	t.lock.ReadLock()
	defer t.lock.ReadUnlock()
	return t.idx.NumCounts()
}

func (t *ThreadSafe) Words() []string {
	t.lock.ReadLock()
	defer t.lock.ReadUnlock()
	return t.idx.Words()
}

func (t *ThreadSafe) Locations(tok string) []string {
	t.lock.ReadLock()
	defer t.lock.ReadUnlock()
	return t.idx.Locations(tok)
}

func (t *ThreadSafe) Positions(tok, l string) []int {
	t.lock.ReadLock()
	defer t.lock.ReadUnlock()
	return t.idx.Positions(tok, l)
}

func (t *ThreadSafe) Counts() []string {
	t.lock.ReadLock()
	defer t.lock.ReadUnlock()
	return t.idx.Counts()
}

func (t *ThreadSafe) Count(l string) int {
	t.lock.ReadLock()
	defer t.lock.ReadUnlock()
	return t.idx.Count(l)
}
