// Package index implements the inverted index: a sorted mapping from Token
// to Location to a set of Positions, with a per-Location word-count side
// table, and the exact/prefix search algorithm over it.
package index

import "sort"

// Index is the unsynchronized inverted index. It is the type worker
// goroutines build locally before merging into a shared ThreadSafe; it
// has no internal locking, matching a single writer's-worth of use.
//
// Go's standard library has no ordered map, and no example in this
// codebase's lineage carries one either, so Index keeps each level sorted
// with a parallel key slice searched via sort.Search: O(log n) lookups and
// O(log n)-start tail-range enumeration (what prefix search needs), at the
// cost of O(n) slice insertion on a brand-new key. That cost is paid once
// per distinct token or location, not per write, and indexing proceeds in
// whole-file batches merged under a single lock acquisition, so the
// simpler representation does not become a bottleneck.
type Index struct {
	words   map[string]*wordEntry
	wordKey []string // words, kept sorted ascending

	counts    map[string]int
	countKey  []string // counts keys, kept sorted ascending
}

type wordEntry struct {
	locations map[string]*locEntry
	locKey    []string // locations, kept sorted ascending (case-sensitive)
}

type locEntry struct {
	positions []int // kept sorted ascending, unique
}

// New returns an empty Index.
func New() *Index {
	return &Index{
		words:  make(map[string]*wordEntry),
		counts: make(map[string]int),
	}
}

// Add records one occurrence of token at position within location. It is
// idempotent: adding the same (token, location, position) twice has no
// further effect, and counts[location] is only incremented on the first
// observation of that exact triple.
func (idx *Index) Add(token, location string, position int) {
	we, ok := idx.words[token]
	if !ok {
		we = &wordEntry{locations: make(map[string]*locEntry)}
		idx.words[token] = we
		insertSorted(&idx.wordKey, token)
	}
	le, ok := we.locations[location]
	if !ok {
		le = &locEntry{}
		we.locations[location] = le
		insertSorted(&we.locKey, location)
	}
	if insertSortedUniqueInt(&le.positions, position) {
		if _, seen := idx.counts[location]; !seen {
			insertSorted(&idx.countKey, location)
		}
		idx.counts[location]++
	}
}

// AddAll records tokens[i] at position start+i for each i, in order.
func (idx *Index) AddAll(tokens []string, location string, start int) {
	for i, t := range tokens {
		idx.Add(t, location, start+i)
	}
}

// Merge unions other into idx. The caller guarantees that no Location in
// other already appears in idx: under that guarantee, both the outer
// (token) and inner (location) key unions are correct, and counts can be
// added rather than recomputed from cardinality. See the design note on
// this contract for what changes if the guarantee is ever dropped.
func (idx *Index) Merge(other *Index) {
	for _, token := range other.wordKey {
		owe := other.words[token]
		we, ok := idx.words[token]
		if !ok {
			we = &wordEntry{locations: make(map[string]*locEntry)}
			idx.words[token] = we
			insertSorted(&idx.wordKey, token)
		}
		for _, loc := range owe.locKey {
			ole := owe.locations[loc]
			le, ok := we.locations[loc]
			if !ok {
				le = &locEntry{positions: append([]int(nil), ole.positions...)}
				we.locations[loc] = le
				insertSorted(&we.locKey, loc)
				continue
			}
			for _, p := range ole.positions {
				insertSortedUniqueInt(&le.positions, p)
			}
		}
	}
	for _, loc := range other.countKey {
		if _, seen := idx.counts[loc]; !seen {
			insertSorted(&idx.countKey, loc)
		}
		idx.counts[loc] += other.counts[loc]
	}
}

// ContainsWord reports whether t has ever been added.
func (idx *Index) ContainsWord(t string) bool {
	_, ok := idx.words[t]
	return ok
}

// ContainsLocation reports whether (t, l) has ever been added.
func (idx *Index) ContainsLocation(t, l string) bool {
	we, ok := idx.words[t]
	if !ok {
		return false
	}
	_, ok = we.locations[l]
	return ok
}

// ContainsPosition reports whether (t, l, p) has ever been added.
func (idx *Index) ContainsPosition(t, l string, p int) bool {
	we, ok := idx.words[t]
	if !ok {
		return false
	}
	le, ok := we.locations[l]
	if !ok {
		return false
	}
	i := sort.SearchInts(le.positions, p)
	return i < len(le.positions) && le.positions[i] == p
}

// ContainsCount reports whether l has a recorded count.
func (idx *Index) ContainsCount(l string) bool {
	_, ok := idx.counts[l]
	return ok
}

// NumWords returns the number of distinct tokens.
func (idx *Index) NumWords() int { return len(idx.wordKey) }

// NumLocations returns the number of distinct locations for t, or 0 if t
// was never added.
func (idx *Index) NumLocations(t string) int {
	we, ok := idx.words[t]
	if !ok {
		return 0
	}
	return len(we.locKey)
}

// NumPositions returns the number of positions recorded for (t, l).
func (idx *Index) NumPositions(t, l string) int {
	we, ok := idx.words[t]
	if !ok {
		return 0
	}
	le, ok := we.locations[l]
	if !ok {
		return 0
	}
	return len(le.positions)
}

// NumCounts returns the number of locations with a recorded count.
func (idx *Index) NumCounts() int { return len(idx.countKey) }

// Words returns a read-only snapshot of the tokens, ascending.
func (idx *Index) Words() []string {
	return append([]string(nil), idx.wordKey...)
}

// Locations returns a read-only snapshot of the locations recorded for t,
// ascending, or nil if t was never added.
func (idx *Index) Locations(t string) []string {
	we, ok := idx.words[t]
	if !ok {
		return nil
	}
	return append([]string(nil), we.locKey...)
}

// Positions returns a read-only snapshot of the positions recorded for
// (t, l), ascending, or nil if the pair was never added.
func (idx *Index) Positions(t, l string) []int {
	we, ok := idx.words[t]
	if !ok {
		return nil
	}
	le, ok := we.locations[l]
	if !ok {
		return nil
	}
	return append([]int(nil), le.positions...)
}

// Counts returns a read-only snapshot of the locations with recorded
// counts, ascending.
func (idx *Index) Counts() []string {
	return append([]string(nil), idx.countKey...)
}

// Count returns the recorded count for l, or 0 if none.
func (idx *Index) Count(l string) int {
	return idx.counts[l]
}

// insertSorted inserts v into the sorted slice *s if not already present.
func insertSorted(s *[]string, v string) {
	slice := *s
	i := sort.SearchStrings(slice, v)
	if i < len(slice) && slice[i] == v {
		return
	}
	slice = append(slice, "")
	copy(slice[i+1:], slice[i:])
	slice[i] = v
	*s = slice
}

// insertSortedUniqueInt inserts v into the sorted slice *s if not already
// present, reporting whether an insertion happened.
func insertSortedUniqueInt(s *[]int, v int) bool {
	slice := *s
	i := sort.SearchInts(slice, v)
	if i < len(slice) && slice[i] == v {
		return false
	}
	slice = append(slice, 0)
	copy(slice[i+1:], slice[i:])
	slice[i] = v
	*s = slice
	return true
}

// wordRangeFrom returns the tail of wordKey starting at the first key
// greater than or equal to prefix, for prefix-range enumeration.
func (idx *Index) wordRangeFrom(prefix string) []string {
	i := sort.SearchStrings(idx.wordKey, prefix)
	return idx.wordKey[i:]
}
