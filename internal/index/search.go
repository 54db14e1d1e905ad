package index

import (
	"sort"
	"strings"
)

// QueryResult binds one Location to the aggregate match count and score
// produced by a search. Score is snapshotted at search time rather than
// recomputed from a live reference into the index, so a QueryResult has no
// back-reference to the index that produced it.
type QueryResult struct {
	Location string
	Matches  int
	Score    float64
}

// Search runs exact or prefix search for the given set of stems and
// returns results ordered by the comparator: score descending, then
// matches descending, then location case-insensitive ascending.
//
// stems must not contain duplicates and, in prefix mode, must not contain
// the empty string; both are caller obligations (see the tokenizer
// adapter's UniqueStems, which already satisfies them).
func (idx *Index) Search(stems []string, prefix bool) []QueryResult {
	if len(stems) == 0 {
		return nil
	}
	hits := make(map[string]*QueryResult)
	var order []string

	addMatches := func(location string, n int) {
		qr, ok := hits[location]
		if !ok {
			qr = &QueryResult{Location: location}
			hits[location] = qr
			order = append(order, location)
		}
		qr.Matches += n
		qr.Score = float64(qr.Matches) / float64(idx.counts[location])
	}

	for _, stem := range stems {
		if prefix {
			for _, word := range idx.wordRangeFrom(stem) {
				if !strings.HasPrefix(word, stem) {
					break
				}
				we := idx.words[word]
				for _, loc := range we.locKey {
					addMatches(loc, len(we.locations[loc].positions))
				}
			}
			continue
		}
		we, ok := idx.words[stem]
		if !ok {
			continue
		}
		for _, loc := range we.locKey {
			addMatches(loc, len(we.locations[loc].positions))
		}
	}

	results := make([]QueryResult, len(order))
	for i, loc := range order {
		results[i] = *hits[loc]
	}
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Matches != b.Matches {
			return a.Matches > b.Matches
		}
		return strings.ToLower(a.Location) < strings.ToLower(b.Location)
	})
	return results
}
