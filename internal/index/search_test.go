// Search ranking and prefix-combination behavior covered here corresponds
// to the single-file, multi-file ranking, tie-break, and prefix scenarios
// listed under the testable properties in SPEC_FULL.md.
package index

import "testing"

func TestSearch_ExactSingleFile(t *testing.T) {
	idx := New()
	idx.AddAll([]string{"the", "quick", "brown", "fox"}, "a.txt", 1)

	results := idx.Search([]string{"quick", "fox"}, false)
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	r := results[0]
	if r.Location != "a.txt" || r.Matches != 2 || r.Score != 0.5 {
		t.Errorf("result = %+v, want {a.txt 2 0.5}", r)
	}
}

func TestSearch_RanksByScoreAcrossFiles(t *testing.T) {
	idx := New()
	// a.txt: 2 matches out of 10 tokens -> score 0.2
	idx.AddAll([]string{"cat", "dog", "x", "x", "x", "x", "x", "x", "x", "x"}, "a.txt", 1)
	// b.txt: 3 matches out of 100 tokens -> score 0.03
	tokens := []string{"cat", "dog", "cat"}
	for i := 0; i < 97; i++ {
		tokens = append(tokens, "filler")
	}
	idx.AddAll(tokens, "b.txt", 1)

	results := idx.Search([]string{"cat", "dog"}, false)
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Location != "a.txt" || results[1].Location != "b.txt" {
		t.Errorf("order = [%s, %s], want [a.txt, b.txt]", results[0].Location, results[1].Location)
	}
}

func TestSearch_TieBreaksByLocationCaseInsensitiveAscending(t *testing.T) {
	idx := New()
	idx.AddAll([]string{"a", "a", "a", "a", "a", "b", "b", "b", "b", "b"}, "y.txt", 1)
	idx.AddAll([]string{"a", "a", "a", "a", "a", "b", "b", "b", "b", "b"}, "x.txt", 1)

	results := idx.Search([]string{"a", "b"}, false)
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Location != "x.txt" || results[1].Location != "y.txt" {
		t.Errorf("order = [%s, %s], want [x.txt, y.txt]", results[0].Location, results[1].Location)
	}
}

func TestSearch_PrefixCombinesMultipleMatchingTokens(t *testing.T) {
	idx := New()
	idx.AddAll([]string{"cat", "catalog", "dog"}, "a.txt", 1)

	results := idx.Search([]string{"cat"}, true)
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if results[0].Matches != 2 {
		t.Errorf("matches = %d, want 2 (cat + catalog)", results[0].Matches)
	}
}

func TestSearch_PrefixExcludesNonMatchingTokensPastRange(t *testing.T) {
	idx := New()
	idx.AddAll([]string{"cat", "catalog", "dog", "zebra"}, "a.txt", 1)

	results := idx.Search([]string{"cat"}, true)
	if results[0].Matches != 2 {
		t.Errorf("matches = %d, want 2", results[0].Matches)
	}
}

// Exact-search results must appear in prefix-search results for the same stems.
func TestSearch_PrefixSupersetOfExact(t *testing.T) {
	idx := New()
	idx.AddAll([]string{"cat", "catalog", "dog", "category"}, "a.txt", 1)
	idx.AddAll([]string{"cat"}, "b.txt", 1)

	exact := idx.Search([]string{"cat"}, false)
	prefix := idx.Search([]string{"cat"}, true)

	exactLocs := map[string]bool{}
	for _, r := range exact {
		exactLocs[r.Location] = true
	}
	prefixLocs := map[string]bool{}
	for _, r := range prefix {
		prefixLocs[r.Location] = true
	}
	for loc := range exactLocs {
		if !prefixLocs[loc] {
			t.Errorf("exact match %s missing from prefix results", loc)
		}
	}
}

func TestSearch_EmptyInputEmptyOutput(t *testing.T) {
	idx := New()
	idx.Add("fox", "a.txt", 1)
	if got := idx.Search(nil, false); got != nil {
		t.Errorf("Search(nil) = %v, want nil", got)
	}
}

func TestSearch_DeterministicAcrossRuns(t *testing.T) {
	build := func() *Index {
		idx := New()
		idx.AddAll([]string{"a", "b", "c"}, "x.txt", 1)
		idx.AddAll([]string{"a", "b"}, "y.txt", 1)
		return idx
	}
	r1 := build().Search([]string{"a", "b"}, false)
	r2 := build().Search([]string{"a", "b"}, false)
	if len(r1) != len(r2) {
		t.Fatalf("lengths differ: %d vs %d", len(r1), len(r2))
	}
	for i := range r1 {
		if r1[i] != r2[i] {
			t.Errorf("result[%d] differs: %+v vs %+v", i, r1[i], r2[i])
		}
	}
}
