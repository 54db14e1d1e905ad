package index

import "testing"

func TestAdd_IdempotentAndCounts(t *testing.T) {
	idx := New()
	idx.Add("fox", "a.txt", 4)
	idx.Add("fox", "a.txt", 4) // duplicate, must not double-count
	if got := idx.Count("a.txt"); got != 1 {
		t.Errorf("Count(a.txt) = %d, want 1", got)
	}
	if got := idx.NumPositions("fox", "a.txt"); got != 1 {
		t.Errorf("NumPositions = %d, want 1", got)
	}
}

func TestAddAll_PositionsFromStart(t *testing.T) {
	idx := New()
	idx.AddAll([]string{"the", "quick", "brown", "fox"}, "a.txt", 1)
	if got := idx.Count("a.txt"); got != 4 {
		t.Errorf("Count(a.txt) = %d, want 4", got)
	}
	if got := idx.Positions("fox", "a.txt"); len(got) != 1 || got[0] != 4 {
		t.Errorf("Positions(fox, a.txt) = %v, want [4]", got)
	}
}

func TestInvariant_CountEqualsSumOfPositionCardinalities(t *testing.T) {
	idx := New()
	idx.AddAll([]string{"a", "b", "a", "c", "b"}, "f.txt", 1)
	sum := 0
	for _, w := range idx.Words() {
		sum += idx.NumPositions(w, "f.txt")
	}
	if sum != idx.Count("f.txt") {
		t.Errorf("sum of position counts = %d, count = %d", sum, idx.Count("f.txt"))
	}
}

func TestWords_SortedAscending(t *testing.T) {
	idx := New()
	idx.Add("zebra", "l", 1)
	idx.Add("apple", "l", 2)
	idx.Add("mango", "l", 3)
	got := idx.Words()
	want := []string{"apple", "mango", "zebra"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Words() = %v, want %v", got, want)
		}
	}
}

func TestLocations_SortedCaseSensitive(t *testing.T) {
	idx := New()
	idx.Add("t", "Banana", 1)
	idx.Add("t", "apple", 1)
	idx.Add("t", "Cherry", 1)
	got := idx.Locations("t")
	want := []string{"Banana", "Cherry", "apple"} // ASCII: uppercase sorts before lowercase
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Locations(t) = %v, want %v", got, want)
		}
	}
}

func TestMerge_UnionsNonOverlappingLocations(t *testing.T) {
	a := New()
	a.AddAll([]string{"the", "quick", "fox"}, "a.txt", 1)
	b := New()
	b.AddAll([]string{"the", "lazy", "dog"}, "b.txt", 1)

	a.Merge(b)

	if !a.ContainsLocation("the", "b.txt") {
		t.Error("merged index missing b.txt under 'the'")
	}
	if a.Count("b.txt") != 3 {
		t.Errorf("Count(b.txt) = %d, want 3", a.Count("b.txt"))
	}
	if a.Count("a.txt") != 3 {
		t.Errorf("Count(a.txt) = %d, want 3", a.Count("a.txt"))
	}
}

func TestMerge_EquivalentToDirectBuildWhenNonOverlapping(t *testing.T) {
	a := New()
	a.AddAll([]string{"the", "quick", "fox"}, "a.txt", 1)
	b := New()
	b.AddAll([]string{"the", "lazy", "dog"}, "b.txt", 1)

	merged := New()
	merged.Merge(a)
	merged.Merge(b)

	direct := New()
	direct.AddAll([]string{"the", "quick", "fox"}, "a.txt", 1)
	direct.AddAll([]string{"the", "lazy", "dog"}, "b.txt", 1)

	for _, w := range direct.Words() {
		for _, l := range direct.Locations(w) {
			if !merged.ContainsLocation(w, l) {
				t.Fatalf("merged missing (%s, %s)", w, l)
			}
		}
	}
	if merged.NumWords() != direct.NumWords() {
		t.Errorf("NumWords: merged=%d direct=%d", merged.NumWords(), direct.NumWords())
	}
}

func TestNoEmptyInnerContainers(t *testing.T) {
	idx := New()
	idx.Add("fox", "a.txt", 1)
	if idx.NumLocations("fox") == 0 {
		t.Error("word entry with no locations should not exist")
	}
	if idx.NumPositions("fox", "a.txt") == 0 {
		t.Error("location entry with no positions should not exist")
	}
}
