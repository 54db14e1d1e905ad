package queryproc

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hyperjump/lexicon/internal/index"
	"github.com/hyperjump/lexicon/internal/workqueue"
)

// countingSearcher counts invocations, so tests can assert on at-most-once
// search execution under memoization.
type countingSearcher struct {
	calls int32
	idx   *index.Index
}

func (c *countingSearcher) Search(stems []string, prefix bool) []index.QueryResult {
	atomic.AddInt32(&c.calls, 1)
	return c.idx.Search(stems, prefix)
}

func newFixture() *countingSearcher {
	idx := index.New()
	idx.AddAll([]string{"the", "quick", "brown", "fox"}, "a.txt", 1)
	return &countingSearcher{idx: idx}
}

func TestProcessLine_MemoizesAndReturnsResults(t *testing.T) {
	cs := newFixture()
	p := New(cs)
	p.ProcessLine("quick fox", false)

	results := p.Results("quick fox", false)
	if len(results) != 1 || results[0].Location != "a.txt" {
		t.Errorf("results = %v", results)
	}
}

func TestProcessLine_EmptyLineNoOp(t *testing.T) {
	cs := newFixture()
	p := New(cs)
	p.ProcessLine("", false)
	p.ProcessLine("   ", false)
	if len(p.Queries(false)) != 0 {
		t.Errorf("expected no memoized queries, got %v", p.Queries(false))
	}
}

func TestProcessLine_MemoizesRepeatedQuery(t *testing.T) {
	cs := newFixture()
	p := New(cs)
	p.ProcessLine("quick fox", false)
	p.ProcessLine("quick fox", false)
	p.ProcessLine("fox quick", false) // same canonical key, different word order

	if cs.calls != 1 {
		t.Errorf("search invocations = %d, want 1", cs.calls)
	}
}

func TestProcessLine_ModesIndependentMemo(t *testing.T) {
	cs := newFixture()
	p := New(cs)
	p.ProcessLine("quick", false)
	p.ProcessLine("quick", true)

	if len(p.Queries(false)) != 1 || len(p.Queries(true)) != 1 {
		t.Errorf("exact queries = %v, prefix queries = %v", p.Queries(false), p.Queries(true))
	}
}

func TestResults_ReCanonicalizesArgument(t *testing.T) {
	cs := newFixture()
	p := New(cs)
	p.ProcessLine("fox quick", false)

	// Same stems, different surface order/case; should hit the same memo entry.
	results := p.Results("Quick FOX", false)
	if len(results) != 1 {
		t.Errorf("results = %v", results)
	}
}

func TestProcessLine_ConcurrentTasksAllProcessed(t *testing.T) {
	cs := newFixture()
	p := New(cs)
	q := workqueue.New(4)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, line := range []string{"quick", "fox", "brown fox"} {
			q.Execute(func(l string) func() {
				return func() { p.ProcessLine(l, false) }
			}(line))
		}
		q.Finish()
	}()
	wg.Wait()

	if len(p.Queries(false)) != 3 {
		t.Errorf("len(Queries) = %d, want 3", len(p.Queries(false)))
	}
	q.Shutdown()
	q.Join()
}
