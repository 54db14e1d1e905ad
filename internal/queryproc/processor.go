// Package queryproc implements the query processor: normalizing query
// lines into canonical keys, memoizing per search mode, and invoking the
// shared index's search.
package queryproc

import (
	"bufio"
	"os"
	"sort"
	"sync"

	"github.com/hyperjump/lexicon/internal/index"
	"github.com/hyperjump/lexicon/internal/tokenizer"
	"github.com/hyperjump/lexicon/internal/workqueue"
	"go.uber.org/zap"
)

// Searcher is the read-only contract the processor needs from the shared
// index. index.ThreadSafe satisfies it; tests substitute a counting double
// to observe at-most-once search invocation under memoization.
type Searcher interface {
	Search(stems []string, prefix bool) []index.QueryResult
}

// Processor normalizes, deduplicates, and memoizes queries per mode
// (exact, prefix each have an independent cache) and invokes Searcher.
type Processor struct {
	idx    Searcher
	logger *zap.Logger

	mu    sync.Mutex
	exact map[string][]index.QueryResult
	prefi map[string][]index.QueryResult
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the Processor's logger. No Processor method writes to it.
func WithLogger(l *zap.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

// New returns a Processor over idx.
func New(idx Searcher, opts ...Option) *Processor {
	p := &Processor{
		idx:   idx,
		exact: make(map[string][]index.QueryResult),
		prefi: make(map[string][]index.QueryResult),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Processor) memoFor(prefix bool) map[string][]index.QueryResult {
	if prefix {
		return p.prefi
	}
	return p.exact
}

// ProcessLine tokenizes, stems, deduplicates line into a canonical query
// key; if the key is empty or already memoized for this mode, it returns
// without searching. Otherwise it runs idx.Search and stores the result.
//
// A fresh Stemmer is constructed per call rather than reused across calls:
// ProcessFileConcurrent dispatches ProcessLine as tasks on a shared worker
// pool, and Stemmer wraps a single snowballstem.Env that is not safe for
// concurrent use, so each worker must own its own instance.
func (p *Processor) ProcessLine(line string, prefix bool) {
	stems := tokenizer.UniqueStems(line, tokenizer.NewStemmer())
	key := tokenizer.CanonicalKey(stems)
	if key == "" {
		return
	}
	p.mu.Lock()
	memo := p.memoFor(prefix)
	if _, ok := memo[key]; ok {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	results := p.idx.Search(stems, prefix)

	p.mu.Lock()
	memo = p.memoFor(prefix)
	if _, ok := memo[key]; !ok {
		memo[key] = results
	}
	p.mu.Unlock()
}

// ProcessFile reads path line by line, calling ProcessLine on each.
func (p *Processor) ProcessFile(path string, prefix bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		p.ProcessLine(scanner.Text(), prefix)
	}
	return scanner.Err()
}

// ProcessFileConcurrent submits every line in path to q and then blocks on
// q.Finish(), guaranteeing every line has been processed by the time it
// returns.
func (p *Processor) ProcessFileConcurrent(path string, prefix bool, q *workqueue.Queue) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		q.Execute(func() { p.ProcessLine(line, prefix) })
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	q.Finish()
	return nil
}

// Queries returns the memoized keys for the given mode, unordered.
func (p *Processor) Queries(prefix bool) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	memo := p.memoFor(prefix)
	keys := make([]string, 0, len(memo))
	for k := range memo {
		keys = append(keys, k)
	}
	return keys
}

// Results returns the stored result list for query under mode, or nil if
// not memoized. query is re-canonicalized before lookup, so callers may
// pass the original, un-normalized query text.
func (p *Processor) Results(query string, prefix bool) []index.QueryResult {
	stems := tokenizer.UniqueStems(query, tokenizer.NewStemmer())
	key := tokenizer.CanonicalKey(stems)
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.memoFor(prefix)[key]
}

// SortedKeys returns the memoized keys for mode, sorted ascending — the
// order WriteResults (component H) serializes under.
func (p *Processor) SortedKeys(prefix bool) []string {
	keys := p.Queries(prefix)
	sort.Strings(keys)
	return keys
}

// Memo returns a snapshot of the per-mode memo map, suitable for handing to
// the JSON writer.
func (p *Processor) Memo(prefix bool) map[string][]index.QueryResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	memo := p.memoFor(prefix)
	out := make(map[string][]index.QueryResult, len(memo))
	for k, v := range memo {
		out[k] = v
	}
	return out
}
