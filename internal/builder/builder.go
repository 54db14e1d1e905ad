// Package builder reads text files from the local filesystem into the
// inverted index, optionally fanning the work out across a worker pool.
package builder

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/lexicon/internal/index"
	"github.com/hyperjump/lexicon/internal/tokenizer"
	"github.com/hyperjump/lexicon/internal/workqueue"
	"go.uber.org/zap"
)

// Builder walks the filesystem and indexes `.txt`/`.text` files.
type Builder struct {
	logger *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets a logger for dropped-file reporting.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// New returns a Builder.
func New(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// isTextFile reports whether name's lower-cased extension is .txt or .text.
func isTextFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".txt") || strings.HasSuffix(lower, ".text")
}

// Build dispatches on path: a directory is walked recursively; a regular
// `.txt`/`.text` file is indexed directly into idx. Non-text siblings are
// skipped silently. Directory traversal happens on the caller's goroutine;
// this is the single-threaded entry point — see BuildConcurrent for the
// worker-pool variant.
func (b *Builder) Build(path string, idx *index.Index) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("builder: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return b.buildDir(path, idx)
	}
	if !isTextFile(path) {
		return nil
	}
	return b.buildFile(path, idx)
}

func (b *Builder) buildDir(dir string, idx *index.Index) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("builder: read dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := b.buildDir(child, idx); err != nil {
				return err
			}
			continue
		}
		if !isTextFile(entry.Name()) {
			continue
		}
		if err := b.buildFile(child, idx); err != nil {
			if b.logger != nil {
				b.logger.Warn("builder: dropping unreadable file", zap.String("path", child), zap.Error(err))
			}
		}
	}
	return nil
}

// buildFile reads path line by line, tokenizes and stems each line, and
// records the resulting stream at consecutive positions starting at 1.
func (b *Builder) buildFile(path string, idx *index.Index) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("builder: open %s: %w", path, err)
	}
	defer f.Close()

	stemmer := tokenizer.NewStemmer()
	position := 1
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		for _, tok := range tokenizer.Parse(scanner.Text()) {
			stem := stemmer.Stem(tok)
			if stem == "" {
				continue
			}
			idx.Add(stem, path, position)
			position++
		}
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return fmt.Errorf("builder: read %s: %w", path, err)
	}
	return nil
}

// BuildConcurrent walks path for text files on the caller's goroutine, and
// for each one enqueues a task on q that builds a fresh local index and
// merges it into shared under the write lock. It returns after
// q.Finish(), so every discovered file has been merged by the time this
// call returns.
func (b *Builder) BuildConcurrent(path string, shared *index.ThreadSafe, q *workqueue.Queue) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("builder: stat %s: %w", path, err)
	}
	if !info.IsDir() {
		if isTextFile(path) {
			b.enqueueFile(path, shared, q)
		}
		q.Finish()
		return nil
	}
	if err := b.walkEnqueue(path, shared, q); err != nil {
		return err
	}
	q.Finish()
	return nil
}

func (b *Builder) walkEnqueue(dir string, shared *index.ThreadSafe, q *workqueue.Queue) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("builder: read dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := b.walkEnqueue(child, shared, q); err != nil {
				return err
			}
			continue
		}
		if !isTextFile(entry.Name()) {
			continue
		}
		b.enqueueFile(child, shared, q)
	}
	return nil
}

func (b *Builder) enqueueFile(path string, shared *index.ThreadSafe, q *workqueue.Queue) {
	q.Execute(func() {
		local := index.New()
		if err := b.buildFile(path, local); err != nil {
			if b.logger != nil {
				b.logger.Warn("builder: dropping unreadable file", zap.String("path", path), zap.Error(err))
			}
			return
		}
		shared.Merge(local)
	})
}
