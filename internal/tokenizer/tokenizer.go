// Package tokenizer is the pure text-processing seam between raw text and
// the inverted index: parsing into tokens, stemming, and producing the
// deduplicated, sorted stem sets that both search queries and indexing use.
package tokenizer

import (
	"sort"
	"strings"
	"unicode"

	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/english"
)

// Parse returns the tokens of text: lowercased, with every character that
// is not a letter, digit or whitespace replaced by a space, split on runs
// of whitespace (so "Brown-Fox" yields "brown" and "fox"). Token order is
// preserved and duplicates are allowed.
func Parse(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)
	return strings.Fields(cleaned)
}

// Stemmer stems individual tokens to their Snowball-English form.
// Snowball stemmers are not safe for concurrent use, so each worker
// goroutine must construct its own Stemmer rather than share one.
type Stemmer struct {
	env *snowballstem.Env
}

// NewStemmer returns a new, unshared Stemmer.
func NewStemmer() *Stemmer {
	return &Stemmer{env: snowballstem.NewEnv("")}
}

// Stem returns the Snowball-English stem of token.
func (s *Stemmer) Stem(token string) string {
	s.env.SetCurrent(token)
	english.Stem(s.env)
	return s.env.Current()
}

// UniqueStems parses line, stems each token with stemmer, deduplicates,
// and returns the result as a case-insensitively sorted ordered set.
// Empty stems (possible if a token stems to nothing) are skipped.
func UniqueStems(line string, stemmer *Stemmer) []string {
	seen := make(map[string]struct{})
	var stems []string
	for _, tok := range Parse(line) {
		stem := stemmer.Stem(tok)
		if stem == "" {
			continue
		}
		if _, ok := seen[stem]; ok {
			continue
		}
		seen[stem] = struct{}{}
		stems = append(stems, stem)
	}
	sort.Slice(stems, func(i, j int) bool {
		return strings.ToLower(stems[i]) < strings.ToLower(stems[j])
	})
	return stems
}

// CanonicalKey joins sorted, deduplicated stems with single spaces to form
// the Query Processor's memoization key. Stems must already be unique and
// sorted (as UniqueStems returns them).
func CanonicalKey(stems []string) string {
	return strings.Join(stems, " ")
}
