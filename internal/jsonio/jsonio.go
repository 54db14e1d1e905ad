// Package jsonio implements the canonical JSON serialization contract: given
// a sorted word/location/positions structure or a query-result memo, emit
// the exact output formats the driver writes to disk.
package jsonio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hyperjump/lexicon/internal/index"
)

// WriteCounts writes {location: count, ...}, keys ascending, to path.
// encoding/json sorts map[string]X keys ascending when marshaling, which is
// exactly the ordering §6 requires, so no custom ordering logic is needed.
func WriteCounts(path string, idx *index.ThreadSafe) error {
	locations := idx.Counts()
	out := make(map[string]int, len(locations))
	for _, loc := range locations {
		out[loc] = idx.Count(loc)
	}
	return writeJSON(path, out)
}

// WriteIndex writes {token: {location: [positions...], ...}, ...}, token
// keys ascending and, within each token, location keys ascending, to path.
func WriteIndex(path string, idx *index.ThreadSafe) error {
	words := idx.Words()
	out := make(map[string]map[string][]int, len(words))
	for _, word := range words {
		locs := idx.Locations(word)
		byLoc := make(map[string][]int, len(locs))
		for _, loc := range locs {
			byLoc[loc] = idx.Positions(word, loc)
		}
		out[word] = byLoc
	}
	return writeJSON(path, out)
}

// resultJSON is one ranked hit in the §6 Results format: score is rendered
// as an 8-decimal string, not a JSON number, per the contract.
type resultJSON struct {
	Count int    `json:"count"`
	Score string `json:"score"`
	Where string `json:"where"`
}

// WriteResults writes {query: [{count, score, where}, ...], ...}, query
// keys ascending, to path. Each result list must already be ranked by the
// §4.3 comparator; this function only serializes, it does not re-sort.
func WriteResults(path string, results map[string][]index.QueryResult) error {
	out := make(map[string][]resultJSON, len(results))
	for key, rs := range results {
		list := make([]resultJSON, len(rs))
		for i, r := range rs {
			list[i] = resultJSON{
				Count: r.Matches,
				Score: fmt.Sprintf("%.8f", r.Score),
				Where: r.Location,
			}
		}
		out[key] = list
	}
	return writeJSON(path, out)
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("jsonio: create %s: %w", path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("jsonio: write %s: %w", path, err)
	}
	return nil
}
