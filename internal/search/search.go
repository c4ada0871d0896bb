package search

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/ccview/ccview/internal/index"
)

// Result is one session matched against the query, carrying the prompt
// that scored best and the matched rune positions within it for
// highlighting.
type Result struct {
	Session        index.SearchableSession
	BestPrompt     string
	MatchedIndexes []int
	Score          int
}

// Load pulls every indexed session with its prompts into memory. The
// corpus is small enough that ranking happens per keystroke without
// touching the database again.
func Load(db *index.DB) ([]index.SearchableSession, error) {
	return db.SearchAll()
}

// Rank fuzzy-matches the query against every prompt of every session and
// returns one Result per matching session, best score first; ties break
// newest first. An empty query returns all sessions in stored order.
func Rank(sessions []index.SearchableSession, query string) []Result {
	if query == "" {
		results := make([]Result, 0, len(sessions))
		for _, s := range sessions {
			r := Result{Session: s}
			if len(s.Prompts) > 0 {
				r.BestPrompt = s.Prompts[0]
			}
			results = append(results, r)
		}
		return results
	}

	var results []Result
	for _, s := range sessions {
		matches := fuzzy.Find(query, s.Prompts)
		if len(matches) == 0 {
			continue
		}
		best := matches[0]
		for _, m := range matches[1:] {
			if m.Score > best.Score {
				best = m
			}
		}
		results = append(results, Result{
			Session:        s,
			BestPrompt:     s.Prompts[best.Index],
			MatchedIndexes: best.MatchedIndexes,
			Score:          best.Score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Session.CreatedAt > results[j].Session.CreatedAt
	})
	return results
}
