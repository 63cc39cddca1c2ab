// Package search ranks contacts by keyword relevance against a free-text
// query. It is the fallback path when no external semantic search
// collaborator is wired; true embedding search stays outside this core.
package search

import (
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/sells-group/prospector-cli/internal/model"
)

// Match is one ranked search hit.
type Match struct {
	Record    model.ContactRecord `json:"-"`
	ID        string              `json:"id"`
	Relevance float64             `json:"relevance"`
	matched   int
	order     int
}

// Result is the response of a relevance search.
type Result struct {
	Matches []Match  `json:"matches"`
	Query   string   `json:"query"`
	Tokens  []string `json:"tokens"`
}

// Rank scores records by how many distinct query tokens appear in their
// searchable text (title, company, industry, keywords, technologies),
// drops non-matches, sorts by score descending (input order breaks ties),
// and truncates to topK. Relevance is matchedTokens/totalTokens.
func Rank(records []model.ContactRecord, query string, topK int) *Result {
	tokens := tokenize(query)
	res := &Result{Query: query, Tokens: tokens}
	if len(tokens) == 0 {
		return res
	}

	for i := range records {
		text := searchText(&records[i])
		matched := 0
		for _, tok := range tokens {
			if strings.Contains(text, tok) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		res.Matches = append(res.Matches, Match{
			Record:    records[i],
			ID:        records[i].ID,
			Relevance: float64(matched) / float64(len(tokens)),
			matched:   matched,
			order:     i,
		})
	}

	sort.SliceStable(res.Matches, func(a, b int) bool {
		if res.Matches[a].matched != res.Matches[b].matched {
			return res.Matches[a].matched > res.Matches[b].matched
		}
		return res.Matches[a].order < res.Matches[b].order
	})

	if topK > 0 && len(res.Matches) > topK {
		res.Matches = res.Matches[:topK]
	}

	zap.L().Debug("search: relevance ranking complete",
		zap.String("query", query),
		zap.Int("tokens", len(tokens)),
		zap.Int("matches", len(res.Matches)),
	)
	return res
}

// tokenize lowercases and splits on non-alphanumeric runes, dropping
// single-character fragments and duplicates.
func tokenize(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]bool, len(fields))
	var tokens []string
	for _, f := range fields {
		if len(f) < 2 || seen[f] {
			continue
		}
		seen[f] = true
		tokens = append(tokens, f)
	}
	return tokens
}

func searchText(c *model.ContactRecord) string {
	parts := []string{c.Title, c.CompanyName, c.Industry}
	parts = append(parts, c.Keywords...)
	parts = append(parts, c.Technologies...)
	return strings.ToLower(strings.Join(parts, " "))
}
