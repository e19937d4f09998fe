package fileindex

import (
	"sort"
	"strings"

	"github.com/waylens/terminal/internal/model"
)

// Field-match weights for file scoring.
const (
	weightCompany = 15
	weightTopic   = 10
	weightKeyword = 5
	weightColumn  = 3
	weightFilter  = 5

	// DefaultLimit bounds CLI result lists; the HTTP handler uses its own.
	DefaultLimit = 10
)

// Search scores every indexed file against the query and returns the
// surviving files ordered by descending score. Files scoring zero are
// excluded. An empty query after tokenization is a valid empty response.
func Search(idx *model.FileIndexSnapshot, q model.FileSearchQuery) []model.FileSearchResult {
	tokens := queryTokens(q.Query)
	if len(tokens) == 0 {
		return nil
	}

	limit := DefaultLimit
	var filters *model.FileSearchFilters
	if q.Filters != nil {
		filters = q.Filters
		if filters.Limit > 0 {
			limit = filters.Limit
		}
	}

	var results []model.FileSearchResult
	for _, file := range idx.Files {
		score, matched := scoreFile(&file, tokens, filters)
		if score <= 0 {
			continue
		}
		results = append(results, model.FileSearchResult{
			CSVFileMetadata: file,
			Score:           score,
			MatchedKeywords: matched,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// queryTokens lowercases the query, strips punctuation, and keeps tokens
// longer than two characters.
func queryTokens(query string) []string {
	var tokens []string
	for _, raw := range strings.Fields(strings.ToLower(query)) {
		var b strings.Builder
		for _, r := range raw {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			}
		}
		if tok := b.String(); len(tok) > 2 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func scoreFile(file *model.CSVFileMetadata, tokens []string, filters *model.FileSearchFilters) (float64, []string) {
	var (
		score   float64
		matched []string
	)

	for _, tok := range tokens {
		if file.Company != "" && strings.Contains(file.Company, tok) {
			score += weightCompany
			matched = append(matched, "company:"+file.Company)
		}
		if file.Topic != "" && strings.Contains(file.Topic, tok) {
			score += weightTopic
			matched = append(matched, "topic:"+file.Topic)
		}
		for _, kw := range file.Keywords {
			if strings.Contains(kw, tok) || strings.Contains(tok, kw) {
				score += weightKeyword
				matched = append(matched, kw)
			}
		}
		for _, col := range file.Columns {
			if strings.Contains(strings.ToLower(col), tok) {
				score += weightColumn
				matched = append(matched, "column:"+col)
			}
		}
	}

	if filters != nil {
		for _, c := range filters.Companies {
			lc := strings.ToLower(c)
			if file.Company != "" && (strings.Contains(file.Company, lc) || strings.Contains(lc, file.Company)) {
				score += weightFilter
			}
		}
		for _, tp := range filters.Topics {
			lt := strings.ToLower(tp)
			if file.Topic != "" && (strings.Contains(file.Topic, lt) || strings.Contains(lt, file.Topic)) {
				score += weightFilter
			}
		}
	}

	return score, matched
}
