package registry

import (
	"strings"
	"unicode/utf8"
)

// FuzzyMatch reports whether query occurs in target as a case-insensitive
// subsequence. A plain substring is the common case and is checked first.
func FuzzyMatch(target, query string) bool {
	t, q := strings.ToLower(target), strings.ToLower(query)
	if strings.Contains(t, q) {
		return true
	}
	for _, ch := range q {
		i := strings.IndexRune(t, ch)
		if i < 0 {
			return false
		}
		t = t[i+utf8.RuneLen(ch):]
	}
	return true
}

func fuzzyMatchesRecord(h *HistoryRecord, query string) bool {
	if FuzzyMatch(h.Name, query) {
		return true
	}
	for _, it := range h.Items {
		if FuzzyMatch(it.Path, query) {
			return true
		}
	}
	return false
}

// Match pairs a record with its registry position.
type Match struct {
	Index  int
	Record HistoryRecord
}

// Search returns records whose name or item paths fuzzy-match query, in
// registry order.
func (r *Registry) Search(query string) []Match {
	var out []Match
	for i := range r.records {
		if fuzzyMatchesRecord(&r.records[i], query) {
			out = append(out, Match{Index: i, Record: r.records[i].Clone()})
		}
	}
	return out
}
