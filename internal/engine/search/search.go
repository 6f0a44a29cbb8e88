// Package search implements literal, first-match search and replace.
//
// Matching is case-sensitive and byte-exact; there is no regular expression
// support. Every scan starts at the beginning of the text, so repeating a
// Find with the same needle always lands on the same match.
package search

import "strings"

// Match is the location of a needle in a haystack.
type Match struct {
	Start int // Byte offset of the first matched byte
	End   int // Byte offset just past the match
}

// Len returns the match length in bytes.
func (m Match) Len() int {
	return m.End - m.Start
}

// Find returns the first match of needle in haystack.
// An empty needle never matches.
func Find(haystack, needle string) (Match, bool) {
	if needle == "" {
		return Match{}, false
	}
	i := strings.Index(haystack, needle)
	if i < 0 {
		return Match{}, false
	}
	return Match{Start: i, End: i + len(needle)}, true
}

// Replace substitutes the first match of needle with replacement.
// It returns the match that was replaced and the resulting text. When there
// is no match the haystack is returned unchanged and ok is false.
func Replace(haystack, needle, replacement string) (m Match, result string, ok bool) {
	m, ok = Find(haystack, needle)
	if !ok {
		return Match{}, haystack, false
	}
	return m, haystack[:m.Start] + replacement + haystack[m.End:], true
}
