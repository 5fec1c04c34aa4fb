package domain

import (
	"strings"
)

// NormalizeText is the canonical form of a word: trimmed, lower-cased, with
// every run of inner whitespace collapsed to a single space. Diacritics,
// hyphens and apostrophes are kept.
func NormalizeText(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Join(fields, " "))
}

// SplitWords splits a comma-separated word list as typed by a user.
// Tokens are returned raw; use NormalizeWords to clean them.
func SplitWords(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	return strings.Split(input, ",")
}

// NormalizeWords normalizes every token, drops empty ones and collapses
// duplicates, keeping the order of first appearance.
func NormalizeWords(raw []string) []string {
	words := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		w := NormalizeText(r)
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}
