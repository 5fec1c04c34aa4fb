package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Placeholder replaces the quizzed word inside an example sentence.
const Placeholder = "_"

// MaskWord replaces every literal occurrence of word in sentence with
// Placeholder. Occurrences inside longer words are masked too ("cat" in
// "concatenate"). Two case variants are masked: the lower-cased word and its
// capitalized form ("cat" and "Cat"); other spellings ("CAT") are left as is.
// Masking is idempotent: once masked, no variant remains to replace.
func MaskWord(sentence, word string) string {
	lower := strings.ToLower(word)
	if lower == "" {
		return sentence
	}
	masked := strings.ReplaceAll(sentence, lower, Placeholder)
	if title := capitalize(lower); title != lower {
		masked = strings.ReplaceAll(masked, title, Placeholder)
	}
	return masked
}

// CleanExamples turns raw provider sentences into quiz candidates: exact
// duplicates are removed (first appearance wins), the word is masked, and
// sentences that became identical after masking are collapsed again.
func CleanExamples(raw []string, word string) []string {
	out := make([]string, 0, len(raw))
	seenRaw := make(map[string]struct{}, len(raw))
	seenMasked := make(map[string]struct{}, len(raw))
	for _, s := range raw {
		if strings.TrimSpace(s) == "" {
			continue
		}
		if _, dup := seenRaw[s]; dup {
			continue
		}
		seenRaw[s] = struct{}{}

		m := MaskWord(s, word)
		if _, dup := seenMasked[m]; dup {
			continue
		}
		seenMasked[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
