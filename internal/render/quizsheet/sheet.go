// Package quizsheet renders a persisted quiz as a printable sheet: a word
// bank followed by the numbered masked sentences.
package quizsheet

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/heartmarshall/quizmaker-backend/internal/domain"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// Sheet is the content of a printable quiz.
type Sheet struct {
	Title     string
	WordBank  [][]string
	Questions []string
}

// FromQuiz builds a sheet from a quiz and its word bank rows.
func FromQuiz(q *domain.Quiz, bank [][]string) Sheet {
	questions := make([]string, len(q.Entries))
	for i, e := range q.Entries {
		questions[i] = e.Sentence
	}
	return Sheet{
		Title:     q.DisplayTitle(),
		WordBank:  bank,
		Questions: questions,
	}
}

// Markdown renders the sheet as GitHub-flavored Markdown. The word bank is a
// table with an empty header row, one bank row per table row.
func (s Sheet) Markdown() []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# %s\n\n", escape(s.Title))

	if cols := bankColumns(s.WordBank); cols > 0 {
		b.WriteString("## Word Bank\n\n")
		b.WriteString("|" + strings.Repeat("   |", cols) + "\n")
		b.WriteString("|" + strings.Repeat(" --- |", cols) + "\n")
		for _, row := range s.WordBank {
			b.WriteString("|")
			for i := range cols {
				cell := ""
				if i < len(row) {
					cell = escape(row[i])
				}
				fmt.Fprintf(&b, " %s |", cell)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## Questions\n\n")
	for i, q := range s.Questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, escape(q))
	}

	return b.Bytes()
}

// HTML renders the sheet as a standalone HTML document.
func (s Sheet) HTML() ([]byte, error) {
	var body bytes.Buffer
	if err := md.Convert(s.Markdown(), &body); err != nil {
		return nil, fmt.Errorf("render quiz sheet: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(s.Title))
	b.WriteString("</head>\n<body>\n")
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")
	return b.Bytes(), nil
}

func bankColumns(bank [][]string) int {
	cols := 0
	for _, row := range bank {
		cols = max(cols, len(row))
	}
	return cols
}

// escape backslash-escapes Markdown punctuation so sentences render
// literally. The placeholder "_" would otherwise open emphasis.
func escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune("\\`*_{}[]<>()#+-.!|~", r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
