package quizsheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/quizmaker-backend/internal/domain"
)

func testQuiz() *domain.Quiz {
	title := "Fruit Quiz"
	return &domain.Quiz{
		ID:    "65a1f0c2e4b0a1b2c3d4e5f6",
		Title: &title,
		Entries: []domain.QuizEntry{
			{Word: "apple", Sentence: "I ate an _."},
			{Word: "banana", Sentence: "A _ split."},
		},
	}
}

func TestFromQuiz(t *testing.T) {
	t.Parallel()

	bank := [][]string{{"banana", "apple"}}
	s := FromQuiz(testQuiz(), bank)

	assert.Equal(t, "Fruit Quiz", s.Title)
	assert.Equal(t, bank, s.WordBank)
	assert.Equal(t, []string{"I ate an _.", "A _ split."}, s.Questions)
}

func TestFromQuiz_DefaultTitle(t *testing.T) {
	t.Parallel()

	q := testQuiz()
	q.Title = nil
	assert.Equal(t, domain.DefaultQuizTitle, FromQuiz(q, nil).Title)
}

func TestSheet_Markdown(t *testing.T) {
	t.Parallel()

	s := FromQuiz(testQuiz(), [][]string{{"banana", "apple"}})
	want := "# Fruit Quiz\n\n" +
		"## Word Bank\n\n" +
		"|   |   |\n" +
		"| --- | --- |\n" +
		"| banana | apple |\n\n" +
		"## Questions\n\n" +
		"1. I ate an \\_\\.\n" +
		"2. A \\_ split\\.\n"

	assert.Equal(t, want, string(s.Markdown()))
}

func TestSheet_Markdown_PadsShortRows(t *testing.T) {
	t.Parallel()

	s := Sheet{
		Title:    "T",
		WordBank: [][]string{{"a", "b", "c"}, {"d"}},
	}
	md := string(s.Markdown())
	assert.Contains(t, md, "| a | b | c |\n| d |  |  |\n")
}

func TestSheet_Markdown_NoWordBank(t *testing.T) {
	t.Parallel()

	md := string(Sheet{Title: "Empty"}.Markdown())
	assert.NotContains(t, md, "Word Bank")
	assert.Contains(t, md, "## Questions")
}

func TestSheet_HTML(t *testing.T) {
	t.Parallel()

	s := FromQuiz(testQuiz(), [][]string{{"banana", "apple"}})
	out, err := s.HTML()
	require.NoError(t, err)

	html := string(out)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Fruit Quiz</title>")
	assert.Contains(t, html, "<h1>Fruit Quiz</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>banana</td>")
	assert.Contains(t, html, "<li>I ate an _.</li>")
	assert.NotContains(t, html, "<em>", "placeholders must not turn into emphasis")
}

func TestSheet_HTML_EscapesMarkup(t *testing.T) {
	t.Parallel()

	s := Sheet{Title: "<b>x</b>", Questions: []string{"<script>alert(1)</script> _"}}
	out, err := s.HTML()
	require.NoError(t, err)

	html := string(out)
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<b>")
}
