package quiz

import (
	"hash/fnv"
	"math/rand"

	"github.com/heartmarshall/quizmaker-backend/internal/domain"
)

// WordBankRowSize is the number of words shown per word-bank row.
const WordBankRowSize = 5

// WordBank returns the quiz words shuffled and split into rows of
// WordBankRowSize. The order is stable per quiz id so a reload does not
// reshuffle the bank under the taker.
func WordBank(q *domain.Quiz) [][]string {
	words := q.Words()
	if len(words) == 0 {
		return [][]string{}
	}

	//nolint:gosec // display order, not cryptographic
	rng := rand.New(rand.NewSource(shuffleSeed(q.ID)))
	rng.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })

	rows := make([][]string, 0, (len(words)+WordBankRowSize-1)/WordBankRowSize)
	for start := 0; start < len(words); start += WordBankRowSize {
		end := min(start+WordBankRowSize, len(words))
		rows = append(rows, words[start:end])
	}
	return rows
}

// shuffleSeed derives a deterministic seed from the quiz id using FNV-1a.
func shuffleSeed(id domain.QuizID) int64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return int64(h.Sum64())
}
