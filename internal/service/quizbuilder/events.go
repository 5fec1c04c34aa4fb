package quizbuilder

// EventKind names a caller-submitted event.
type EventKind string

const (
	EventSubmitWords   EventKind = "SUBMIT_WORDS"
	EventSubmitChoices EventKind = "SUBMIT_CHOICES"
	EventSubmitEdits   EventKind = "SUBMIT_EDITS"
	EventConfirm       EventKind = "CONFIRM"
)

// Event is one of SubmitWords, SubmitChoices, SubmitEdits or Confirm.
type Event interface {
	Kind() EventKind
}

// SubmitWords supplies the raw quiz words. They are normalized and
// deduplicated before the word-count bound is checked.
type SubmitWords struct {
	Words []string
}

// SubmitChoices picks one candidate sentence for every remaining word.
type SubmitChoices struct {
	Choices map[string]string
}

// SubmitEdits replaces the chosen sentence of zero or more words.
type SubmitEdits struct {
	Edits map[string]string
}

// Confirm persists the quiz. A nil or blank title is stored as no title.
type Confirm struct {
	Title *string
}

func (SubmitWords) Kind() EventKind   { return EventSubmitWords }
func (SubmitChoices) Kind() EventKind { return EventSubmitChoices }
func (SubmitEdits) Kind() EventKind   { return EventSubmitEdits }
func (Confirm) Kind() EventKind       { return EventConfirm }
