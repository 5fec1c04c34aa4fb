package domain

// QuizStage is the position of a quiz-building session in its workflow.
type QuizStage string

const (
	QuizStageCollecting QuizStage = "COLLECTING"
	QuizStageChoosing   QuizStage = "CHOOSING"
	QuizStageEditing    QuizStage = "EDITING"
	QuizStageConfirming QuizStage = "CONFIRMING"
	QuizStagePersisted  QuizStage = "PERSISTED"
)

func (s QuizStage) String() string { return string(s) }

func (s QuizStage) IsValid() bool {
	switch s {
	case QuizStageCollecting, QuizStageChoosing, QuizStageEditing, QuizStageConfirming, QuizStagePersisted:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s QuizStage) IsTerminal() bool { return s == QuizStagePersisted }

// StoreDriver selects the Example Store backend.
type StoreDriver string

const (
	StoreDriverMongo    StoreDriver = "mongo"
	StoreDriverPostgres StoreDriver = "postgres"
	StoreDriverMemory   StoreDriver = "memory"
)

func (d StoreDriver) String() string { return string(d) }

func (d StoreDriver) IsValid() bool {
	switch d {
	case StoreDriverMongo, StoreDriverPostgres, StoreDriverMemory:
		return true
	}
	return false
}
