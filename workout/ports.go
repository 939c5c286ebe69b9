package workout

import "github.com/grit-cli/grit/internal/models"

// Answer is the outcome of an interactive prompt.
type Answer int

const (
	AnswerYes Answer = iota
	AnswerNo
	AnswerCancel
)

// Confirmer is the interactive port used during create, end, and delete.
// A cancel answer unwinds the in-progress operation without mutation.
type Confirmer interface {
	// Confirm asks a yes/no question.
	Confirm(title string) (Answer, error)
	// Input collects a free-form line, typically a re-entered date/time.
	Input(title string) (string, Answer, error)
}

// Tagger suggests tags for a newly created session.
type Tagger interface {
	Suggest(sess *models.Session) []string
}
