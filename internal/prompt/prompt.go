// Package prompt implements the interactive confirmation provider using
// huh forms.
package prompt

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/grit-cli/grit/workout"
)

// cancelWord aborts an in-progress operation when typed at an input
// prompt. Pressing Ctrl+C or Esc has the same effect.
const cancelWord = "cancel"

// Interactive asks the user yes/no questions and collects re-entered
// values on the terminal.
type Interactive struct{}

func (Interactive) Confirm(title string) (workout.Answer, error) {
	var ok bool

	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	))

	err := form.Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return workout.AnswerCancel, nil
		}

		return workout.AnswerCancel, err
	}

	if ok {
		return workout.AnswerYes, nil
	}

	return workout.AnswerNo, nil
}

func (Interactive) Input(title string) (string, workout.Answer, error) {
	var value string

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Placeholder(cancelWord + " to abort").
			Value(&value),
	))

	err := form.Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", workout.AnswerCancel, nil
		}

		return "", workout.AnswerCancel, err
	}

	value = strings.TrimSpace(value)

	if strings.EqualFold(value, cancelWord) {
		return "", workout.AnswerCancel, nil
	}

	return value, workout.AnswerYes, nil
}
