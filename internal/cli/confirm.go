package cli

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// Confirm asks a yes/no question. skip answers yes without prompting (--yes).
// An aborted prompt (ctrl+c) counts as no.
func Confirm(title, description string, skip bool) (bool, error) {
	if skip {
		return true, nil
	}

	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}
