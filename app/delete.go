package app

import (
	"github.com/charmbracelet/huh"
)

// confirmDelete asks for approval before something is deleted permanently.
// It returns true straight away if skip is set.
func confirmDelete(title string, skip bool) (bool, error) {
	if skip {
		return true, nil
	}

	var ok bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description("This cannot be undone.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&ok),
		),
	)

	err := form.Run()
	if err != nil {
		return false, err
	}

	return ok, nil
}
