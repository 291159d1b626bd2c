// Package ui is the terminal front end of the fleet tool. It draws prompts
// with charmbracelet/huh and forwards every decision to the controller.
package ui

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/ukydev/fleet-records/internal/terminal"
)

var (
	// ErrAborted is returned when the user leaves a prompt with Esc or Ctrl+C.
	ErrAborted = errors.New("prompt aborted")
	// ErrNotInteractive is returned when prompts are needed without a terminal.
	ErrNotInteractive = errors.New("interactive mode requires a terminal")
)

// UI defines the interaction methods.
type UI interface {
	Select(title string, options []string, current *string) error
	Input(title string, value *string) error
	Confirm(title string, value *bool) error
	Note(title string, body string) error
}

// HuhUI implements UI using charmbracelet/huh.
type HuhUI struct {
	isTerminal func() bool
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhUI creates a HuhUI that checks terminal.IsInteractive before
// every prompt.
func NewHuhUI() *HuhUI {
	return &HuhUI{isTerminal: terminal.IsInteractive}
}

func (ui *HuhUI) runForm(form *huh.Form) error {
	checker := ui.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if !checker() {
		return ErrNotInteractive
	}

	form.WithOutput(os.Stderr)
	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

// Select renders a single-choice prompt.
func (ui *HuhUI) Select(title string, options []string, current *string) error {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, o)
	}

	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(opts...).
				Value(current),
		),
	))
}

// Input renders a plain text input prompt.
func (ui *HuhUI) Input(title string, value *string) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(value),
		),
	))
}

// Confirm renders a yes/no prompt.
func (ui *HuhUI) Confirm(title string, value *bool) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(value),
		),
	))
}

// Note renders an informational note screen.
func (ui *HuhUI) Note(title string, body string) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(title).
				Description(body),
		),
	))
}
