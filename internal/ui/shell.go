package ui

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-records/internal/calculator"
	"github.com/ukydev/fleet-records/internal/controller"
)

// Menu entries of the interactive shell.
const (
	MenuList    = "List vehicles"
	MenuSelect  = "Select vehicle"
	MenuAdd     = "Add vehicle"
	MenuEdit    = "Edit selected"
	MenuDelete  = "Delete selected"
	MenuSummary = "Show summary"
	MenuQuit    = "Quit"
)

var menu = []string{MenuList, MenuSelect, MenuAdd, MenuEdit, MenuDelete, MenuSummary, MenuQuit}

const noneOption = "(none)"

// Shell is the interactive main window: a table of vehicles with one optional
// selected row, and a menu of actions.
type Shell struct {
	ctrl     *controller.Controller
	ui       UI
	out      io.Writer
	selected int
	changed  *calculator.Summary
}

// NewShell creates a shell. After every change the refreshed table is
// printed with the new summary below it.
func NewShell(ctrl *controller.Controller, ui UI, out io.Writer) *Shell {
	sh := &Shell{ctrl: ctrl, ui: ui, out: out, selected: controller.NoSelection}
	ctrl.OnSummary(func(s calculator.Summary) {
		sh.changed = &s
	})
	return sh
}

// Selected returns the selected row index or controller.NoSelection.
func (sh *Shell) Selected() int { return sh.selected }

// Run shows the table and loops on the menu until the user quits.
func (sh *Shell) Run() error {
	if err := sh.list(); err != nil {
		return err
	}

	for {
		choice := MenuList
		if err := sh.ui.Select("What next?", menu, &choice); err != nil {
			if errors.Is(err, ErrAborted) {
				return nil
			}
			return err
		}

		log.WithField("action", choice).Debug("Menu choice")
		if choice == MenuQuit {
			return nil
		}
		if err := sh.dispatch(choice); err != nil {
			return err
		}
	}
}

func (sh *Shell) dispatch(choice string) error {
	var err error
	switch choice {
	case MenuList:
		return sh.list()
	case MenuSelect:
		return sh.choose()
	case MenuSummary:
		return WriteSummary(sh.out, sh.ctrl.Summary())
	case MenuAdd:
		_, err = sh.ctrl.Add()
	case MenuEdit:
		_, err = sh.ctrl.Edit(sh.selected)
	case MenuDelete:
		var deleted bool
		deleted, err = sh.ctrl.Delete(sh.selected)
		if deleted {
			sh.selected = controller.NoSelection
		}
	default:
		return fmt.Errorf("unknown menu entry %q", choice)
	}

	var selErr *controller.SelectionRequiredError
	if errors.As(err, &selErr) {
		return sh.ui.Note("No vehicle selected", selErr.Error())
	}
	if err != nil {
		return err
	}
	return sh.list()
}

func (sh *Shell) list() error {
	if err := WriteTable(sh.out, TableTitle(sh.ctrl.Organization()), sh.ctrl.DisplayRows(), sh.selected); err != nil {
		return err
	}
	if sh.changed == nil {
		return nil
	}
	s := *sh.changed
	sh.changed = nil
	return WriteSummary(sh.out, s)
}

// choose asks which row to select. Picking "(none)" clears the selection.
func (sh *Shell) choose() error {
	rows := sh.ctrl.DisplayRows()
	options := make([]string, 0, len(rows)+1)
	options = append(options, noneOption)
	for i, r := range rows {
		options = append(options, rowOption(i, r))
	}

	current := noneOption
	if sh.selected >= 0 && sh.selected < len(rows) {
		current = options[sh.selected+1]
	}
	if err := sh.ui.Select("Select a vehicle", options, &current); err != nil {
		if errors.Is(err, ErrAborted) {
			return nil
		}
		return err
	}

	sh.selected = controller.NoSelection
	for i, o := range options[1:] {
		if o == current {
			sh.selected = i
			break
		}
	}
	return sh.list()
}

func rowOption(i int, r controller.DisplayRow) string {
	return strconv.Itoa(i+1) + ". " + r.Type + " " + r.Brand + " " + r.Model
}
