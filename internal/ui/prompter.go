package ui

import (
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-records/internal/editor"
	"github.com/ukydev/fleet-records/internal/models"
)

// FormPrompter implements controller.Prompter on top of a UI.
type FormPrompter struct {
	ui UI
}

// NewFormPrompter creates a prompter that asks its questions through ui.
func NewFormPrompter(ui UI) *FormPrompter {
	return &FormPrompter{ui: ui}
}

func variantOptions() []string {
	vs := models.Variants()
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

// EditVehicle asks for the vehicle type and every field until the session
// validates. Validation problems are shown and the form is asked again with
// the values already entered. Aborting any prompt cancels the session.
func (p *FormPrompter) EditVehicle(s *editor.Session) error {
	for {
		variant := string(s.Variant())
		if err := p.ui.Select("Vehicle type", variantOptions(), &variant); err != nil {
			return p.abort(s, err)
		}
		if err := s.SelectVariant(models.Variant(variant)); err != nil {
			return err
		}

		for _, f := range s.Fields() {
			value := f.Value
			if err := p.ui.Input(f.Label, &value); err != nil {
				return p.abort(s, err)
			}
			if err := s.Set(f.Key, value); err != nil {
				return err
			}
		}

		_, err := s.Submit()
		if err == nil {
			return nil
		}
		var verr *editor.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		log.WithFields(log.Fields{"session_id": s.ID(), "field": verr.Field}).Debug("Asking for corrected input")
		if err := p.ui.Note("Invalid input", verr.Error()); err != nil {
			return p.abort(s, err)
		}
	}
}

// Confirm asks a yes/no question. Aborting counts as "no".
func (p *FormPrompter) Confirm(title string) (bool, error) {
	var ok bool
	err := p.ui.Confirm(title, &ok)
	if errors.Is(err, ErrAborted) {
		return false, nil
	}
	return ok, err
}

func (p *FormPrompter) abort(s *editor.Session, err error) error {
	if errors.Is(err, ErrAborted) {
		return s.Cancel()
	}
	return err
}
