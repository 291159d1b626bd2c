// Package controller applies add, edit and delete operations to a fleet and
// keeps the fleet summary current.
package controller

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-records/internal/calculator"
	"github.com/ukydev/fleet-records/internal/editor"
	"github.com/ukydev/fleet-records/internal/models"
)

// NoSelection is the index passed when no vehicle is selected.
const NoSelection = -1

// SelectionRequiredError is returned by Edit and Delete without a selection.
type SelectionRequiredError struct {
	Action string
}

func (e *SelectionRequiredError) Error() string {
	return fmt.Sprintf("nothing selected: select a vehicle to %s", e.Action)
}

// Prompter is the presentation side of the controller. EditVehicle blocks
// until the session is Accepted or Rejected; Confirm asks a yes/no question.
type Prompter interface {
	EditVehicle(session *editor.Session) error
	Confirm(title string) (bool, error)
}

// DisplayRow is one line of the vehicle table.
type DisplayRow struct {
	Type       string  `json:"type"`
	Brand      string  `json:"brand"`
	Model      string  `json:"model"`
	BasePrice  float64 `json:"base_price"`
	CurbWeight float64 `json:"curb_weight"`
	Extra      string  `json:"extra"`
}

// DeleteConfirmation is the question asked before a vehicle is removed.
const DeleteConfirmation = "Delete the selected vehicle?"

// Controller orchestrates CRUD against the organization's fleet.
type Controller struct {
	org       *models.Organization
	prompter  Prompter
	summary   calculator.Summary
	listeners []func(calculator.Summary)
}

// New creates a controller for org and computes the initial summary.
func New(org *models.Organization, prompter Prompter) *Controller {
	c := &Controller{org: org, prompter: prompter}
	c.summary = calculator.Summarize(org.Fleet.Items())
	return c
}

// Organization returns the organization the controller manages.
func (c *Controller) Organization() *models.Organization { return c.org }

// OnSummary registers fn to be called with the new summary after every
// successful mutation.
func (c *Controller) OnSummary(fn func(calculator.Summary)) {
	c.listeners = append(c.listeners, fn)
}

// Add opens a blank edit session and appends the accepted vehicle.
// It reports whether the fleet changed.
func (c *Controller) Add() (bool, error) {
	v, ok, err := c.runSession(nil)
	if err != nil || !ok {
		return false, err
	}

	c.org.Fleet.Add(v)
	log.WithFields(log.Fields{
		"action":  "add",
		"index":   c.org.Fleet.Len() - 1,
		"variant": v.Variant(),
		"brand":   v.Common().Brand,
		"model":   v.Common().Model,
	}).Info("Vehicle added")
	c.recompute()
	return true, nil
}

// Edit opens a session pre-populated from the vehicle at index and replaces
// it with the accepted record.
func (c *Controller) Edit(index int) (bool, error) {
	current, err := c.selected("edit", index)
	if err != nil {
		return false, err
	}

	v, ok, err := c.runSession(current)
	if err != nil || !ok {
		return false, err
	}

	if err := c.org.Fleet.ReplaceAt(index, v); err != nil {
		return false, err
	}
	log.WithFields(log.Fields{
		"action":  "edit",
		"index":   index,
		"variant": v.Variant(),
		"brand":   v.Common().Brand,
		"model":   v.Common().Model,
	}).Info("Vehicle updated")
	c.recompute()
	return true, nil
}

// Delete removes the vehicle at index after the user confirms.
func (c *Controller) Delete(index int) (bool, error) {
	if _, err := c.selected("delete", index); err != nil {
		return false, err
	}

	confirmed, err := c.prompter.Confirm(DeleteConfirmation)
	if err != nil {
		return false, fmt.Errorf("confirm delete: %w", err)
	}
	if !confirmed {
		log.WithField("index", index).Debug("Delete declined")
		return false, nil
	}

	if err := c.org.Fleet.RemoveAt(index); err != nil {
		return false, err
	}
	log.WithFields(log.Fields{"action": "delete", "index": index}).Info("Vehicle deleted")
	c.recompute()
	return true, nil
}

// DisplayRows returns the table rows for the current fleet contents.
func (c *Controller) DisplayRows() []DisplayRow {
	items := c.org.Fleet.Items()
	rows := make([]DisplayRow, 0, len(items))
	for _, v := range items {
		if v == nil {
			rows = append(rows, DisplayRow{})
			continue
		}
		b := v.Common()
		rows = append(rows, DisplayRow{
			Type:       models.TypeLabel(v),
			Brand:      b.Brand,
			Model:      b.Model,
			BasePrice:  b.BasePrice,
			CurbWeight: b.CurbWeight,
			Extra:      models.Describe(v),
		})
	}
	return rows
}

// Summary returns the summary computed after the last mutation.
func (c *Controller) Summary() calculator.Summary { return c.summary }

// SummaryText returns the formatted summary line.
func (c *Controller) SummaryText() string { return c.summary.String() }

func (c *Controller) selected(action string, index int) (models.Vehicle, error) {
	if index < 0 {
		return nil, &SelectionRequiredError{Action: action}
	}
	items := c.org.Fleet.Items()
	if index >= len(items) {
		return nil, &models.IndexError{Index: index, Len: len(items)}
	}
	return items[index], nil
}

// runSession drives one edit session through the prompter. A prompter that
// returns without closing the session counts as a rejection.
func (c *Controller) runSession(initial models.Vehicle) (models.Vehicle, bool, error) {
	session := editor.NewSession(initial)
	if err := c.prompter.EditVehicle(session); err != nil {
		_ = session.Cancel()
		return nil, false, fmt.Errorf("edit vehicle: %w", err)
	}
	if !session.State().Terminal() {
		_ = session.Cancel()
	}

	v, ok := session.Result()
	if !ok {
		log.WithField("session_id", session.ID()).Debug("Edit session rejected")
	}
	return v, ok, nil
}

func (c *Controller) recompute() {
	c.summary = calculator.Summarize(c.org.Fleet.Items())
	for _, fn := range c.listeners {
		fn(c.summary)
	}
}
