// Package editor validates raw field input into vehicle records.
//
// A Session walks through SelectingType, EditingTypeSpecificFields and
// Validating until it ends as Accepted (a record was built) or Rejected
// (the user cancelled). Validation failures return the session to
// EditingTypeSpecificFields so the input can be corrected.
package editor

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-records/internal/models"
)

var (
	ErrSessionClosed  = errors.New("edit session is closed")
	ErrUnknownField   = errors.New("unknown field")
	ErrUnknownVariant = errors.New("unknown vehicle variant")
)

// ValidationError reports input that cannot be turned into a vehicle.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: invalid value %q: %s", e.Field, e.Value, e.Reason)
}

// State is the position of a session in the edit workflow.
type State int

const (
	SelectingType State = iota
	EditingTypeSpecificFields
	Validating
	Accepted
	Rejected
)

func (s State) String() string {
	switch s {
	case SelectingType:
		return "selecting_type"
	case EditingTypeSpecificFields:
		return "editing_type_specific_fields"
	case Validating:
		return "validating"
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == Accepted || s == Rejected
}

// fastChargeTokens are the case-insensitive inputs read as "yes".
var fastChargeTokens = map[string]bool{
	"1":    true,
	"true": true,
	"yes":  true,
	"y":    true,
	"да":   true,
}

// Session is a single in-progress create or edit of a vehicle.
type Session struct {
	id      uuid.UUID
	variant models.Variant
	values  map[string]string
	state   State
	result  models.Vehicle
	logger  *log.Entry
}

// NewSession opens a session. With a nil initial vehicle the session starts
// as a blank ICE record; otherwise every field is pre-populated from initial.
func NewSession(initial models.Vehicle) *Session {
	variant := models.VariantICE
	if initial != nil {
		variant = initial.Variant()
	}

	id := uuid.New()
	s := &Session{
		id:      id,
		variant: variant,
		values:  map[string]string{},
		state:   SelectingType,
		logger: log.WithFields(log.Fields{
			"session_id": id.String(),
			"editing":    initial != nil,
		}),
	}
	for _, f := range RenderFieldsFor(variant, initial) {
		s.values[f.Key] = f.Value
	}
	s.enter(EditingTypeSpecificFields)
	return s
}

// ID returns the session identifier used in log entries.
func (s *Session) ID() string { return s.id.String() }

// State returns the current workflow state.
func (s *Session) State() State { return s.state }

// Variant returns the currently selected variant.
func (s *Session) Variant() models.Variant { return s.variant }

// Fields lists the fields for the selected variant with their current values.
func (s *Session) Fields() []Field {
	return render(s.variant, s.values)
}

// Value returns the raw value entered for key.
func (s *Session) Value(key string) string { return s.values[key] }

// SelectVariant switches the record type. Type specific values are
// discarded; brand, model, price and weight are kept. Selecting the current
// variant again changes nothing.
func (s *Session) SelectVariant(v models.Variant) error {
	if err := s.open(); err != nil {
		return err
	}
	if !models.IsValidVariant(v) {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, v)
	}
	if v == s.variant {
		return nil
	}

	s.enter(SelectingType)
	for _, f := range specificFields[s.variant] {
		delete(s.values, f.Key)
	}
	s.variant = v
	for _, f := range specificFields[v] {
		s.values[f.Key] = ""
	}
	s.enter(EditingTypeSpecificFields)
	return nil
}

// Set stores the raw value for a field of the selected variant.
func (s *Session) Set(key, value string) error {
	if err := s.open(); err != nil {
		return err
	}
	if !isCommonKey(key) && !isSpecificKey(s.variant, key) {
		return fmt.Errorf("%w %q for variant %s", ErrUnknownField, key, s.variant)
	}
	s.values[key] = value
	return nil
}

// Submit validates the entered values. On success the session is Accepted
// and the built vehicle is returned. On a *ValidationError the session stays
// open for correction.
func (s *Session) Submit() (models.Vehicle, error) {
	if err := s.open(); err != nil {
		return nil, err
	}

	s.enter(Validating)
	v, err := s.build()
	if err != nil {
		s.logger.WithError(err).Debug("Vehicle input rejected")
		s.enter(EditingTypeSpecificFields)
		return nil, err
	}

	s.result = v
	s.enter(Accepted)
	return v, nil
}

// Cancel ends the session without producing a record.
func (s *Session) Cancel() error {
	if err := s.open(); err != nil {
		return err
	}
	s.enter(Rejected)
	return nil
}

// Result returns the accepted vehicle, if any.
func (s *Session) Result() (models.Vehicle, bool) {
	return s.result, s.state == Accepted
}

func (s *Session) open() error {
	if s.state.Terminal() {
		return fmt.Errorf("%w (%s)", ErrSessionClosed, s.state)
	}
	return nil
}

func (s *Session) enter(next State) {
	s.logger.WithFields(log.Fields{
		"from":    s.state.String(),
		"to":      next.String(),
		"variant": s.variant,
	}).Debug("Edit session transition")
	s.state = next
}

func (s *Session) build() (models.Vehicle, error) {
	brand := strings.TrimSpace(s.values[KeyBrand])
	model := strings.TrimSpace(s.values[KeyModel])
	if brand == "" || model == "" {
		return nil, &ValidationError{Field: "brand/model", Reason: "brand and model are required"}
	}

	price, err := s.number(KeyBasePrice)
	if err != nil {
		return nil, err
	}
	weight, err := s.number(KeyCurbWeight)
	if err != nil {
		return nil, err
	}
	base := models.Base{Brand: brand, Model: model, BasePrice: price, CurbWeight: weight}

	switch s.variant {
	case models.VariantICE:
		capacity, err := s.number(KeyEngineCapacity)
		if err != nil {
			return nil, err
		}
		return models.ICEVehicle{
			Base:           base,
			EngineCapacity: capacity,
			FuelType:       strings.TrimSpace(s.values[KeyFuelType]),
			EmissionClass:  strings.TrimSpace(s.values[KeyEmissionClass]),
		}, nil
	case models.VariantElectric:
		rangeKm, err := s.number(KeyMaxRangeKm)
		if err != nil {
			return nil, err
		}
		// float64(math.MaxInt) rounds up to a value int cannot hold.
		if rangeKm >= math.MaxInt || rangeKm < math.MinInt {
			return nil, &ValidationError{
				Field:  KeyMaxRangeKm,
				Value:  strings.TrimSpace(s.values[KeyMaxRangeKm]),
				Reason: "out of range",
			}
		}
		return models.ElectricVehicle{
			Base:              base,
			MaxRangeKm:        int(rangeKm),
			FastChargeSupport: parseYes(s.values[KeyFastCharge]),
		}, nil
	case models.VariantHybrid:
		capacity, err := s.number(KeyEngineCapacity)
		if err != nil {
			return nil, err
		}
		battery, err := s.number(KeyBatteryCapacity)
		if err != nil {
			return nil, err
		}
		return models.HybridVehicle{
			Base:            base,
			EngineCapacity:  capacity,
			BatteryCapacity: battery,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, s.variant)
}

// number parses a numeric field. Blank input reads as 0. Only plain
// decimal notation is accepted, so hex floats like 0x1p4 are rejected.
func (s *Session) number(key string) (float64, error) {
	raw := strings.TrimSpace(s.values[key])
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || isHex(raw) || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ValidationError{Field: key, Value: raw, Reason: "not a number"}
	}
	return f, nil
}

func isHex(raw string) bool {
	digits := strings.TrimLeft(raw, "+-")
	return strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X")
}

func parseYes(raw string) bool {
	return fastChargeTokens[strings.ToLower(strings.TrimSpace(raw))]
}
