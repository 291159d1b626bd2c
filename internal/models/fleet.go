package models

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a fleet position does not exist.
var ErrIndexOutOfRange = errors.New("fleet index out of range")

// IndexError reports an access to a fleet position outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d, length %d", ErrIndexOutOfRange, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// Fleet is an ordered collection of vehicles. Position is identity:
// duplicates by value are allowed.
type Fleet struct {
	name     string
	vehicles []Vehicle
}

// NewFleet creates an empty fleet.
func NewFleet(name string) *Fleet {
	return &Fleet{name: name}
}

// Name returns the fleet name.
func (f *Fleet) Name() string { return f.name }

// Len returns the number of vehicles in the fleet.
func (f *Fleet) Len() int { return len(f.vehicles) }

// Add appends a vehicle to the end of the fleet.
func (f *Fleet) Add(v Vehicle) {
	f.vehicles = append(f.vehicles, v)
}

// ReplaceAt replaces the vehicle at index.
func (f *Fleet) ReplaceAt(index int, v Vehicle) error {
	if err := f.check(index); err != nil {
		return err
	}
	f.vehicles[index] = v
	return nil
}

// RemoveAt removes the vehicle at index, shifting later vehicles down.
func (f *Fleet) RemoveAt(index int) error {
	if err := f.check(index); err != nil {
		return err
	}
	f.vehicles = append(f.vehicles[:index], f.vehicles[index+1:]...)
	return nil
}

// Items returns a snapshot of the vehicles in fleet order. The returned
// slice does not alias fleet storage.
func (f *Fleet) Items() []Vehicle {
	out := make([]Vehicle, len(f.vehicles))
	copy(out, f.vehicles)
	return out
}

func (f *Fleet) check(index int) error {
	if index < 0 || index >= len(f.vehicles) {
		return &IndexError{Index: index, Len: len(f.vehicles)}
	}
	return nil
}

// Organization owns exactly one fleet.
type Organization struct {
	Name  string
	Fleet *Fleet
}

// NewOrganization creates an organization bound to fleet.
func NewOrganization(name string, fleet *Fleet) *Organization {
	return &Organization{Name: name, Fleet: fleet}
}
