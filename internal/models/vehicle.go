package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Variant identifies which specialised field set a vehicle carries.
type Variant string

const (
	VariantICE      Variant = "ICE"
	VariantElectric Variant = "EV"
	VariantHybrid   Variant = "Hybrid"
)

// Variants returns the closed set of vehicle variants in display order.
func Variants() []Variant {
	return []Variant{VariantICE, VariantElectric, VariantHybrid}
}

// IsValidVariant checks if a variant is one of the known variants
func IsValidVariant(v Variant) bool {
	switch v {
	case VariantICE, VariantElectric, VariantHybrid:
		return true
	default:
		return false
	}
}

// ParseVariant resolves a user supplied variant name, ignoring case.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ice":
		return VariantICE, nil
	case "ev", "electric":
		return VariantElectric, nil
	case "hybrid":
		return VariantHybrid, nil
	}
	return "", fmt.Errorf("unknown vehicle variant %q", s)
}

// Base holds the fields shared by every vehicle.
type Base struct {
	Brand      string  `json:"brand"`
	Model      string  `json:"model"`
	BasePrice  float64 `json:"base_price"`
	CurbWeight float64 `json:"curb_weight"` // in kilograms
}

// Vehicle is a fleet vehicle. The set of implementations is closed:
// ICEVehicle, ElectricVehicle and HybridVehicle.
type Vehicle interface {
	Variant() Variant
	Common() Base
	isVehicle()
}

// ICEVehicle represents an internal-combustion vehicle.
type ICEVehicle struct {
	Base
	EngineCapacity float64 `json:"engine_capacity"` // in liters
	FuelType       string  `json:"fuel_type"`
	EmissionClass  string  `json:"emission_class"`
}

// ElectricVehicle represents a battery electric vehicle.
type ElectricVehicle struct {
	Base
	MaxRangeKm        int  `json:"max_range_km"`
	FastChargeSupport bool `json:"fast_charge_support"`
}

// HybridVehicle represents a hybrid vehicle.
type HybridVehicle struct {
	Base
	EngineCapacity  float64 `json:"engine_capacity"`  // in liters
	BatteryCapacity float64 `json:"battery_capacity"` // in kWh
}

func (ICEVehicle) Variant() Variant      { return VariantICE }
func (ElectricVehicle) Variant() Variant { return VariantElectric }
func (HybridVehicle) Variant() Variant   { return VariantHybrid }

func (v ICEVehicle) Common() Base      { return v.Base }
func (v ElectricVehicle) Common() Base { return v.Base }
func (v HybridVehicle) Common() Base   { return v.Base }

func (ICEVehicle) isVehicle()      {}
func (ElectricVehicle) isVehicle() {}
func (HybridVehicle) isVehicle()   {}

// TypeLabel returns the short type name shown in listings.
func TypeLabel(v Vehicle) string {
	if v == nil {
		return ""
	}
	return string(v.Variant())
}

// Describe returns the comma separated summary of the variant specific fields.
// Empty text fields are left out.
func Describe(v Vehicle) string {
	var parts []string
	switch c := v.(type) {
	case ICEVehicle:
		parts = []string{FormatNumber(c.EngineCapacity) + " L", c.FuelType, c.EmissionClass}
	case ElectricVehicle:
		charge := "No Fast"
		if c.FastChargeSupport {
			charge = "FastCharge"
		}
		parts = []string{strconv.Itoa(c.MaxRangeKm) + " km", charge}
	case HybridVehicle:
		parts = []string{
			"ICE " + FormatNumber(c.EngineCapacity) + " L",
			"Bat " + FormatNumber(c.BatteryCapacity) + " kWh",
		}
	default:
		return ""
	}

	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// FormatNumber renders a float in its shortest exact decimal form.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
