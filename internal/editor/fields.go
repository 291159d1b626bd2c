package editor

import (
	"strconv"

	"github.com/ukydev/fleet-records/internal/models"
)

// Field keys accepted by Session.Set.
const (
	KeyBrand      = "brand"
	KeyModel      = "model"
	KeyBasePrice  = "base_price"
	KeyCurbWeight = "curb_weight"

	KeyEngineCapacity  = "engine_capacity"
	KeyFuelType        = "fuel_type"
	KeyEmissionClass   = "emission_class"
	KeyMaxRangeKm      = "max_range_km"
	KeyFastCharge      = "fast_charge"
	KeyBatteryCapacity = "battery_capacity"
)

// Field describes one labelled input the presentation layer should draw.
type Field struct {
	Label string `json:"label"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

var commonFields = []Field{
	{Label: "Brand", Key: KeyBrand},
	{Label: "Model", Key: KeyModel},
	{Label: "Price", Key: KeyBasePrice},
	{Label: "Curb weight (kg)", Key: KeyCurbWeight},
}

var specificFields = map[models.Variant][]Field{
	models.VariantICE: {
		{Label: "Engine capacity (L)", Key: KeyEngineCapacity},
		{Label: "Fuel type", Key: KeyFuelType},
		{Label: "Emission class", Key: KeyEmissionClass},
	},
	models.VariantElectric: {
		{Label: "Max range (km)", Key: KeyMaxRangeKm},
		{Label: "Fast charge (0/1)", Key: KeyFastCharge},
	},
	models.VariantHybrid: {
		{Label: "Engine capacity (L)", Key: KeyEngineCapacity},
		{Label: "Battery capacity (kWh)", Key: KeyBatteryCapacity},
	},
}

// RenderFieldsFor lists the fields shown for variant, common fields first.
// Common values come from prefill; variant specific values only when
// prefill is of the same variant. prefill may be nil.
func RenderFieldsFor(variant models.Variant, prefill models.Vehicle) []Field {
	values := map[string]string{}
	if prefill != nil {
		putCommon(values, prefill.Common())
		if prefill.Variant() == variant {
			putSpecific(values, prefill)
		}
	}
	return render(variant, values)
}

func render(variant models.Variant, values map[string]string) []Field {
	specific := specificFields[variant]
	out := make([]Field, 0, len(commonFields)+len(specific))
	for _, f := range commonFields {
		f.Value = values[f.Key]
		out = append(out, f)
	}
	for _, f := range specific {
		f.Value = values[f.Key]
		out = append(out, f)
	}
	return out
}

func putCommon(values map[string]string, b models.Base) {
	values[KeyBrand] = b.Brand
	values[KeyModel] = b.Model
	values[KeyBasePrice] = prefillNumber(b.BasePrice)
	values[KeyCurbWeight] = prefillNumber(b.CurbWeight)
}

func putSpecific(values map[string]string, v models.Vehicle) {
	switch c := v.(type) {
	case models.ICEVehicle:
		values[KeyEngineCapacity] = prefillNumber(c.EngineCapacity)
		values[KeyFuelType] = c.FuelType
		values[KeyEmissionClass] = c.EmissionClass
	case models.ElectricVehicle:
		if c.MaxRangeKm != 0 {
			values[KeyMaxRangeKm] = strconv.Itoa(c.MaxRangeKm)
		}
		values[KeyFastCharge] = "0"
		if c.FastChargeSupport {
			values[KeyFastCharge] = "1"
		}
	case models.HybridVehicle:
		values[KeyEngineCapacity] = prefillNumber(c.EngineCapacity)
		values[KeyBatteryCapacity] = prefillNumber(c.BatteryCapacity)
	}
}

// prefillNumber leaves zero values blank so an untouched field reads as empty.
func prefillNumber(f float64) string {
	if f == 0 {
		return ""
	}
	return models.FormatNumber(f)
}

func isSpecificKey(variant models.Variant, key string) bool {
	for _, f := range specificFields[variant] {
		if f.Key == key {
			return true
		}
	}
	return false
}

func isCommonKey(key string) bool {
	for _, f := range commonFields {
		if f.Key == key {
			return true
		}
	}
	return false
}
