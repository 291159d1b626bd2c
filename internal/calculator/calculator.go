// Package calculator computes aggregate statistics over a set of vehicles.
// Functions never modify their input.
package calculator

import (
	"fmt"

	"github.com/ukydev/fleet-records/internal/models"
)

// TotalPrice returns the sum of base prices. Nil entries count as 0.
func TotalPrice(vehicles []models.Vehicle) float64 {
	var sum float64
	for _, v := range vehicles {
		if v != nil {
			sum += v.Common().BasePrice
		}
	}
	return sum
}

// AveragePrice returns the mean base price, or 0 for an empty collection.
func AveragePrice(vehicles []models.Vehicle) float64 {
	if len(vehicles) == 0 {
		return 0
	}
	return TotalPrice(vehicles) / float64(len(vehicles))
}

// TotalWeight returns the sum of curb weights. Nil entries count as 0.
func TotalWeight(vehicles []models.Vehicle) float64 {
	var sum float64
	for _, v := range vehicles {
		if v != nil {
			sum += v.Common().CurbWeight
		}
	}
	return sum
}

// AverageWeight returns the mean curb weight, or 0 for an empty collection.
func AverageWeight(vehicles []models.Vehicle) float64 {
	if len(vehicles) == 0 {
		return 0
	}
	return TotalWeight(vehicles) / float64(len(vehicles))
}

// CountOfVariant counts the vehicles tagged with variant.
func CountOfVariant(vehicles []models.Vehicle, variant models.Variant) int {
	n := 0
	for _, v := range vehicles {
		if v != nil && v.Variant() == variant {
			n++
		}
	}
	return n
}

// Summary holds the aggregate statistics of a fleet.
type Summary struct {
	Total         int     `json:"total"`
	ICE           int     `json:"ice"`
	Electric      int     `json:"ev"`
	Hybrid        int     `json:"hybrid"`
	TotalPrice    float64 `json:"price_sum"`
	AveragePrice  float64 `json:"avg_price"`
	TotalWeight   float64 `json:"weight_sum"`
	AverageWeight float64 `json:"avg_weight"`
}

// Summarize computes every statistic for vehicles.
func Summarize(vehicles []models.Vehicle) Summary {
	return Summary{
		Total:         len(vehicles),
		ICE:           CountOfVariant(vehicles, models.VariantICE),
		Electric:      CountOfVariant(vehicles, models.VariantElectric),
		Hybrid:        CountOfVariant(vehicles, models.VariantHybrid),
		TotalPrice:    TotalPrice(vehicles),
		AveragePrice:  AveragePrice(vehicles),
		TotalWeight:   TotalWeight(vehicles),
		AverageWeight: AverageWeight(vehicles),
	}
}

// String renders the one-line summary shown under the vehicle table.
// Prices are rounded to integers, weights to one decimal place.
func (s Summary) String() string {
	return fmt.Sprintf(
		"Total: %d | ICE: %d | EV: %d | Hybrid: %d | Price sum: %.0f | Avg price: %.0f | Weight sum: %.1f kg | Avg weight: %.1f kg",
		s.Total, s.ICE, s.Electric, s.Hybrid,
		s.TotalPrice, s.AveragePrice,
		s.TotalWeight, s.AverageWeight,
	)
}
