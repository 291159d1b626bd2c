// Package factory builds the canonical vehicles used to seed an empty fleet.
package factory

import "github.com/ukydev/fleet-records/internal/models"

// CreateSeedICE returns the canonical internal-combustion seed vehicle.
func CreateSeedICE() models.ICEVehicle {
	return models.ICEVehicle{
		Base: models.Base{
			Brand:      "VW",
			Model:      "Golf",
			BasePrice:  15000,
			CurbWeight: 1200,
		},
		EngineCapacity: 1.6,
		FuelType:       "Petrol",
		EmissionClass:  "Euro 5",
	}
}

// CreateSeedElectric returns the canonical electric seed vehicle.
func CreateSeedElectric() models.ElectricVehicle {
	return models.ElectricVehicle{
		Base: models.Base{
			Brand:      "Tesla",
			Model:      "Model 3",
			BasePrice:  35000,
			CurbWeight: 1700,
		},
		MaxRangeKm:        420,
		FastChargeSupport: true,
	}
}

// SeedVehicles returns the startup seed list. The caller inserts them.
func SeedVehicles() []models.Vehicle {
	return []models.Vehicle{CreateSeedICE(), CreateSeedElectric()}
}
