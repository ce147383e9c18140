package application

import (
	"math"
	"time"

	"github.com/valoris-se/valoris-api/internal/domain/entity"
)

// Fixed business constants; intentionally not configurable.
const (
	apartmentRateSekPerSqm = 55000
	houseRateSekPerSqm     = 38000
	estimateConfidence     = 62
)

type EstimateInput struct {
	PropertyType entity.PropertyType
	LivingArea   float64
	Rooms        int
	YearBuilt    *int
	Features     entity.Features
}

type EstimateResult struct {
	EstimateSek int64
	LowSek      int64
	HighSek     int64
	Confidence  int
}

// EstimatePrice computes the price estimate from property attributes.
// Pure and deterministic (modulo the calendar year used for the age
// adjustment); invoked at valuation creation and on every feature patch,
// always from the stored base attributes.
func EstimatePrice(in EstimateInput) EstimateResult {
	return estimateForYear(in, time.Now().Year())
}

func estimateForYear(in EstimateInput, currentYear int) EstimateResult {
	rate := float64(houseRateSekPerSqm)
	if in.PropertyType == entity.PropertyApartment {
		rate = apartmentRateSekPerSqm
	}

	roomFactor := 1.0
	if in.Rooms >= 4 {
		roomFactor = 1.05
	}

	estimate := in.LivingArea * rate * roomFactor

	// Age adjustment, linear up to 120 years, capped at -12%.
	if in.YearBuilt != nil {
		age := clamp(float64(currentYear-*in.YearBuilt), 0, 200)
		estimate *= 1 - clamp(age*0.001, 0, 0.12)
	}

	estimate *= featureMultiplier(in.PropertyType, in.Features)

	// Round once, at the end; the band is derived from the rounded value.
	rounded := math.Round(estimate)
	return EstimateResult{
		EstimateSek: int64(rounded),
		LowSek:      int64(math.Round(rounded * 0.92)),
		HighSek:     int64(math.Round(rounded * 1.08)),
		Confidence:  estimateConfidence,
	}
}

func featureMultiplier(pt entity.PropertyType, f entity.Features) float64 {
	m := 1.0
	if f.Balcony {
		m += 0.02
	}
	if f.RenovatedKitchen {
		m += 0.03
	}
	if f.RenovatedBathroom {
		m += 0.025
	}
	if f.Parking {
		m += 0.015
	}
	if f.Storage {
		m += 0.01
	}
	if f.SeaView {
		m += 0.05
	}
	if f.Fireplace {
		m += 0.01
	}
	// Elevator only matters in apartments, garden only for houses.
	if pt == entity.PropertyApartment && f.Elevator {
		m += 0.015
	}
	if pt == entity.PropertyHouse && f.Garden {
		m += 0.02
	}
	return clamp(m, 0.85, 1.25)
}

func clamp(n, min, max float64) float64 {
	return math.Max(min, math.Min(max, n))
}
