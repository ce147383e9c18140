package application

import (
	"testing"

	"github.com/valoris-se/valoris-api/internal/domain/entity"
)

func intp(v int) *int { return &v }

func TestEstimateForYear(t *testing.T) {
	const year = 2025

	tests := []struct {
		name string
		in   EstimateInput
		want EstimateResult
	}{
		{
			name: "apartment base rate",
			in: EstimateInput{
				PropertyType: entity.PropertyApartment,
				LivingArea:   50,
				Rooms:        2,
			},
			want: EstimateResult{EstimateSek: 2750000, LowSek: 2530000, HighSek: 2970000, Confidence: 62},
		},
		{
			name: "apartment with balcony",
			in: EstimateInput{
				PropertyType: entity.PropertyApartment,
				LivingArea:   50,
				Rooms:        2,
				Features:     entity.Features{Balcony: true},
			},
			want: EstimateResult{EstimateSek: 2805000, LowSek: 2580600, HighSek: 3029400, Confidence: 62},
		},
		{
			name: "house with rooms bonus, age and garden",
			in: EstimateInput{
				PropertyType: entity.PropertyHouse,
				LivingArea:   120,
				Rooms:        4,
				YearBuilt:    intp(1995),
				Features:     entity.Features{Garden: true},
			},
			// 120*38000*1.05 = 4788000, *0.97 (30y) = 4644360, *1.02 = 4737247.2
			want: EstimateResult{EstimateSek: 4737247, LowSek: 4358267, HighSek: 5116227, Confidence: 62},
		},
		{
			name: "age discount capped at 12 percent",
			in: EstimateInput{
				PropertyType: entity.PropertyApartment,
				LivingArea:   100,
				Rooms:        1,
				YearBuilt:    intp(1800),
			},
			// age clamps to 200 years but the discount stops at 0.12
			want: EstimateResult{EstimateSek: 4840000, LowSek: 4452800, HighSek: 5227200, Confidence: 62},
		},
		{
			name: "future build year treated as new",
			in: EstimateInput{
				PropertyType: entity.PropertyApartment,
				LivingArea:   100,
				Rooms:        1,
				YearBuilt:    intp(2030),
			},
			want: EstimateResult{EstimateSek: 5500000, LowSek: 5060000, HighSek: 5940000, Confidence: 62},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := estimateForYear(tt.in, year)
			if got != tt.want {
				t.Errorf("estimateForYear() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEstimateFeatureScoping(t *testing.T) {
	const year = 2025

	// Elevator counts only for apartments.
	apt := EstimateInput{PropertyType: entity.PropertyApartment, LivingArea: 50, Rooms: 1}
	aptElev := apt
	aptElev.Features = entity.Features{Elevator: true}
	if estimateForYear(aptElev, year).EstimateSek <= estimateForYear(apt, year).EstimateSek {
		t.Error("elevator should raise an apartment estimate")
	}

	house := EstimateInput{PropertyType: entity.PropertyHouse, LivingArea: 50, Rooms: 1}
	houseElev := house
	houseElev.Features = entity.Features{Elevator: true}
	if estimateForYear(houseElev, year) != estimateForYear(house, year) {
		t.Error("elevator should not affect a house estimate")
	}

	// Garden counts only for houses.
	aptGarden := apt
	aptGarden.Features = entity.Features{Garden: true}
	if estimateForYear(aptGarden, year) != estimateForYear(apt, year) {
		t.Error("garden should not affect an apartment estimate")
	}
}

func TestEstimateDeterministic(t *testing.T) {
	in := EstimateInput{
		PropertyType: entity.PropertyHouse,
		LivingArea:   87.5,
		Rooms:        5,
		YearBuilt:    intp(1972),
		Features:     entity.Features{RenovatedKitchen: true, Fireplace: true},
	}
	a := estimateForYear(in, 2025)
	b := estimateForYear(in, 2025)
	if a != b {
		t.Errorf("same input gave different results: %+v vs %+v", a, b)
	}
}

func TestFeatureMultiplierClamped(t *testing.T) {
	all := entity.Features{
		Balcony: true, RenovatedKitchen: true, RenovatedBathroom: true,
		Parking: true, Elevator: true, Storage: true,
		Garden: true, SeaView: true, Fireplace: true,
	}
	m := featureMultiplier(entity.PropertyApartment, all)
	if m > 1.25 || m < 0.85 {
		t.Errorf("multiplier %v outside [0.85, 1.25]", m)
	}
}
