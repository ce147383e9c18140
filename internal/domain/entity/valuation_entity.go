package entity

import "time"

type PropertyType string

const (
	PropertyApartment PropertyType = "apartment"
	PropertyHouse     PropertyType = "house"
)

func (p PropertyType) Valid() bool {
	return p == PropertyApartment || p == PropertyHouse
}

type ValuationStatus string

const (
	ValuationDraft ValuationStatus = "draft"
	ValuationDone  ValuationStatus = "done"
)

// Features is the fixed set of nine boolean property attributes that
// affect the estimate. Unknown keys submitted by clients are dropped at
// the binding boundary, so this struct is the whole universe.
type Features struct {
	Balcony           bool `json:"balcony"`
	RenovatedKitchen  bool `json:"renovatedKitchen"`
	RenovatedBathroom bool `json:"renovatedBathroom"`
	Parking           bool `json:"parking"`
	Elevator          bool `json:"elevator"`
	Storage           bool `json:"storage"`
	Garden            bool `json:"garden"`
	SeaView           bool `json:"seaView"`
	Fireplace         bool `json:"fireplace"`
}

// Valuation belongs exclusively to its creating user. The derived fields
// (estimate, low, high, confidence) are recomputed from the stored base
// attributes whenever the feature set changes.
type Valuation struct {
	ID           string
	UserID       string
	Address      string
	City         string
	PropertyType PropertyType
	LivingArea   float64
	Rooms        int
	YearBuilt    *int
	Features     Features
	EstimateSek  int64
	LowSek       int64
	HighSek      int64
	Confidence   int
	Status       ValuationStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
