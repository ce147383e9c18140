package entity

import "time"

// ExtraPropertyType widens PropertyType with "both" for add-on services
// that apply to either kind of property.
type ExtraPropertyType string

const (
	ExtraApartment ExtraPropertyType = "apartment"
	ExtraHouse     ExtraPropertyType = "house"
	ExtraBoth      ExtraPropertyType = "both"
)

func (p ExtraPropertyType) Valid() bool {
	switch p {
	case ExtraApartment, ExtraHouse, ExtraBoth:
		return true
	}
	return false
}

// ExtraService is an optional add-on offered for one valuation. Title and
// Description are the legacy single-language (Swedish) fields kept for
// backward compatibility next to the explicit sv/en pairs.
type ExtraService struct {
	ID            string
	ValuationID   string
	Title         string
	Description   string
	TitleSv       string
	TitleEn       string
	DescriptionSv string
	DescriptionEn string
	PriceSek      int64
	PropertyType  ExtraPropertyType
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
