package entity

import "time"

type OfferItem struct {
	ID       string
	Title    string
	TitleSv  string
	TitleEn  string
	PriceSek int64
}

// Offer is the running cart of selected extras, keyed by
// (valuation, user). Invariant: TotalSek equals the sum of item prices;
// it is maintained on every append, never recomputed at read time.
type Offer struct {
	ID          string
	ValuationID string
	UserID      string
	Items       []OfferItem
	TotalSek    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
