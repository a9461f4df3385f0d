package models

import "github.com/shopspring/decimal"

// Vehicle is one price-list row. TotalPrice = OnRoadPrice + Tax.
type Vehicle struct {
	Model       string          `json:"model"`
	Variant     string          `json:"variant"`
	OnRoadPrice decimal.Decimal `json:"orp"`
	Tax         decimal.Decimal `json:"tax"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// NewVehicle derives the tax component from the listed final price.
func NewVehicle(model, variant string, orp, final decimal.Decimal) Vehicle {
	return Vehicle{
		Model:       model,
		Variant:     variant,
		OnRoadPrice: orp,
		Tax:         final.Sub(orp),
		TotalPrice:  final,
	}
}
