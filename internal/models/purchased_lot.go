package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, matching what browser clients send.
	decimal.MarshalJSONWithoutQuotes = true
}

// PurchasedLot is a single holding bought by a user: a quantity of one
// catalog stock at a cost basis, with an optional alert target.
type PurchasedLot struct {
	Base
	UserID           string           `gorm:"type:uuid;not null;index" json:"userId"`
	StockID          int              `gorm:"not null" json:"stockId"`
	Symbol           string           `gorm:"not null" json:"symbol"`
	Name             string           `gorm:"not null" json:"name"`
	PurchasePrice    decimal.Decimal  `gorm:"type:numeric(18,4);not null" json:"purchasePrice"`
	Quantity         decimal.Decimal  `gorm:"type:numeric(18,4);not null" json:"quantity"`
	CurrentPrice     decimal.Decimal  `gorm:"type:numeric(18,4);not null" json:"currentPrice"`
	TargetPrice      *decimal.Decimal `gorm:"type:numeric(18,4)" json:"targetPrice"`
	PurchaseDate     time.Time        `gorm:"not null" json:"purchaseDate"`
	NotificationSent bool             `gorm:"not null;default:false" json:"notificationSent"`
}

// Invested returns purchase price times quantity.
func (l *PurchasedLot) Invested() decimal.Decimal {
	return l.PurchasePrice.Mul(l.Quantity)
}

// MarketValue returns current price times quantity.
func (l *PurchasedLot) MarketValue() decimal.Decimal {
	return l.CurrentPrice.Mul(l.Quantity)
}

// ProfitLoss returns the unrealized gain (positive) or loss (negative).
func (l *PurchasedLot) ProfitLoss() decimal.Decimal {
	return l.MarketValue().Sub(l.Invested())
}
