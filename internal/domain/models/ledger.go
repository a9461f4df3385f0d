package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerColumns is the fixed column order of the sales ledger.
var LedgerColumns = []string{
	"timestamp", "dc_number", "staff", "financier", "finance_executive",
	"banker_name", "sale_type", "customer_name", "customer_phone",
	"customer_place", "model", "variant", "paint_color", "orp",
	"listed_total", "final_cost", "discount", "hp_fee", "incentive",
	"booking_amount", "down_payment", "financed_amount",
	"accessory_invoice_1", "accessory_invoice_2",
}

// LedgerRecord is one appended ledger row.
type LedgerRecord struct {
	Timestamp         time.Time       `json:"timestamp"`
	DCNumber          string          `json:"dc_number"`
	Staff             string          `json:"staff"`
	Financier         string          `json:"financier"`
	FinanceExecutive  string          `json:"finance_executive"`
	BankerName        string          `json:"banker_name"`
	SaleType          string          `json:"sale_type"`
	CustomerName      string          `json:"customer_name"`
	CustomerPhone     string          `json:"customer_phone"`
	CustomerPlace     string          `json:"customer_place"`
	Model             string          `json:"model"`
	Variant           string          `json:"variant"`
	PaintColor        string          `json:"paint_color"`
	OnRoadPrice       decimal.Decimal `json:"orp"`
	ListedTotal       decimal.Decimal `json:"listed_total"`
	FinalCost         decimal.Decimal `json:"final_cost"`
	Discount          decimal.Decimal `json:"discount"`
	HPFee             decimal.Decimal `json:"hp_fee"`
	Incentive         decimal.Decimal `json:"incentive"`
	BookingAmount     decimal.Decimal `json:"booking_amount"`
	DownPayment       decimal.Decimal `json:"down_payment"`
	FinancedAmount    decimal.Decimal `json:"financed_amount"`
	AccessoryInvoice1 int64           `json:"accessory_invoice_1"`
	AccessoryInvoice2 int64           `json:"accessory_invoice_2"`
}

// Values returns the record in LedgerColumns order.
func (r LedgerRecord) Values() []any {
	return []any{
		r.Timestamp, r.DCNumber, r.Staff, r.Financier, r.FinanceExecutive,
		r.BankerName, r.SaleType, r.CustomerName, r.CustomerPhone,
		r.CustomerPlace, r.Model, r.Variant, r.PaintColor, r.OnRoadPrice,
		r.ListedTotal, r.FinalCost, r.Discount, r.HPFee, r.Incentive,
		r.BookingAmount, r.DownPayment, r.FinancedAmount,
		r.AccessoryInvoice1, r.AccessoryInvoice2,
	}
}

// Pointers returns scan destinations in LedgerColumns order.
func (r *LedgerRecord) Pointers() []any {
	return []any{
		&r.Timestamp, &r.DCNumber, &r.Staff, &r.Financier, &r.FinanceExecutive,
		&r.BankerName, &r.SaleType, &r.CustomerName, &r.CustomerPhone,
		&r.CustomerPlace, &r.Model, &r.Variant, &r.PaintColor, &r.OnRoadPrice,
		&r.ListedTotal, &r.FinalCost, &r.Discount, &r.HPFee, &r.Incentive,
		&r.BookingAmount, &r.DownPayment, &r.FinancedAmount,
		&r.AccessoryInvoice1, &r.AccessoryInvoice2,
	}
}
