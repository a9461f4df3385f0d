package models

import (
	"strings"
	"time"

	"dealerpos/internal/domain"

	"github.com/shopspring/decimal"
)

// Customer identifies the buyer on the challan.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Place string `json:"place"`
}

// OrderParams is everything known when the form is submitted.
type OrderParams struct {
	DCNumber   string
	Customer   Customer
	Staff      string
	Vehicle    Vehicle
	PaintColor string
	FinalCost  decimal.Decimal
	SaleKind   domain.SaleKind
	Financier  string
	Executive  string
	BankerName string
	HPFee      decimal.Decimal
	Incentive  decimal.Decimal
}

// Order is one dealership transaction. It is built once per submission;
// finance details may be set exactly once afterwards, before export.
type Order struct {
	DCNumber   string          `json:"dc_number"`
	Customer   Customer        `json:"customer"`
	Staff      string          `json:"staff"`
	Vehicle    Vehicle         `json:"vehicle"`
	PaintColor string          `json:"paint_color"`
	FinalCost  decimal.Decimal `json:"final_cost"`
	SaleKind   domain.SaleKind `json:"sale_type"`
	Financier  string          `json:"financier"`
	Executive  string          `json:"finance_executive"`
	BankerName string          `json:"banker_name"`
	HPFee      decimal.Decimal `json:"hp_fee"`
	Incentive  decimal.Decimal `json:"incentive"`

	BookingAmount  decimal.Decimal `json:"booking_amount"`
	DownPayment    decimal.Decimal `json:"down_payment"`
	FinancedAmount decimal.Decimal `json:"financed_amount"`

	Bills []AccessoryBill `json:"accessory_bills"`

	financeSet bool
}

// NewOrder validates params and builds the aggregate. Cash orders never
// carry fees, incentive or financier details.
func NewOrder(p OrderParams) (*Order, error) {
	p.Customer.Name = strings.TrimSpace(p.Customer.Name)
	p.Customer.Phone = strings.TrimSpace(p.Customer.Phone)
	p.Customer.Place = strings.TrimSpace(p.Customer.Place)
	p.Financier = strings.TrimSpace(p.Financier)
	p.Executive = strings.TrimSpace(p.Executive)
	p.BankerName = strings.TrimSpace(p.BankerName)

	switch {
	case p.Customer.Name == "":
		return nil, domain.ValidationError{Field: "customer_name", Msg: "customer name is required"}
	case p.Customer.Phone == "":
		return nil, domain.ValidationError{Field: "customer_phone", Msg: "phone number is required"}
	case !p.SaleKind.Valid():
		return nil, domain.ValidationError{Field: "sale_type", Msg: "sale type must be Cash or Finance"}
	case p.FinalCost.IsNegative():
		return nil, domain.ValidationError{Field: "final_cost", Msg: "final cost must not be negative"}
	}

	o := &Order{
		DCNumber:       p.DCNumber,
		Customer:       p.Customer,
		Staff:          strings.TrimSpace(p.Staff),
		Vehicle:        p.Vehicle,
		PaintColor:     strings.TrimSpace(p.PaintColor),
		FinalCost:      p.FinalCost,
		SaleKind:       p.SaleKind,
		HPFee:          decimal.Zero,
		Incentive:      decimal.Zero,
		BookingAmount:  decimal.Zero,
		DownPayment:    decimal.Zero,
		FinancedAmount: decimal.Zero,
	}
	if p.SaleKind == domain.SaleCash {
		return o, nil
	}

	if p.Financier == "" {
		return nil, domain.ValidationError{Field: "financier", Msg: "financier is required for finance sales"}
	}
	if p.Financier == domain.BankFinancier && p.BankerName == "" {
		return nil, domain.ValidationError{Field: "banker_name", Msg: "banker name is required for bank quotations"}
	}
	if p.HPFee.IsNegative() || p.Incentive.IsNegative() {
		return nil, domain.ValidationError{Field: "hp_fee", Msg: "fees must not be negative"}
	}
	o.Financier = p.Financier
	o.Executive = p.Executive
	if p.Financier == domain.BankFinancier {
		o.BankerName = p.BankerName
	}
	o.HPFee = p.HPFee
	o.Incentive = p.Incentive
	return o, nil
}

// IsFinance reports whether the order was created as a finance sale.
func (o *Order) IsFinance() bool {
	return o.SaleKind == domain.SaleFinance
}

// Discount is listed price minus final cost; negative means a markup.
func (o *Order) Discount() decimal.Decimal {
	return o.Vehicle.TotalPrice.Sub(o.FinalCost)
}

// TotalObligation is final cost plus fee and incentive.
func (o *Order) TotalObligation() decimal.Decimal {
	return o.FinalCost.Add(o.HPFee).Add(o.Incentive)
}

// SetFinanceDetails records the booking amount and down payment. It is
// only valid on finance orders and only once. The financed amount is
// clamped at zero.
func (o *Order) SetFinanceDetails(booking, downPayment decimal.Decimal) error {
	if !o.IsFinance() {
		return domain.ValidationError{Field: "sale_type", Msg: "finance details apply to finance sales only"}
	}
	if o.financeSet {
		return domain.ConflictError{Resource: "order", Msg: "finance details already set"}
	}
	if booking.IsNegative() || downPayment.IsNegative() {
		return domain.ValidationError{Field: "booking_amount", Msg: "amounts must not be negative"}
	}
	o.BookingAmount = booking
	o.DownPayment = downPayment
	o.FinancedAmount = domain.ClampZero(o.TotalObligation().Sub(booking).Sub(downPayment))
	o.financeSet = true
	return nil
}

// FinanceDetailsSet reports whether SetFinanceDetails has run.
func (o *Order) FinanceDetailsSet() bool {
	return o.financeSet
}

// AttachBills stores the accessory bills, dropping zero-total ones.
func (o *Order) AttachBills(bills []AccessoryBill) {
	o.Bills = DropEmptyBills(bills)
}

// Ready guards export and render against half-built finance orders.
func (o *Order) Ready() error {
	if o.IsFinance() && !o.financeSet {
		return domain.ValidationError{Field: "finance", Msg: "finance details must be set before export"}
	}
	return nil
}

// Export flattens the order into the fixed ledger record.
func (o *Order) Export(ts time.Time) (LedgerRecord, error) {
	if err := o.Ready(); err != nil {
		return LedgerRecord{}, err
	}
	return LedgerRecord{
		Timestamp:         ts,
		DCNumber:          o.DCNumber,
		Staff:             o.Staff,
		Financier:         o.Financier,
		FinanceExecutive:  o.Executive,
		BankerName:        o.BankerName,
		SaleType:          string(o.SaleKind),
		CustomerName:      o.Customer.Name,
		CustomerPhone:     o.Customer.Phone,
		CustomerPlace:     o.Customer.Place,
		Model:             o.Vehicle.Model,
		Variant:           o.Vehicle.Variant,
		PaintColor:        o.PaintColor,
		OnRoadPrice:       o.Vehicle.OnRoadPrice,
		ListedTotal:       o.Vehicle.TotalPrice,
		FinalCost:         o.FinalCost,
		Discount:          o.Discount(),
		HPFee:             o.HPFee,
		Incentive:         o.Incentive,
		BookingAmount:     o.BookingAmount,
		DownPayment:       o.DownPayment,
		FinancedAmount:    o.FinancedAmount,
		AccessoryInvoice1: InvoiceFor(o.Bills, FirmPrimary),
		AccessoryInvoice2: InvoiceFor(o.Bills, FirmSecondary),
	}, nil
}
