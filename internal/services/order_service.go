package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dealerpos/internal/domain"
	"dealerpos/internal/domain/models"
	"dealerpos/internal/repositories"
	"dealerpos/internal/utils"

	"github.com/shopspring/decimal"
)

// DCSeries numbers delivery challans.
var DCSeries = repositories.Series{Name: "dc", Column: "dc_number"}

// AccessorySeries returns the invoice series of an accessory firm.
func AccessorySeries(firm int, prefix string, base int64) repositories.Series {
	column := "accessory_invoice_1"
	if firm == models.FirmSecondary {
		column = "accessory_invoice_2"
	}
	return repositories.Series{
		Name:   fmt.Sprintf("accessory_firm%d", firm),
		Column: column,
		Prefix: prefix,
		Floor:  base,
	}
}

type ReferenceProvider interface {
	Get(ctx context.Context) (models.ReferenceData, error)
}

type SequenceAllocator interface {
	Next(ctx context.Context, s repositories.Series) (int64, error)
}

type LedgerAppender interface {
	Append(ctx context.Context, rec models.LedgerRecord) error
}

type ChallanRenderer interface {
	RenderChallan(order *models.Order, issued time.Time) ([]byte, string, error)
}

// OrderRequest is the submitted form.
type OrderRequest struct {
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerPlace string          `json:"customer_place"`
	Staff         string          `json:"staff"`
	Model         string          `json:"model"`
	Variant       string          `json:"variant"`
	PaintColor    string          `json:"paint_color"`
	FinalCost     decimal.Decimal `json:"final_cost"`
	SaleType      domain.SaleKind `json:"sale_type"`
	Financier     string          `json:"financier"`
	Executive     string          `json:"finance_executive"`
	BankerName    string          `json:"banker_name"`
	OutFinance    bool            `json:"out_finance"`
	BookingAmount decimal.Decimal `json:"booking_amount"`
	// DownPayment overrides the required down payment when set.
	DownPayment *decimal.Decimal `json:"down_payment,omitempty"`
}

// Quote previews an order without allocating any number.
type Quote struct {
	Vehicle    models.Vehicle         `json:"vehicle"`
	FinalCost  decimal.Decimal        `json:"final_cost"`
	Discount   decimal.Decimal        `json:"discount"`
	HPFee      decimal.Decimal        `json:"hp_fee"`
	Incentive  decimal.Decimal        `json:"incentive"`
	Obligation domain.Obligation      `json:"obligation"`
	Bills      []models.AccessoryBill `json:"accessory_bills"`
}

// SubmitResult is a completed order and its printable document.
type SubmitResult struct {
	Order         *models.Order
	Record        models.LedgerRecord
	PDF           []byte
	Filename      string
	LedgerWarning string
}

// OrderService turns a submitted form into a numbered, recorded and
// printed order.
type OrderService struct {
	Reference ReferenceProvider
	Sequences SequenceAllocator
	Ledger    LedgerAppender
	Docs      ChallanRenderer

	TaxRate decimal.Decimal
	// InvoiceSeries is keyed by firm id.
	InvoiceSeries map[int]repositories.Series
	Now           func() time.Time
}

func (s OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type preparedOrder struct {
	order      *models.Order
	obligation domain.Obligation
	bills      []models.AccessoryBill
}

// Quote validates the request and computes every amount of the order.
func (s OrderService) Quote(ctx context.Context, req OrderRequest) (Quote, error) {
	p, err := s.prepare(ctx, req)
	if err != nil {
		return Quote{}, err
	}
	o := p.order
	return Quote{
		Vehicle:    o.Vehicle,
		FinalCost:  o.FinalCost,
		Discount:   o.Discount(),
		HPFee:      o.HPFee,
		Incentive:  o.Incentive,
		Obligation: p.obligation,
		Bills:      p.bills,
	}, nil
}

// Submit allocates the DC and invoice numbers, appends the ledger record
// and renders the document. A failed append is reported in
// SubmitResult.LedgerWarning and does not stop rendering.
func (s OrderService) Submit(ctx context.Context, req OrderRequest) (SubmitResult, error) {
	reqID := utils.RequestIDFrom(ctx)
	p, err := s.prepare(ctx, req)
	if err != nil {
		return SubmitResult{}, err
	}

	n, err := s.Sequences.Next(ctx, DCSeries)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("allocate dc number: %w", err)
	}
	p.order.DCNumber = domain.FormatDCNumber(n)

	bills := p.bills
	for i := range bills {
		series, ok := s.InvoiceSeries[bills[i].Firm.ID]
		if !ok {
			series = AccessorySeries(bills[i].Firm.ID, "", 0)
		}
		inv, err := s.Sequences.Next(ctx, series)
		if err != nil {
			return SubmitResult{}, fmt.Errorf("allocate invoice number for firm %d: %w", bills[i].Firm.ID, err)
		}
		bills[i].InvoiceNumber = inv
		bills[i].InvoiceLabel = domain.FormatInvoiceNumber(series.Prefix, inv)
	}
	p.order.AttachBills(bills)

	issued := s.now()
	rec, err := p.order.Export(issued)
	if err != nil {
		return SubmitResult{}, err
	}

	res := SubmitResult{Order: p.order, Record: rec}
	if err := s.Ledger.Append(ctx, rec); err != nil {
		res.LedgerWarning = "order was not recorded in the ledger"
		utils.LogWarn(reqID, "orders", "ledger_append", fmt.Sprintf("dc=%s err=%v", rec.DCNumber, err))
	}

	pdf, filename, err := s.Docs.RenderChallan(p.order, issued)
	if err != nil {
		return SubmitResult{}, domain.InternalError{Msg: "document rendering failed", Err: err}
	}
	res.PDF = pdf
	res.Filename = filename

	utils.LogEvent(reqID, "orders", "submit",
		fmt.Sprintf("dc=%s sale_type=%s bills=%d", rec.DCNumber, rec.SaleType, len(p.order.Bills)))
	return res, nil
}

func (s OrderService) prepare(ctx context.Context, req OrderRequest) (preparedOrder, error) {
	ref, err := s.Reference.Get(ctx)
	if err != nil {
		return preparedOrder{}, err
	}

	model := strings.TrimSpace(req.Model)
	variant := strings.TrimSpace(req.Variant)
	vehicle, ok := ref.FindVehicle(model, variant)
	if !ok {
		return preparedOrder{}, domain.ValidationError{Field: "variant", Msg: fmt.Sprintf("no price list entry for %s %s", model, variant)}
	}
	if colors := ref.ColorsFor(model); len(colors) > 0 && req.PaintColor != "" && !models.Contains(colors, strings.TrimSpace(req.PaintColor)) {
		return preparedOrder{}, domain.ValidationError{Field: "paint_color", Msg: "color not offered for " + model}
	}
	staff := strings.TrimSpace(req.Staff)
	if staff == "" {
		return preparedOrder{}, domain.ValidationError{Field: "staff", Msg: "staff is required"}
	}
	if len(ref.Staff) > 0 && !models.Contains(ref.Staff, staff) {
		return preparedOrder{}, domain.ValidationError{Field: "staff", Msg: "unknown staff " + staff}
	}
	if req.BookingAmount.IsNegative() {
		return preparedOrder{}, domain.ValidationError{Field: "booking_amount", Msg: "booking amount must not be negative"}
	}

	params := models.OrderParams{
		Customer: models.Customer{
			Name:  req.CustomerName,
			Phone: req.CustomerPhone,
			Place: req.CustomerPlace,
		},
		Staff:      staff,
		Vehicle:    vehicle,
		PaintColor: req.PaintColor,
		FinalCost:  req.FinalCost,
		SaleKind:   req.SaleType,
		Financier:  req.Financier,
		Executive:  req.Executive,
		BankerName: req.BankerName,
	}

	financier := strings.TrimSpace(req.Financier)
	var ob domain.Obligation
	if req.SaleType == domain.SaleFinance {
		if financier != "" && financier != domain.BankFinancier && !models.Contains(ref.Financiers, financier) {
			return preparedOrder{}, domain.ValidationError{Field: "financier", Msg: "unknown financier " + financier}
		}
		params.HPFee, params.Incentive = domain.CalculateFinanceFees(financier, req.BookingAmount, req.OutFinance, ref.IncentiveRules)
		ob = domain.ComputeObligation(req.FinalCost, params.HPFee, params.Incentive, req.BookingAmount)
		if req.BookingAmount.GreaterThan(ob.Total) {
			return preparedOrder{}, domain.ValidationError{Field: "booking_amount", Msg: "booking amount exceeds the total obligation"}
		}
	} else {
		ob = domain.CashObligation(req.FinalCost)
	}

	order, err := models.NewOrder(params)
	if err != nil {
		return preparedOrder{}, err
	}

	if order.IsFinance() {
		dp := ob.DownPayment
		if req.DownPayment != nil {
			if req.DownPayment.IsNegative() || req.DownPayment.GreaterThan(ob.DownPayment) {
				return preparedOrder{}, domain.ValidationError{
					Field: "down_payment",
					Msg:   "down payment must be between 0 and " + utils.FormatMoney(ob.DownPayment),
				}
			}
			dp = *req.DownPayment
		}
		if err := order.SetFinanceDetails(req.BookingAmount, dp); err != nil {
			return preparedOrder{}, err
		}
		ob.DownPayment = dp
		ob.PaidUpfront = req.BookingAmount.Add(dp)
		ob.Financed = order.FinancedAmount
	}

	bills := models.SplitAccessories(ref.BOM[model], ref.Firms, s.TaxRate)
	return preparedOrder{order: order, obligation: ob, bills: bills}, nil
}
