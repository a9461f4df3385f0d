package domain

import "github.com/shopspring/decimal"

// Hypothecation fees charged on financed sales.
var (
	DefaultHPFee     = decimal.NewFromInt(2000)
	BankQuotationFee = decimal.NewFromInt(500)
)

// BankFinancier is the financier name used for plain bank quotations.
const BankFinancier = "Bank"

// IncentiveKind tells how a financier pays the dealership.
type IncentiveKind string

const (
	IncentivePercentageDD IncentiveKind = "percentage_dd"
	IncentiveFixedFile    IncentiveKind = "fixed_file"
)

// IncentiveRule is keyed by financier name in the reference data.
type IncentiveRule struct {
	Kind  IncentiveKind   `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

// Incentive returns what the rule earns for the given booking amount.
// Unknown kinds earn nothing.
func (r IncentiveRule) Incentive(booking decimal.Decimal) decimal.Decimal {
	switch r.Kind {
	case IncentivePercentageDD:
		return booking.Mul(r.Value)
	case IncentiveFixedFile:
		return r.Value
	default:
		return decimal.Zero
	}
}

// CalculateFinanceFees returns the hypothecation fee and incentive for a
// financed sale. The first matching branch wins: out finance, then bank
// quotation, then the financier's incentive rule (none means zero).
func CalculateFinanceFees(financier string, booking decimal.Decimal, outFinance bool, rules map[string]IncentiveRule) (fee, incentive decimal.Decimal) {
	if outFinance {
		return DefaultHPFee, decimal.Zero
	}
	if financier == BankFinancier {
		return BankQuotationFee, decimal.Zero
	}
	rule, ok := rules[financier]
	if !ok {
		return DefaultHPFee, decimal.Zero
	}
	return DefaultHPFee, rule.Incentive(booking)
}

// Obligation is what the customer owes and how it is covered.
type Obligation struct {
	Total       decimal.Decimal `json:"total_obligation"`
	DownPayment decimal.Decimal `json:"required_down_payment"`
	PaidUpfront decimal.Decimal `json:"total_paid_upfront"`
	Financed    decimal.Decimal `json:"financed_amount"`
}

// ComputeObligation applies the same arithmetic to every finance branch.
func ComputeObligation(finalCost, fee, incentive, booking decimal.Decimal) Obligation {
	total := finalCost.Add(fee).Add(incentive)
	down := ClampZero(total.Sub(booking))
	paid := booking.Add(down)
	return Obligation{
		Total:       total,
		DownPayment: down,
		PaidUpfront: paid,
		Financed:    ClampZero(total.Sub(paid)),
	}
}

// CashObligation is a cash sale: no fees, no down payment, nothing financed.
func CashObligation(finalCost decimal.Decimal) Obligation {
	return Obligation{
		Total:       finalCost,
		DownPayment: decimal.Zero,
		PaidUpfront: finalCost,
		Financed:    decimal.Zero,
	}
}

// ClampZero returns v, or zero when v is negative.
func ClampZero(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
