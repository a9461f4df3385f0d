package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculateFinanceFees(t *testing.T) {
	rules := map[string]IncentiveRule{
		"Shriram": {Kind: IncentivePercentageDD, Value: d("0.02")},
		"HDFC":    {Kind: IncentiveFixedFile, Value: d("1500")},
		"Odd":     {Kind: "per_moon", Value: d("99")},
	}

	tests := []struct {
		name          string
		financier     string
		booking       string
		outFinance    bool
		wantFee       string
		wantIncentive string
	}{
		{"out finance beats bank", "Bank", "100000", true, "2000", "0"},
		{"out finance beats rule", "Shriram", "100000", true, "2000", "0"},
		{"bank quotation", "Bank", "100000", false, "500", "0"},
		{"bank quotation zero booking", "Bank", "0", false, "500", "0"},
		{"percentage of booking", "Shriram", "50000", false, "2000", "1000"},
		{"fixed per file", "HDFC", "50000", false, "2000", "1500"},
		{"unknown financier", "Nobody", "50000", false, "2000", "0"},
		{"unknown rule kind", "Odd", "50000", false, "2000", "0"},
		{"bank match is exact", "bank", "50000", false, "2000", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, inc := CalculateFinanceFees(tt.financier, d(tt.booking), tt.outFinance, rules)
			if !fee.Equal(d(tt.wantFee)) {
				t.Fatalf("fee = %s, want %s", fee, tt.wantFee)
			}
			if !inc.Equal(d(tt.wantIncentive)) {
				t.Fatalf("incentive = %s, want %s", inc, tt.wantIncentive)
			}
		})
	}
}

func TestCalculateFinanceFeesNilRules(t *testing.T) {
	fee, inc := CalculateFinanceFees("Shriram", d("1000"), false, nil)
	if !fee.Equal(DefaultHPFee) || !inc.IsZero() {
		t.Fatalf("got fee=%s incentive=%s", fee, inc)
	}
}

func TestComputeObligationBankScenario(t *testing.T) {
	fee, inc := CalculateFinanceFees("Bank", d("100000"), false, nil)
	ob := ComputeObligation(d("500000"), fee, inc, d("100000"))

	if !ob.Total.Equal(d("500500")) {
		t.Fatalf("total = %s", ob.Total)
	}
	if !ob.DownPayment.Equal(d("400500")) {
		t.Fatalf("down payment = %s", ob.DownPayment)
	}
	if !ob.PaidUpfront.Equal(d("500500")) {
		t.Fatalf("paid upfront = %s", ob.PaidUpfront)
	}
	if !ob.Financed.IsZero() {
		t.Fatalf("financed = %s", ob.Financed)
	}
}

func TestComputeObligationBookingExceedsTotal(t *testing.T) {
	ob := ComputeObligation(d("100000"), d("2000"), d("0"), d("150000"))
	if !ob.DownPayment.IsZero() {
		t.Fatalf("down payment = %s, want 0", ob.DownPayment)
	}
	if !ob.Financed.IsZero() {
		t.Fatalf("financed = %s, want 0", ob.Financed)
	}
}

func TestComputeObligationProperties(t *testing.T) {
	costs := []string{"0", "1", "99999.99", "500000", "1250000.50"}
	bookings := []string{"0", "1", "50000", "500500", "2000000"}
	for _, c := range costs {
		for _, b := range bookings {
			fee, inc := CalculateFinanceFees("Shriram", d(b), false, map[string]IncentiveRule{
				"Shriram": {Kind: IncentivePercentageDD, Value: d("0.015")},
			})
			ob := ComputeObligation(d(c), fee, inc, d(b))
			want := ClampZero(ob.Total.Sub(d(b)))
			if !ob.DownPayment.Equal(want) {
				t.Fatalf("cost=%s booking=%s: down payment %s, want %s", c, b, ob.DownPayment, want)
			}
			if d(b).Add(ob.DownPayment).GreaterThanOrEqual(ob.Total) && !ob.Financed.IsZero() {
				t.Fatalf("cost=%s booking=%s: financed %s, want 0", c, b, ob.Financed)
			}
			if ob.Financed.IsNegative() || ob.DownPayment.IsNegative() {
				t.Fatalf("negative amounts for cost=%s booking=%s", c, b)
			}
		}
	}
}

func TestCashObligation(t *testing.T) {
	ob := CashObligation(d("500000"))
	if !ob.Total.Equal(d("500000")) || !ob.DownPayment.IsZero() || !ob.Financed.IsZero() {
		t.Fatalf("unexpected cash obligation %+v", ob)
	}
}
