package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Billing entities that share a vehicle's accessory bundle.
const (
	FirmPrimary   = 1
	FirmSecondary = 2
)

// BOMSlots is the number of accessory slots per bill-of-materials row.
const BOMSlots = 10

// primarySlots is how many leading slots are billed by FirmPrimary.
const primarySlots = 4

// Firm is a billing entity from the firm master.
type Firm struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin"`
	Phone   string `json:"phone"`
}

// AccessorySlot is one name/price pair of a BOM row.
type AccessorySlot struct {
	Name  string
	Price decimal.Decimal
}

// BOMRow is a model's accessory bundle. Rows are sparse: empty slots are normal.
type BOMRow struct {
	Model string
	Slots [BOMSlots]AccessorySlot
}

// AccessoryLine is a billed accessory; quantity is always 1.
type AccessoryLine struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// AccessoryBill is one firm's share of the bundle.
type AccessoryBill struct {
	Firm          Firm            `json:"firm"`
	Lines         []AccessoryLine `json:"lines"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	InvoiceNumber int64           `json:"invoice_number"`
	InvoiceLabel  string          `json:"invoice_label"`
}

// SplitAccessories partitions row across the two firms: slots 1-4 go to
// FirmPrimary, 5-10 to FirmSecondary. Slots without a name or with a
// non-positive price are skipped. A firm whose grand total is zero gets no
// bill, so the result holds zero, one or two bills ordered by firm.
func SplitAccessories(row BOMRow, firms map[int]Firm, taxRate decimal.Decimal) []AccessoryBill {
	lines := map[int][]AccessoryLine{}
	for i, slot := range row.Slots {
		name := strings.TrimSpace(slot.Name)
		if name == "" || !slot.Price.IsPositive() {
			continue
		}
		firm := FirmSecondary
		if i < primarySlots {
			firm = FirmPrimary
		}
		lines[firm] = append(lines[firm], AccessoryLine{
			Name:      name,
			Quantity:  1,
			UnitPrice: slot.Price,
			LineTotal: slot.Price,
		})
	}

	bills := []AccessoryBill{}
	for _, id := range []int{FirmPrimary, FirmSecondary} {
		subtotal := decimal.Zero
		for _, l := range lines[id] {
			subtotal = subtotal.Add(l.LineTotal)
		}
		tax := subtotal.Mul(taxRate).Round(2)
		firm, ok := firms[id]
		if !ok {
			firm = Firm{ID: id}
		}
		bills = append(bills, AccessoryBill{
			Firm:       firm,
			Lines:      lines[id],
			Subtotal:   subtotal,
			Tax:        tax,
			GrandTotal: subtotal.Add(tax),
		})
	}
	return DropEmptyBills(bills)
}

// DropEmptyBills removes bills with a zero grand total.
func DropEmptyBills(bills []AccessoryBill) []AccessoryBill {
	out := make([]AccessoryBill, 0, len(bills))
	for _, b := range bills {
		if b.GrandTotal.IsZero() {
			continue
		}
		out = append(out, b)
	}
	return out
}

// InvoiceFor returns the invoice number billed by firm, or 0 when none.
func InvoiceFor(bills []AccessoryBill, firm int) int64 {
	for _, b := range bills {
		if b.Firm.ID == firm {
			return b.InvoiceNumber
		}
	}
	return 0
}
