package services

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"dealerpos/internal/domain/models"
	"dealerpos/internal/utils"

	"github.com/phpdave11/gofpdf"
)

const (
	pageMargin = 12.0
	rowHeight  = 7.0
)

// DocsService renders the delivery challan and the accessory invoices.
type DocsService struct {
	// Dealer is printed at the top of the challan; empty prints nothing.
	Dealer string
}

// RenderChallan returns the PDF bytes and a download file name. Page 1 is
// the challan; each accessory bill adds a landscape page holding an
// original and a duplicate copy.
func (s DocsService) RenderChallan(o *models.Order, issued time.Time) ([]byte, string, error) {
	pdf, err := s.build(o, issued)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("DC_%s_%s.pdf", o.DCNumber, utils.SafeFilenamePart(o.Customer.Name))
	return buf.Bytes(), filename, nil
}

func (s DocsService) build(o *models.Order, issued time.Time) (*gofpdf.Fpdf, error) {
	if o == nil {
		return nil, errors.New("order is required")
	}
	if err := o.Ready(); err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Delivery Challan "+o.DCNumber, false)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)

	s.drawChallan(pdf, o, issued)
	for _, b := range models.DropEmptyBills(o.Bills) {
		drawBillSpread(pdf, o, b, issued)
	}
	if err := pdf.Error(); err != nil {
		return nil, err
	}
	return pdf, nil
}

func (s DocsService) drawChallan(pdf *gofpdf.Fpdf, o *models.Order, issued time.Time) {
	pdf.AddPage()

	if s.Dealer != "" {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, s.Dealer, "", 1, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "DELIVERY CHALLAN", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(95, rowHeight, "DC No: "+o.DCNumber, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, rowHeight, "Date: "+utils.FormatDate(issued), "", 1, "R", false, 0, "")
	pdf.Ln(3)

	section(pdf, "Customer")
	labelRow(pdf, "Name", o.Customer.Name)
	labelRow(pdf, "Phone", o.Customer.Phone)
	labelRow(pdf, "Place", utils.Safe(o.Customer.Place, "-"))
	labelRow(pdf, "Sales Executive", utils.Safe(o.Staff, "-"))

	section(pdf, "Vehicle")
	labelRow(pdf, "Model", o.Vehicle.Model)
	labelRow(pdf, "Variant", o.Vehicle.Variant)
	labelRow(pdf, "Colour", utils.Safe(o.PaintColor, "-"))

	section(pdf, "Pricing")
	amountRow(pdf, "On-road price", utils.FormatRupees(o.Vehicle.OnRoadPrice))
	amountRow(pdf, "Tax & charges", utils.FormatRupees(o.Vehicle.Tax))
	amountRow(pdf, "Listed total", utils.FormatRupees(o.Vehicle.TotalPrice))
	if d := o.Discount(); d.IsNegative() {
		amountRow(pdf, "Markup", utils.FormatRupees(d.Neg()))
	} else {
		amountRow(pdf, "Discount", utils.FormatRupees(d))
	}
	pdf.SetFont("Helvetica", "B", 11)
	amountRow(pdf, "Final cost", utils.FormatRupees(o.FinalCost))
	pdf.SetFont("Helvetica", "", 11)

	section(pdf, "Payment")
	if !o.IsFinance() {
		labelRow(pdf, "Mode", "Cash")
		amountRow(pdf, "Amount payable", utils.FormatRupees(o.FinalCost))
	} else {
		labelRow(pdf, "Mode", "Finance")
		labelRow(pdf, "Financier", o.Financier)
		labelRow(pdf, "Finance executive", utils.Safe(o.Executive, "-"))
		if o.BankerName != "" {
			labelRow(pdf, "Banker", o.BankerName)
		}
		amountRow(pdf, "Hypothecation fee", utils.FormatRupees(o.HPFee))
		if o.Incentive.IsPositive() {
			amountRow(pdf, "Incentive", utils.FormatRupees(o.Incentive))
		}
		amountRow(pdf, "Total obligation", utils.FormatRupees(o.TotalObligation()))
		amountRow(pdf, "Booking / DD amount", utils.FormatRupees(o.BookingAmount))
		amountRow(pdf, "Down payment", utils.FormatRupees(o.DownPayment))
		amountRow(pdf, "Financed amount", utils.FormatRupees(o.FinancedAmount))
	}

	if bills := models.DropEmptyBills(o.Bills); len(bills) > 0 {
		section(pdf, "Accessories")
		for _, b := range bills {
			amountRow(pdf, fmt.Sprintf("%s (%s)", utils.Safe(b.Firm.Name, fmt.Sprintf("Firm %d", b.Firm.ID)), b.InvoiceLabel),
				utils.FormatRupees(b.GrandTotal))
		}
	}

	// signature lines sit at the foot of the page
	pageW, pageH := pdf.GetPageSize()
	y := pageH - 40
	pdf.Line(pageMargin, y, pageMargin+60, y)
	pdf.Line(pageW-pageMargin-60, y, pageW-pageMargin, y)
	pdf.SetXY(pageMargin, y+1)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(60, 6, "Customer Signature", "", 0, "C", false, 0, "")
	pdf.SetX(pageW - pageMargin - 60)
	pdf.CellFormat(60, 6, "Authorised Signatory", "", 1, "C", false, 0, "")
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(0, rowHeight, title, "", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func labelRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(55, rowHeight-1, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, rowHeight-1, ": "+value, "", 1, "L", false, 0, "")
}

func amountRow(pdf *gofpdf.Fpdf, label, amount string) {
	pdf.CellFormat(120, rowHeight-1, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, rowHeight-1, amount, "", 1, "R", false, 0, "")
}

// drawBillSpread lays two identical copies of b side by side on an A4
// landscape page with a dashed cut line between them.
func drawBillSpread(pdf *gofpdf.Fpdf, o *models.Order, b models.AccessoryBill, issued time.Time) {
	pdf.AddPageFormat("L", pdf.GetPageSizeStr("A4"))
	pageW, pageH := pdf.GetPageSize()
	half := pageW / 2

	for i, copyLabel := range []string{"ORIGINAL", "DUPLICATE"} {
		drawInvoiceCopy(pdf, float64(i)*half+pageMargin, half-2*pageMargin, copyLabel, o, b, issued)
	}

	pdf.SetDashPattern([]float64{2, 2}, 0)
	pdf.Line(half, pageMargin/2, half, pageH-pageMargin/2)
	pdf.SetDashPattern([]float64{}, 0)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.SetXY(half-10, pageH-pageMargin/2)
	pdf.CellFormat(20, 4, "cut here", "", 0, "C", false, 0, "")
}

func drawInvoiceCopy(pdf *gofpdf.Fpdf, x, w float64, copyLabel string, o *models.Order, b models.AccessoryBill, issued time.Time) {
	y := pageMargin
	line := func(h float64, style string, size float64, text, align string) {
		pdf.SetFont("Helvetica", style, size)
		pdf.SetXY(x, y)
		pdf.CellFormat(w, h, text, "", 0, align, false, 0, "")
		y += h
	}

	line(5, "I", 8, copyLabel, "R")
	line(7, "B", 13, utils.Safe(b.Firm.Name, fmt.Sprintf("Firm %d", b.Firm.ID)), "C")
	if b.Firm.Address != "" {
		line(5, "", 9, b.Firm.Address, "C")
	}
	if b.Firm.GSTIN != "" {
		line(5, "", 9, "GSTIN: "+b.Firm.GSTIN, "C")
	}
	if b.Firm.Phone != "" {
		line(5, "", 9, "Phone: "+b.Firm.Phone, "C")
	}
	y += 2
	line(7, "B", 12, "ACCESSORY INVOICE", "C")
	line(6, "", 10, "Invoice No: "+b.InvoiceLabel, "L")
	line(6, "", 10, "Date: "+utils.FormatDate(issued)+"    DC No: "+o.DCNumber, "L")
	line(6, "", 10, "Customer: "+o.Customer.Name+" ("+o.Customer.Phone+")", "L")
	line(6, "", 10, "Vehicle: "+o.Vehicle.Model+" "+o.Vehicle.Variant, "L")
	y += 2

	cols := []float64{10, w - 10 - 15 - 28 - 28, 15, 28, 28}
	headers := []string{"#", "Item", "Qty", "Rate", "Amount"}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(x, y)
	for i, h := range headers {
		pdf.CellFormat(cols[i], 6, h, "1", 0, "C", false, 0, "")
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for n, l := range b.Lines {
		pdf.SetXY(x, y)
		pdf.CellFormat(cols[0], 6, fmt.Sprintf("%d", n+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(cols[1], 6, l.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(cols[2], 6, fmt.Sprintf("%d", l.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(cols[3], 6, utils.FormatMoney(l.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[4], 6, utils.FormatMoney(l.LineTotal), "1", 0, "R", false, 0, "")
		y += 6
	}

	labelW := w - cols[4]
	totals := []struct {
		label string
		value string
		bold  bool
	}{
		{"Subtotal", utils.FormatMoney(b.Subtotal), false},
		{"Tax", utils.FormatMoney(b.Tax), false},
		{"Grand Total", utils.FormatRupees(b.GrandTotal), true},
	}
	for _, t := range totals {
		style := ""
		if t.bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.SetXY(x, y)
		pdf.CellFormat(labelW, 6, t.label, "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[4], 6, t.value, "1", 0, "R", false, 0, "")
		y += 6
	}

	y += 16
	pdf.Line(x+w-50, y, x+w, y)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(x+w-50, y+1)
	pdf.CellFormat(50, 4, "Authorised Signatory", "", 0, "C", false, 0, "")
}
