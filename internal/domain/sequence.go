package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSequence extracts the numeric part of an issued number. The prefix,
// when present, is stripped first. ok is false for anything non-numeric.
func ParseSequence(value, prefix string) (n int64, ok bool) {
	v := strings.TrimSpace(value)
	if prefix != "" {
		v = strings.TrimPrefix(v, prefix)
	}
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NextSequence returns max(floor, max(parsed values)) + 1. Values that do
// not parse are ignored.
func NextSequence(values []string, prefix string, floor int64) int64 {
	highest := floor
	for _, v := range values {
		n, ok := ParseSequence(v, prefix)
		if ok && n > highest {
			highest = n
		}
	}
	return highest + 1
}

// FormatDCNumber renders a delivery challan number, e.g. 8 -> "00008".
func FormatDCNumber(n int64) string {
	return fmt.Sprintf("%05d", n)
}

// FormatInvoiceNumber renders an accessory invoice number with its firm prefix.
func FormatInvoiceNumber(prefix string, n int64) string {
	return prefix + fmt.Sprintf("%05d", n)
}
