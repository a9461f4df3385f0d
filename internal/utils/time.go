package utils

import (
	"time"
)

const (
	layoutDate     = "02-01-2006"
	layoutDateTime = "02-01-2006 15:04"
)

// FormatDate formats t as DD-MM-YYYY in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// FormatDateTime formats t as "DD-MM-YYYY HH:MM" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}
