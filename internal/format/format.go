// Package format holds the display rules shared by every table in the
// console: fixed decimals, grouped thousands, dates and status labels.
package format

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"transport-console/internal/contracts"
)

const notAvailable = "N/A"

// Fixed renders v with exactly places decimals ("25.00", "0.050").
func Fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Grouped renders v with thousands separators and at most three decimals
// ("8,500", "1,234.5").
func Grouped(v float64) string {
	return humanize.Commaf(decimal.NewFromFloat(v).Round(3).InexactFloat64())
}

// Date renders t as M/D/YYYY, or N/A when t is nil.
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return notAvailable
	}
	return t.Local().Format("1/2/2006")
}

// StatusLabel capitalises the first letter ("in-transit" -> "In-transit").
func StatusLabel(s contracts.Status) string {
	if s == "" {
		return ""
	}
	v := string(s)
	return strings.ToUpper(v[:1]) + v[1:]
}

// Quantity renders a quantity without trailing zeros.
func Quantity(v float64) string {
	return decimal.NewFromFloat(v).String()
}
