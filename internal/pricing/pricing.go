// Package pricing derives the display price from an order's free-text name.
package pricing

import "regexp"

// NotAvailable is returned when a name carries no price token.
const NotAvailable = "N/A"

var priceToken = regexp.MustCompile(`\$(\d+)`)

// FromName returns the digit run of the first "$<digits>" token in name,
// or NotAvailable when no such token exists. The value is recomputed on
// every read and never stored, so edits to the name can't leave it stale.
func FromName(name string) string {
	match := priceToken.FindStringSubmatch(name)
	if match == nil {
		return NotAvailable
	}
	return match[1]
}
