// Package formatter turns Octav API responses into the markdown and JSON
// blocks a tool returns. Every function here is pure.
package formatter

// Output is the dual rendering of one response.
type Output struct {
	Markdown string
	JSON     any
}

const (
	// DustThreshold is the value at or below which a wallet asset is folded
	// into the "other tokens" line instead of being listed.
	DustThreshold = 1

	// LowCreditsThreshold triggers the purchase hint on the credits report.
	LowCreditsThreshold = 10

	PurchaseURL = "https://octav.fi"

	unknownMarker = "unknown"
)
