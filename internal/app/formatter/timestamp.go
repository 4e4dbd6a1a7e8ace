package formatter

import (
	"strings"
	"time"

	"octav_mcp/internal/domain/entity"

	"github.com/shopspring/decimal"
)

const isoMillis = "2006-01-02T15:04:05.000Z"

// Epoch values above this are milliseconds. Second-based timestamps stay
// below it until the year 33658.
var millisecondCutoff = decimal.NewFromInt(1e12)

// FormatTimestamp renders a Unix timestamp as ISO-8601 UTC with milliseconds.
// Missing or unparseable input renders as "unknown".
func FormatTimestamp(ts entity.Amount) string {
	if ts.IsZero() {
		return unknownMarker
	}
	d, err := decimal.NewFromString(strings.TrimSpace(ts.String()))
	if err != nil {
		return unknownMarker
	}
	if d.GreaterThan(millisecondCutoff) {
		return time.UnixMilli(d.IntPart()).UTC().Format(isoMillis)
	}
	return time.UnixMilli(d.Shift(3).IntPart()).UTC().Format(isoMillis)
}
