package formatter

import (
	"fmt"
	"strings"

	"octav_mcp/internal/domain/entity"
)

// PageRange returns the 1-based inclusive range a page covers and the offset
// of the next page. ok is false when the page is empty; next is 0 when
// nothing follows.
func PageRange(offset, limit, total int) (first, last, next int, ok bool) {
	first = offset + 1
	last = min(offset+limit, total)
	if limit > 0 && offset+limit < total {
		next = offset + limit
	}
	return first, last, next, first <= last
}

// Transactions renders a page of transaction history with pagination hints.
func Transactions(resp *entity.TransactionsResponse) Output {
	lines := []string{"# Transaction History", ""}
	lines = append(lines, fmt.Sprintf("**Total Transactions:** %d", resp.Total))

	first, last, next, ok := PageRange(resp.Offset, resp.Limit, resp.Total)
	if ok {
		lines = append(lines, fmt.Sprintf("**Showing:** %d-%d of %d", first, last, resp.Total), "")
	} else {
		lines = append(lines, fmt.Sprintf("**Showing:** 0 of %d", resp.Total), "")
	}

	if len(resp.Transactions) == 0 {
		lines = append(lines, "_No transactions available._", "")
	} else {
		lines = append(lines, "## Transactions", "")
	}
	for i, tx := range resp.Transactions {
		lines = append(lines,
			fmt.Sprintf("### %d. %s on %s", resp.Offset+i+1, firstNonEmpty(tx.Type, "Transaction"), firstNonEmpty(tx.Chain, unknownMarker)),
			"- **Hash:** `"+tx.Hash+"`",
			"- **Date:** "+FormatTimestamp(tx.Timestamp),
			"- **From:** `"+tx.From+"`",
			"- **To:** `"+tx.To+"`",
			"- **Value:** "+displayBalance(tx.Value.String()),
			"- **Status:** "+firstNonEmpty(tx.Status, unknownMarker),
		)
		if !tx.GasUsed.IsZero() {
			lines = append(lines, "- **Gas Used:** "+tx.GasUsed.String())
		}
		lines = append(lines, "")
	}

	if next > 0 {
		lines = append(lines, fmt.Sprintf("*To view more transactions, set offset to %d*", next))
	}
	return Output{Markdown: strings.TrimRight(strings.Join(lines, "\n"), "\n"), JSON: resp}
}

// Sync renders the acknowledgement of a sync request.
func Sync(resp *entity.SyncResponse, addresses []string) Output {
	mark := "✗"
	if strings.EqualFold(resp.Status, "success") {
		mark = "✓"
	}
	lines := []string{
		"# Transaction Sync " + mark,
		"",
		"**Addresses:** " + quoteAll(firstNonEmptySlice(resp.Address, addresses)),
		"**Status:** " + firstNonEmpty(resp.Status, unknownMarker),
	}
	if resp.Message != "" {
		lines = append(lines, "**Message:** "+resp.Message)
	}
	return Output{Markdown: strings.Join(lines, "\n"), JSON: resp}
}

func quoteAll(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, "`"+v+"`")
	}
	return strings.Join(quoted, ", ")
}

func firstNonEmptySlice(single string, fallback []string) []string {
	if single != "" {
		return []string{single}
	}
	return fallback
}
