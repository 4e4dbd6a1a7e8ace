package formatter

import (
	"fmt"
	"sort"
	"strings"

	"octav_mcp/internal/domain/entity"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// NAV renders the net asset value. fallbackCurrency is used when the
// response does not name its currency.
func NAV(resp *entity.NAVResponse, fallbackCurrency string) Output {
	currency := strings.ToUpper(firstNonEmpty(resp.Currency, fallbackCurrency, "USD"))
	lines := []string{
		"# Net Asset Value",
		"",
		"**NAV:** " + FormatMoney(decimal.NewFromFloat(resp.NAV), currency),
		"**Currency:** " + currency,
	}
	return Output{Markdown: strings.Join(lines, "\n"), JSON: resp}
}

// TokenOverview renders the token distribution, largest first.
func TokenOverview(resp *entity.TokenOverviewResponse) Output {
	tokens := make([]entity.TokenOverview, len(resp.Tokens))
	copy(tokens, resp.Tokens)
	sort.SliceStable(tokens, func(i, j int) bool {
		return ParseAmount(tokens[i].Value).GreaterThan(ParseAmount(tokens[j].Value))
	})

	total := ParseAmount(resp.TotalValue)
	if resp.TotalValue.IsZero() {
		for _, t := range tokens {
			total = total.Add(ParseAmount(t.Value))
		}
	}

	lines := []string{"# Token Distribution", "", "**Total Value:** " + FormatUSD(total), ""}
	if len(tokens) == 0 {
		lines = append(lines, "_No tokens available._")
		return Output{Markdown: strings.Join(lines, "\n"), JSON: resp}
	}

	lines = append(lines, "## Token Breakdown", "")
	for i, t := range tokens {
		value := ParseAmount(t.Value)
		share := ParseAmount(t.Percentage)
		if t.Percentage.IsZero() && total.IsPositive() {
			share = value.Div(total).Mul(decimal.NewFromInt(100))
		}
		lines = append(lines,
			fmt.Sprintf("%d. **%s**: %s (%s%%)", i+1, t.Symbol, FormatUSD(value), share.StringFixed(2)),
			"   - Balance: "+displayBalance(t.Balance.String()),
		)
		if len(t.Chains) > 0 {
			lines = append(lines, "   - Chains: "+strings.Join(t.Chains, ", "))
		}
		lines = append(lines, "")
	}
	return Output{Markdown: strings.TrimRight(strings.Join(lines, "\n"), "\n"), JSON: resp}
}

// Status renders per-address and per-chain sync state.
func Status(entries []entity.StatusEntry) Output {
	lines := []string{"# Sync Status", ""}
	if len(entries) == 0 {
		lines = append(lines, "_No status information available._")
		return Output{Markdown: strings.Join(lines, "\n"), JSON: entries}
	}

	for _, e := range entries {
		overall := "⏳ Syncing"
		if e.Synced {
			overall = "✓ Synced"
		}
		lines = append(lines,
			"## `"+e.Address+"`",
			"",
			"**Overall Sync:** "+overall,
			"**Last Sync:** "+FormatTimestamp(e.LastSync),
			"",
		)
		if e.Chains.Len() == 0 {
			lines = append(lines, "_No chain status available._", "")
			continue
		}
		e.Chains.Each(func(chain string, st entity.ChainSyncStatus) {
			mark := "⏳"
			if st.Synced {
				mark = "✓"
			}
			block := ""
			if st.LastBlock != nil {
				block = fmt.Sprintf(" (block %d)", *st.LastBlock)
			}
			lines = append(lines, fmt.Sprintf("- **%s**: %s%s", chain, mark, block))
		})
		lines = append(lines, "")
	}
	return Output{Markdown: strings.TrimRight(strings.Join(lines, "\n"), "\n"), JSON: entries}
}

// Credits renders the credit balance, with a purchase hint when it runs low.
func Credits(credits entity.Credits) Output {
	lines := []string{
		"# API Credits",
		"",
		"**Remaining:** " + humanize.Commaf(float64(credits)) + " credits",
	}
	if float64(credits) < LowCreditsThreshold {
		lines = append(lines, "", "⚠️ **Low credit balance!** Consider purchasing more credits at "+PurchaseURL)
	}
	return Output{
		Markdown: strings.Join(lines, "\n"),
		JSON:     map[string]any{"credits": float64(credits)},
	}
}

// SubscribeSnapshot renders the acknowledgement of a snapshot subscription.
func SubscribeSnapshot(resp *entity.SubscribeSnapshotResponse, subscriptions []entity.SnapshotSubscription) Output {
	mark, state := "✗", "Inactive"
	if resp.Subscribed {
		mark, state = "✓", "Active"
	}
	lines := []string{
		"# Snapshot Subscription " + mark,
		"",
		"**Status:** " + state,
	}
	if resp.Message != "" {
		lines = append(lines, "**Message:** "+resp.Message)
	}
	lines = append(lines, "", "## Addresses", "")
	for _, s := range subscriptions {
		line := "- `" + s.Address + "`"
		if s.Description != "" {
			line += ": " + s.Description
		}
		lines = append(lines, line)
	}
	if len(subscriptions) == 0 {
		lines = append(lines, "_No addresses subscribed._")
	}
	if resp.Subscribed {
		lines = append(lines, "", "Automatic daily portfolio snapshots will be stored for historical analysis.")
	}
	return Output{Markdown: strings.Join(lines, "\n"), JSON: resp}
}
