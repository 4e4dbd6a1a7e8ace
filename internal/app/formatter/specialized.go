package formatter

import (
	"fmt"
	"strings"

	"octav_mcp/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Airdrop renders eligible and ineligible airdrops for one address.
func Airdrop(resp *entity.AirdropResponse) Output {
	lines := []string{"# Airdrop Eligibility", "", "**Address:** `" + resp.Address + "`", ""}

	if len(resp.Airdrops) == 0 {
		lines = append(lines, "*No airdrop information available for this address.*")
		return Output{Markdown: strings.Join(lines, "\n"), JSON: resp}
	}

	var eligible, notEligible []entity.Airdrop
	for _, a := range resp.Airdrops {
		if a.Eligible {
			eligible = append(eligible, a)
		} else {
			notEligible = append(notEligible, a)
		}
	}

	if len(eligible) > 0 {
		lines = append(lines, "## ✓ Eligible Airdrops", "")
		for _, a := range eligible {
			lines = append(lines, "### "+a.Project)
			if !a.Amount.IsZero() {
				lines = append(lines, "- **Amount:** "+a.Amount.String())
			}
			if a.ClaimURL != "" {
				lines = append(lines, "- **Claim:** "+a.ClaimURL)
			}
			lines = append(lines, "")
		}
	}
	if len(notEligible) > 0 {
		lines = append(lines, "## ✗ Not Eligible", "")
		for _, a := range notEligible {
			lines = append(lines, "- "+a.Project)
		}
	}
	return Output{Markdown: strings.TrimRight(strings.Join(lines, "\n"), "\n"), JSON: resp}
}

// Polymarket renders open prediction market positions for one address.
func Polymarket(resp *entity.PolymarketResponse) Output {
	lines := []string{
		"# Polymarket Positions",
		"",
		"**Address:** `" + resp.Address + "`",
		"**Total Value:** " + FormatUSD(decimal.NewFromFloat(resp.TotalValue)),
		"**Total P&L:** " + FormatSignedUSD(decimal.NewFromFloat(resp.TotalPnL)),
		"",
	}

	if len(resp.Positions) == 0 {
		lines = append(lines, "*No active Polymarket positions found.*")
		return Output{Markdown: strings.Join(lines, "\n"), JSON: resp}
	}

	lines = append(lines, "## Active Positions", "")
	for i, pos := range resp.Positions {
		lines = append(lines,
			fmt.Sprintf("### %d. %s", i+1, pos.Question),
			"- **Outcome:** "+pos.Outcome,
			"- **Shares:** "+displayBalance(pos.Shares.String()),
			"- **Avg Price:** $"+decimal.NewFromFloat(pos.AvgPrice).StringFixed(4),
			"- **Current Price:** $"+decimal.NewFromFloat(pos.CurrentPrice).StringFixed(4),
			"- **Value:** "+FormatUSD(decimal.NewFromFloat(pos.Value)),
			"- **P&L:** "+FormatSignedUSD(decimal.NewFromFloat(pos.PnL)),
			"",
		)
	}
	return Output{Markdown: strings.TrimRight(strings.Join(lines, "\n"), "\n"), JSON: resp}
}
