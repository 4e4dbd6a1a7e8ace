package formatter

import (
	"fmt"
	"sort"
	"strings"

	"octav_mcp/internal/domain/entity"

	"github.com/shopspring/decimal"
)

const topHoldingsAtDate = 5

var dustThreshold = decimal.NewFromInt(DustThreshold)

// WalletAsset is one token held directly in a wallet.
type WalletAsset struct {
	Symbol  string
	Balance string
	Chain   string
	Value   decimal.Decimal
}

// WalletChain groups wallet assets by chain across every address.
type WalletChain struct {
	Key    string
	Name   string
	Value  decimal.Decimal
	Assets []WalletAsset
}

// DeFiHolding is everything held in one protocol on one chain.
type DeFiHolding struct {
	Protocol  string
	Chain     string
	Value     decimal.Decimal
	Positions int
}

// PortfolioSummary is the arithmetic behind the portfolio reports.
// Chains, their assets and DeFi holdings keep wire order until sorted.
type PortfolioSummary struct {
	WalletTotal decimal.Decimal
	DeFiTotal   decimal.Decimal
	Chains      []WalletChain
	DeFi        []DeFiHolding
}

// Total is the wallet total plus the DeFi total.
func (s PortfolioSummary) Total() decimal.Decimal {
	return s.WalletTotal.Add(s.DeFiTotal)
}

// Summarize folds per-address entries into chain and protocol rollups.
// Assets under the wallet protocol count as wallet holdings; every other
// protocol contributes one DeFi holding per chain.
func Summarize(entries []entity.PortfolioEntry) PortfolioSummary {
	var s PortfolioSummary
	chainIndex := make(map[string]int)
	defiIndex := make(map[string]int)

	for _, entry := range entries {
		entry.AssetByProtocols.Each(func(protocolKey string, protocol entity.ProtocolHolding) {
			protocolName := firstNonEmpty(protocol.Name, protocolKey)

			protocol.Chains.Each(func(chainKey string, chain entity.ChainHolding) {
				chainName := firstNonEmpty(chain.Name, chainKey)

				if protocolKey == entity.WalletProtocolKey {
					idx, ok := chainIndex[chainKey]
					if !ok {
						idx = len(s.Chains)
						chainIndex[chainKey] = idx
						s.Chains = append(s.Chains, WalletChain{Key: chainKey, Name: chainName})
					}
					c := &s.Chains[idx]
					chain.ProtocolPositions.Each(func(_ string, pos entity.ProtocolPosition) {
						for _, a := range pos.Assets {
							v := ParseAmount(a.Value)
							c.Assets = append(c.Assets, WalletAsset{
								Symbol:  a.Symbol,
								Balance: a.Balance.String(),
								Chain:   chainName,
								Value:   v,
							})
							c.Value = c.Value.Add(v)
							s.WalletTotal = s.WalletTotal.Add(v)
						}
					})
					return
				}

				key := protocolKey + "/" + chainKey
				idx, ok := defiIndex[key]
				if !ok {
					idx = len(s.DeFi)
					defiIndex[key] = idx
					s.DeFi = append(s.DeFi, DeFiHolding{Protocol: protocolName, Chain: chainName})
				}
				h := &s.DeFi[idx]
				chain.ProtocolPositions.Each(func(_ string, pos entity.ProtocolPosition) {
					v := positionValue(pos)
					h.Value = h.Value.Add(v)
					h.Positions++
					s.DeFiTotal = s.DeFiTotal.Add(v)
				})
			})
		})
	}

	sort.SliceStable(s.Chains, func(i, j int) bool {
		return s.Chains[i].Value.GreaterThan(s.Chains[j].Value)
	})
	for i := range s.Chains {
		assets := s.Chains[i].Assets
		sort.SliceStable(assets, func(a, b int) bool {
			return assets[a].Value.GreaterThan(assets[b].Value)
		})
	}
	sort.SliceStable(s.DeFi, func(i, j int) bool {
		return s.DeFi[i].Value.GreaterThan(s.DeFi[j].Value)
	})
	return s
}

// positionValue prefers the reported total and falls back to the asset sum.
func positionValue(pos entity.ProtocolPosition) decimal.Decimal {
	if !pos.TotalValue.IsZero() {
		return ParseAmount(pos.TotalValue)
	}
	total := decimal.Zero
	for _, a := range pos.Assets {
		total = total.Add(ParseAmount(a.Value))
	}
	return total
}

// Portfolio renders wallet holdings and DeFi positions.
func Portfolio(entries []entity.PortfolioEntry) Output {
	s := Summarize(entries)
	lines := []string{"# Portfolio Summary", ""}
	lines = append(lines, addressLines(entries)...)
	lines = append(lines,
		"**Total Portfolio Value:** "+FormatUSD(s.Total()),
		"- Wallet holdings: "+FormatUSD(s.WalletTotal),
		"- DeFi positions: "+FormatUSD(s.DeFiTotal),
		"",
		"## Wallet Holdings",
		"",
	)
	lines = append(lines, walletChainLines(s.Chains, "###")...)
	lines = append(lines, "## DeFi Positions", "")
	lines = append(lines, defiLines(s.DeFi)...)
	lines = append(lines, "_Updated: "+lastUpdated(entries)+"_")

	return Output{Markdown: strings.Join(lines, "\n"), JSON: StripPortfolioFields(entries)}
}

// Wallet renders wallet holdings only. DeFi protocols in the input are ignored.
func Wallet(entries []entity.PortfolioEntry) Output {
	s := Summarize(entries)
	lines := []string{"# Wallet Holdings", ""}
	lines = append(lines, addressLines(entries)...)
	lines = append(lines, "**Total Wallet Value:** "+FormatUSD(s.WalletTotal), "")
	lines = append(lines, walletChainLines(s.Chains, "##")...)
	lines = append(lines, "_Updated: "+lastUpdated(entries)+"_")

	return Output{Markdown: strings.Join(lines, "\n"), JSON: StripPortfolioFields(entries)}
}

// Historical renders the portfolio as of date with its largest wallet holdings.
func Historical(entries []entity.PortfolioEntry, date string) Output {
	s := Summarize(entries)
	lines := []string{"# Historical Portfolio - " + date, ""}
	lines = append(lines, addressLines(entries)...)
	lines = append(lines,
		"**Date:** "+date,
		"**Total Value:** "+FormatUSD(s.Total()),
		"- Wallet holdings: "+FormatUSD(s.WalletTotal),
		"- DeFi positions: "+FormatUSD(s.DeFiTotal),
		"",
		"## Top Holdings at Date",
		"",
	)

	var held []WalletAsset
	for _, c := range s.Chains {
		for _, a := range c.Assets {
			if a.Value.IsPositive() {
				held = append(held, a)
			}
		}
	}
	sort.SliceStable(held, func(i, j int) bool {
		return held[i].Value.GreaterThan(held[j].Value)
	})
	if len(held) == 0 {
		lines = append(lines, "_No holdings recorded at this date._")
	}
	for i, a := range held {
		if i == topHoldingsAtDate {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. **%s** (%s): %s", i+1, a.Symbol, a.Chain, FormatUSD(a.Value)))
	}

	return Output{Markdown: strings.Join(lines, "\n"), JSON: StripPortfolioFields(entries)}
}

func walletChainLines(chains []WalletChain, heading string) []string {
	var lines []string
	for _, c := range chains {
		if c.Value.IsZero() {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s - %s", heading, c.Name, FormatUSD(c.Value)), "")
		dust := 0
		for _, a := range c.Assets {
			if !a.Value.GreaterThan(dustThreshold) {
				dust++
				continue
			}
			lines = append(lines, fmt.Sprintf("- %s: %s (%s)", a.Symbol, displayBalance(a.Balance), FormatUSD(a.Value)))
		}
		if dust > 0 {
			lines = append(lines, fmt.Sprintf("- _%d other tokens under %s_", dust, FormatUSD(dustThreshold)))
		}
		lines = append(lines, "")
	}
	if len(lines) == 0 {
		return []string{"_No wallet holdings available._", ""}
	}
	return lines
}

func defiLines(holdings []DeFiHolding) []string {
	var lines []string
	for _, h := range holdings {
		if h.Value.IsZero() {
			continue
		}
		lines = append(lines, fmt.Sprintf("- **%s** (%s): %s - %d position(s)", h.Protocol, h.Chain, FormatUSD(h.Value), h.Positions))
	}
	if len(lines) == 0 {
		return []string{"_No DeFi positions available._", ""}
	}
	return append(lines, "")
}

func addressLines(entries []entity.PortfolioEntry) []string {
	if len(entries) == 0 {
		return []string{"_No portfolio data available._", ""}
	}
	quoted := make([]string, 0, len(entries))
	for _, e := range entries {
		quoted = append(quoted, "`"+e.Address+"`")
	}
	return []string{"**Addresses:** " + strings.Join(quoted, ", ")}
}

// lastUpdated picks the most recent lastUpdated among the entries.
func lastUpdated(entries []entity.PortfolioEntry) string {
	var latest entity.Amount
	for _, e := range entries {
		if e.LastUpdated.IsZero() {
			continue
		}
		if latest.IsZero() || ParseAmount(e.LastUpdated).GreaterThan(ParseAmount(latest)) {
			latest = e.LastUpdated
		}
	}
	return FormatTimestamp(latest)
}

func displayBalance(balance string) string {
	if balance == "" {
		return "0"
	}
	return balance
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
