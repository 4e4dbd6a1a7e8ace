package formatter

import "octav_mcp/internal/domain/entity"

// StripPortfolioFields returns a deep copy of entries without cost basis,
// P&L, income, fee and manual-networth bookkeeping or internal uuids, at every
// level of the protocol, chain, position and asset nesting. Address, networth
// and every map key are kept. Stripping twice yields the same result as once.
func StripPortfolioFields(entries []entity.PortfolioEntry) []entity.PortfolioEntry {
	out := make([]entity.PortfolioEntry, len(entries))
	for i, e := range entries {
		e.ClosedPnl = ""
		e.OpenPnl = ""
		e.DailyIncome = ""
		e.DailyExpense = ""
		e.Fees = ""
		e.FeesFiat = ""
		e.ManualBalanceNetworth = ""
		e.TotalCostBasis = ""
		e.UUID = ""
		e.AssetByProtocols = stripProtocols(e.AssetByProtocols)
		e.Chains = copyMap(e.Chains, func(c entity.ChainSummary) entity.ChainSummary { return c })
		out[i] = e
	}
	return out
}

func stripProtocols(m *entity.OrderedMap[entity.ProtocolHolding]) *entity.OrderedMap[entity.ProtocolHolding] {
	return copyMap(m, func(p entity.ProtocolHolding) entity.ProtocolHolding {
		p.TotalCostBasis = ""
		p.TotalClosedPnl = ""
		p.TotalOpenPnl = ""
		p.UUID = ""
		p.Chains = copyMap(p.Chains, stripChain)
		return p
	})
}

func stripChain(c entity.ChainHolding) entity.ChainHolding {
	c.TotalCostBasis = ""
	c.TotalClosedPnl = ""
	c.TotalOpenPnl = ""
	c.UUID = ""
	c.ProtocolPositions = copyMap(c.ProtocolPositions, stripPosition)
	return c
}

func stripPosition(p entity.ProtocolPosition) entity.ProtocolPosition {
	p.TotalCostBasis = ""
	p.TotalClosedPnl = ""
	p.TotalOpenPnl = ""
	p.UUID = ""
	if p.Assets != nil {
		assets := make([]entity.Asset, len(p.Assets))
		for i, a := range p.Assets {
			a.OpenPnl = ""
			a.TotalCostBasis = ""
			a.UUID = ""
			assets[i] = a
		}
		p.Assets = assets
	}
	return p
}

// copyMap rebuilds m in key order with fn applied to every value. nil stays nil.
func copyMap[V any](m *entity.OrderedMap[V], fn func(V) V) *entity.OrderedMap[V] {
	if m == nil {
		return nil
	}
	out := entity.NewOrderedMap[V]()
	m.Each(func(key string, v V) {
		out.Set(key, fn(v))
	})
	return out
}
