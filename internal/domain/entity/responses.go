package entity

import (
	"bytes"
	"fmt"
)

// NAVResponse is the net asset value of a set of addresses.
type NAVResponse struct {
	NAV      float64 `json:"nav"`
	Currency string  `json:"currency,omitempty"`
}

// UnmarshalJSON accepts both the object form and a bare number.
func (r *NAVResponse) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] != '{' {
		var nav float64
		if err := json.Unmarshal(trimmed, &nav); err != nil {
			return fmt.Errorf("nav: %w", err)
		}
		*r = NAVResponse{NAV: nav}
		return nil
	}
	type plain NAVResponse
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*r = NAVResponse(p)
	return nil
}

// Transaction is one entry of the transaction history.
type Transaction struct {
	Hash      string `json:"hash"`
	From      string `json:"from"`
	To        string `json:"to"`
	Value     Amount `json:"value"`
	Timestamp Amount `json:"timestamp,omitempty"`
	Chain     string `json:"chain"`
	Status    string `json:"status"`
	Type      string `json:"type,omitempty"`
	GasUsed   Amount `json:"gasUsed,omitempty"`
	GasPrice  Amount `json:"gasPrice,omitempty"`
}

// TransactionsResponse is a page of transactions.
type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
	Offset       int           `json:"offset"`
	Limit        int           `json:"limit"`
}

// SyncResponse acknowledges a transaction sync request.
type SyncResponse struct {
	Address string `json:"address,omitempty"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// SubscribeSnapshotResponse acknowledges a snapshot subscription.
type SubscribeSnapshotResponse struct {
	Subscribed bool     `json:"subscribed"`
	Message    string   `json:"message,omitempty"`
	Addresses  []string `json:"addresses,omitempty"`
}

// SnapshotSubscription is one element of the subscribe-snapshot request body.
type SnapshotSubscription struct {
	Address     string `json:"address"`
	Description string `json:"description,omitempty"`
}

// StatusEntry is the sync status of one address.
type StatusEntry struct {
	Address  string                       `json:"address"`
	Synced   bool                         `json:"synced"`
	LastSync Amount                       `json:"lastSync,omitempty"`
	Chains   *OrderedMap[ChainSyncStatus] `json:"chains,omitempty"`
}

// ChainSyncStatus is the sync status of one address on one chain.
type ChainSyncStatus struct {
	Synced    bool   `json:"synced"`
	LastBlock *int64 `json:"lastBlock,omitempty"`
}

// Credits is the remaining API credit balance.
type Credits float64

// UnmarshalJSON accepts a bare number or an object carrying "balance".
func (c *Credits) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var obj struct {
			Balance   *float64 `json:"balance"`
			Remaining *float64 `json:"remaining"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		switch {
		case obj.Balance != nil:
			*c = Credits(*obj.Balance)
		case obj.Remaining != nil:
			*c = Credits(*obj.Remaining)
		default:
			return fmt.Errorf("credits: object has no balance field")
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return fmt.Errorf("credits: %w", err)
	}
	*c = Credits(v)
	return nil
}

// TokenOverview is one token's share of the aggregated holdings.
type TokenOverview struct {
	Symbol     string   `json:"symbol"`
	Name       string   `json:"name,omitempty"`
	Balance    Amount   `json:"balance"`
	Value      Amount   `json:"value"`
	Percentage Amount   `json:"percentage,omitempty"`
	Chains     []string `json:"chains,omitempty"`
}

// TokenOverviewResponse is the token distribution across all chains.
type TokenOverviewResponse struct {
	Tokens     []TokenOverview `json:"tokens"`
	TotalValue Amount          `json:"totalValue,omitempty"`
}

// UnmarshalJSON accepts the wrapped object or a bare token array.
func (r *TokenOverviewResponse) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tokens []TokenOverview
		if err := json.Unmarshal(trimmed, &tokens); err != nil {
			return err
		}
		*r = TokenOverviewResponse{Tokens: tokens}
		return nil
	}
	type plain TokenOverviewResponse
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*r = TokenOverviewResponse(p)
	return nil
}

// Airdrop is the eligibility of an address for one project's airdrop.
type Airdrop struct {
	Project  string `json:"project"`
	Eligible bool   `json:"eligible"`
	Amount   Amount `json:"amount,omitempty"`
	ClaimURL string `json:"claimUrl,omitempty"`
}

// AirdropResponse lists airdrop eligibility for one address.
type AirdropResponse struct {
	Address  string    `json:"address"`
	Airdrops []Airdrop `json:"airdrops"`
}

// PolymarketPosition is an open prediction market position.
type PolymarketPosition struct {
	MarketID     string  `json:"marketId"`
	Question     string  `json:"question"`
	Outcome      string  `json:"outcome"`
	Shares       Amount  `json:"shares"`
	AvgPrice     float64 `json:"avgPrice"`
	CurrentPrice float64 `json:"currentPrice"`
	Value        float64 `json:"value"`
	PnL          float64 `json:"pnl"`
}

// PolymarketResponse lists the prediction market positions of one address.
type PolymarketResponse struct {
	Address    string               `json:"address"`
	Positions  []PolymarketPosition `json:"positions"`
	TotalValue float64              `json:"totalValue"`
	TotalPnL   float64              `json:"totalPnL"`
}
