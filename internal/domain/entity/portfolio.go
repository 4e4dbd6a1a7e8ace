package entity

// WalletProtocolKey is the assetByProtocols key under which the API reports
// plain wallet holdings. Every other key is a DeFi protocol.
const WalletProtocolKey = "wallet"

// PortfolioEntry is the per-address portfolio record returned by the
// portfolio, wallet, historical and agent endpoints.
// Monetary values are decimal strings exactly as the API sends them.
type PortfolioEntry struct {
	Address               string                       `json:"address"`
	Networth              Amount                       `json:"networth,omitempty"`
	CashBalance           Amount                       `json:"cashBalance,omitempty"`
	LastUpdated           Amount                       `json:"lastUpdated,omitempty"`
	ClosedPnl             Amount                       `json:"closedPnl,omitempty"`
	OpenPnl               Amount                       `json:"openPnl,omitempty"`
	DailyIncome           Amount                       `json:"dailyIncome,omitempty"`
	DailyExpense          Amount                       `json:"dailyExpense,omitempty"`
	Fees                  Amount                       `json:"fees,omitempty"`
	FeesFiat              Amount                       `json:"feesFiat,omitempty"`
	ManualBalanceNetworth Amount                       `json:"manualBalanceNetworth,omitempty"`
	TotalCostBasis        Amount                       `json:"totalCostBasis,omitempty"`
	UUID                  string                       `json:"uuid,omitempty"`
	AssetByProtocols      *OrderedMap[ProtocolHolding] `json:"assetByProtocols,omitempty"`
	Chains                *OrderedMap[ChainSummary]    `json:"chains,omitempty"`
}

// ProtocolHolding groups everything an address holds in one protocol.
type ProtocolHolding struct {
	Name           string                    `json:"name"`
	Key            string                    `json:"key"`
	Value          Amount                    `json:"value,omitempty"`
	TotalCostBasis Amount                    `json:"totalCostBasis,omitempty"`
	TotalClosedPnl Amount                    `json:"totalClosedPnl,omitempty"`
	TotalOpenPnl   Amount                    `json:"totalOpenPnl,omitempty"`
	UUID           string                    `json:"uuid,omitempty"`
	Chains         *OrderedMap[ChainHolding] `json:"chains,omitempty"`
}

// ChainHolding is one protocol's footprint on one chain.
type ChainHolding struct {
	Name              string                        `json:"name"`
	Key               string                        `json:"key"`
	Value             Amount                        `json:"value,omitempty"`
	TotalCostBasis    Amount                        `json:"totalCostBasis,omitempty"`
	TotalClosedPnl    Amount                        `json:"totalClosedPnl,omitempty"`
	TotalOpenPnl      Amount                        `json:"totalOpenPnl,omitempty"`
	UUID              string                        `json:"uuid,omitempty"`
	ProtocolPositions *OrderedMap[ProtocolPosition] `json:"protocolPositions,omitempty"`
}

// ProtocolPosition is a single position (or the wallet bucket) inside a chain.
type ProtocolPosition struct {
	Name           string  `json:"name"`
	TotalValue     Amount  `json:"totalValue,omitempty"`
	TotalCostBasis Amount  `json:"totalCostBasis,omitempty"`
	TotalClosedPnl Amount  `json:"totalClosedPnl,omitempty"`
	TotalOpenPnl   Amount  `json:"totalOpenPnl,omitempty"`
	UUID           string  `json:"uuid,omitempty"`
	Assets         []Asset `json:"assets,omitempty"`
}

// Asset is a token balance.
type Asset struct {
	Symbol         string `json:"symbol"`
	Name           string `json:"name,omitempty"`
	Balance        Amount `json:"balance"`
	Price          Amount `json:"price,omitempty"`
	Value          Amount `json:"value,omitempty"`
	ChainKey       string `json:"chainKey,omitempty"`
	Contract       string `json:"contract,omitempty"`
	Decimal        Amount `json:"decimal,omitempty"`
	OpenPnl        Amount `json:"openPnl,omitempty"`
	TotalCostBasis Amount `json:"totalCostBasis,omitempty"`
	UUID           string `json:"uuid,omitempty"`
}

// ChainSummary is the per-chain rollup at the top of an entry.
type ChainSummary struct {
	Name            string `json:"name"`
	Key             string `json:"key"`
	Value           Amount `json:"value,omitempty"`
	ValuePercentile Amount `json:"valuePercentile,omitempty"`
}
