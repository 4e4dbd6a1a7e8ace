package tools

import (
	"context"

	"octav_mcp/internal/app/formatter"
	"octav_mcp/internal/app/port"
	v "octav_mcp/internal/app/validation"
	"octav_mcp/internal/domain/entity"
)

const addressesDescription = "Array of wallet addresses (EVM: 0x... or Solana base58). Max 10 addresses."

const maxTransactionsPerPage = 250

var (
	readOnly = Annotations{ReadOnly: true, OpenWorld: true}
	mutating = Annotations{OpenWorld: true}
)

type addressesArgs struct {
	Addresses []string `json:"addresses"`
}

type navArgs struct {
	Addresses []string `json:"addresses"`
	Currency  string   `json:"currency"`
}

type datedArgs struct {
	Addresses []string `json:"addresses"`
	Date      string   `json:"date"`
}

type transactionsArgs struct {
	Addresses []string `json:"addresses"`
	Chain     string   `json:"chain"`
	Type      string   `json:"type"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Offset    int      `json:"offset"`
	Limit     int      `json:"limit"`
}

type subscribeArgs struct {
	Addresses   []string `json:"addresses"`
	Description string   `json:"description"`
}

type addressArgs struct {
	Address string `json:"address"`
}

// withArgs adapts a typed tool body to the registry's runFunc.
func withArgs[A any](body func(ctx context.Context, args A, api port.OctavAPI) (formatter.Output, error)) runFunc {
	return func(ctx context.Context, decode decodeFunc, api port.OctavAPI) (formatter.Output, error) {
		var args A
		if err := decode(&args); err != nil {
			return formatter.Output{}, err
		}
		return body(ctx, args, api)
	}
}

func addressesSchema() map[string]any {
	return v.Object(map[string]any{"addresses": v.AddressList(addressesDescription)}, "addresses")
}

func portfolioTool(fetch func(port.OctavAPI) func(context.Context, []string) ([]entity.PortfolioEntry, error), render func([]entity.PortfolioEntry) formatter.Output) runFunc {
	return withArgs(func(ctx context.Context, args addressesArgs, api port.OctavAPI) (formatter.Output, error) {
		entries, err := fetch(api)(ctx, args.Addresses)
		if err != nil {
			return formatter.Output{}, err
		}
		return render(entries), nil
	})
}

// descriptors is the full tool table in listing order.
func descriptors() []Descriptor {
	maxLimit := maxTransactionsPerPage

	return []Descriptor{
		{
			Name:        "octav_get_portfolio",
			Title:       "Get Full Portfolio",
			Description: "Get complete portfolio including wallet holdings and DeFi protocol positions across 20+ blockchains. Returns token balances, values, and protocol positions. Costs 1 credit per address.",
			InputSchema: addressesSchema(),
			Annotations: readOnly,
			run: portfolioTool(func(api port.OctavAPI) func(context.Context, []string) ([]entity.PortfolioEntry, error) {
				return api.GetPortfolio
			}, formatter.Portfolio),
		},
		{
			Name:        "octav_get_wallet",
			Title:       "Get Wallet Holdings",
			Description: "Get wallet holdings only (excludes DeFi protocols). Returns token balances and values across all chains. Costs 1 credit per address.",
			InputSchema: addressesSchema(),
			Annotations: readOnly,
			run: portfolioTool(func(api port.OctavAPI) func(context.Context, []string) ([]entity.PortfolioEntry, error) {
				return api.GetWallet
			}, formatter.Wallet),
		},
		{
			Name:        "octav_get_nav",
			Title:       "Get Net Asset Value",
			Description: "Get total net worth (NAV) in specified currency. Supports USD, EUR, GBP, JPY, CNY. Costs 1 credit per address.",
			InputSchema: v.Object(map[string]any{
				"addresses": v.AddressList(addressesDescription),
				"currency":  v.Enum("Currency for NAV calculation. Defaults to USD.", "USD", "USD", "EUR", "GBP", "JPY", "CNY"),
			}, "addresses"),
			Annotations: readOnly,
			run: withArgs(func(ctx context.Context, args navArgs, api port.OctavAPI) (formatter.Output, error) {
				resp, err := api.GetNAV(ctx, args.Addresses, args.Currency)
				if err != nil {
					return formatter.Output{}, err
				}
				return formatter.NAV(resp, args.Currency), nil
			}),
		},
		{
			Name:        "octav_get_token_overview",
			Title:       "Get Token Distribution",
			Description: "Get aggregated token distribution across all chains. Shows which tokens you hold, their values, and percentage breakdown. Costs 1 credit per address.",
			InputSchema: v.Object(map[string]any{
				"addresses": v.AddressList(addressesDescription),
				"date":      v.Date("Optional date for the distribution (YYYY-MM-DD format)"),
			}, "addresses"),
			Annotations: readOnly,
			run: withArgs(func(ctx context.Context, args datedArgs, api port.OctavAPI) (formatter.Output, error) {
				resp, err := api.GetTokenOverview(ctx, args.Addresses, args.Date)
				if err != nil {
					return formatter.Output{}, err
				}
				return formatter.TokenOverview(resp), nil
			}),
		},
		{
			Name:        "octav_get_transactions",
			Title:       "Get Transaction History",
			Description: "Query transaction history with filtering and pagination. Filter by chain, type, date range. Max 250 transactions per request. Costs 1 credit per address.",
			InputSchema: v.Object(map[string]any{
				"addresses": v.AddressList(addressesDescription),
				"chain":     v.String("Filter by specific chain (e.g., ethereum, solana, arbitrum)"),
				"type":      v.String("Filter by transaction type (e.g., transfer, swap, stake)"),
				"startDate": v.Date("Start date for filtering (YYYY-MM-DD)"),
				"endDate":   v.Date("End date for filtering (YYYY-MM-DD)"),
				"offset":    v.Integer("Pagination offset (default: 0)", 0, nil, 0),
				"limit":     v.Integer("Number of transactions to return (default: 50, max: 250)", 1, &maxLimit, 50),
			}, "addresses"),
			Annotations: readOnly,
			run: withArgs(func(ctx context.Context, args transactionsArgs, api port.OctavAPI) (formatter.Output, error) {
				resp, err := api.GetTransactions(ctx, args.Addresses, port.TransactionQuery{
					Chain:     args.Chain,
					Type:      args.Type,
					StartDate: args.StartDate,
					EndDate:   args.EndDate,
					Offset:    &args.Offset,
					Limit:     &args.Limit,
				})
				if err != nil {
					return formatter.Output{}, err
				}
				if resp.Limit == 0 {
					resp.Offset, resp.Limit = args.Offset, args.Limit
				}
				return formatter.Transactions(resp), nil
			}),
		},
		{
			Name:        "octav_sync_transactions",
			Title:       "Sync Transactions",
			Description: "Manually trigger transaction synchronization for addresses. Forces immediate indexing of latest transactions. Costs 1 credit per address.",
			InputSchema: addressesSchema(),
			Annotations: mutating,
			run: withArgs(func(ctx context.Context, args addressesArgs, api port.OctavAPI) (formatter.Output, error) {
				resp, err := api.SyncTransactions(ctx, args.Addresses)
				if err != nil {
					return formatter.Output{}, err
				}
				return formatter.Sync(resp, args.Addresses), nil
			}),
		},
		{
			Name:        "octav_get_historical",
			Title:       "Get Historical Portfolio",
			Description: "Get portfolio snapshot for a specific date in the past. Shows holdings and values at that point in time. Costs 1 credit per address.",
			InputSchema: v.Object(map[string]any{
				"addresses": v.AddressList(addressesDescription),
				"date":      v.Date("Date for historical snapshot (YYYY-MM-DD format)"),
			}, "addresses", "date"),
			Annotations: readOnly,
			run: withArgs(func(ctx context.Context, args datedArgs, api port.OctavAPI) (formatter.Output, error) {
				entries, err := api.GetHistorical(ctx, args.Addresses, args.Date)
				if err != nil {
					return formatter.Output{}, err
				}
				return formatter.Historical(entries, args.Date), nil
			}),
		},
		{
			Name:        "octav_subscribe_snapshot",
			Title:       "Subscribe to Snapshots",
			Description: "Subscribe addresses to automatic daily portfolio snapshots. Enables historical tracking. Costs 1 credit per address.",
			InputSchema: v.Object(map[string]any{
				"addresses":   v.AddressList(addressesDescription),
				"description": v.String("Optional label stored with every subscribed address"),
			}, "addresses"),
			Annotations: mutating,
			run: withArgs(func(ctx context.Context, args subscribeArgs, api port.OctavAPI) (formatter.Output, error) {
				subscriptions := make([]entity.SnapshotSubscription, 0, len(args.Addresses))
				for _, addr := range args.Addresses {
					subscriptions = append(subscriptions, entity.SnapshotSubscription{Address: addr, Description: args.Description})
				}
				resp, err := api.SubscribeSnapshot(ctx, subscriptions)
				if err != nil {
					return formatter.Output{}, err
				}
				return formatter.SubscribeSnapshot(resp, subscriptions), nil
			}),
		},
		{
			Name:        "octav_get_status",
			Title:       "Get Sync Status",
			Description: "Check synchronization status of addresses across all chains. Shows which chains are synced and last sync time. FREE - no credits required.",
			InputSchema: addressesSchema(),
			Annotations: readOnly,
			run: withArgs(func(ctx context.Context, args addressesArgs, api port.OctavAPI) (formatter.Output, error) {
				entries, err := api.GetStatus(ctx, args.Addresses)
				if err != nil {
					return formatter.Output{}, err
				}
				return formatter.Status(entries), nil
			}),
		},
		{
			Name:        "octav_get_credits",
			Title:       "Get Credit Balance",
			Description: "Check API credit balance. FREE - no credits required.",
			InputSchema: v.Object(map[string]any{}),
			Annotations: readOnly,
			run: withArgs(func(ctx context.Context, _ struct{}, api port.OctavAPI) (formatter.Output, error) {
				credits, err := api.GetCredits(ctx)
				if err != nil {
					return formatter.Output{}, err
				}
				return formatter.Credits(credits), nil
			}),
		},
		{
			Name:        "octav_get_airdrop",
			Title:       "Get Airdrop Eligibility",
			Description: "Check airdrop eligibility for a Solana address. Shows eligible airdrops with claim links. Costs 1 credit.",
			InputSchema: v.Object(map[string]any{
				"address": v.Address("Solana wallet address (base58 format)"),
			}, "address"),
			Annotations: readOnly,
			run: withArgs(func(ctx context.Context, args addressArgs, api port.OctavAPI) (formatter.Output, error) {
				resp, err := api.GetAirdrop(ctx, args.Address)
				if err != nil {
					return formatter.Output{}, err
				}
				return formatter.Airdrop(resp), nil
			}),
		},
		{
			Name:        "octav_get_polymarket",
			Title:       "Get Polymarket Positions",
			Description: "Get Polymarket prediction market positions for address. Shows active positions, values, and P&L. Costs 1 credit.",
			InputSchema: v.Object(map[string]any{
				"address": v.Address("Ethereum wallet address (0x...)"),
			}, "address"),
			Annotations: readOnly,
			run: withArgs(func(ctx context.Context, args addressArgs, api port.OctavAPI) (formatter.Output, error) {
				resp, err := api.GetPolymarket(ctx, args.Address)
				if err != nil {
					return formatter.Output{}, err
				}
				return formatter.Polymarket(resp), nil
			}),
		},
		{
			Name:        "octav_agent_wallet",
			Title:       "Get Wallet (x402 Payment)",
			Description: "Get wallet holdings using x402 payment protocol. For AI agents with automatic payment. Returns wallet balances and values. Costs paid via HTTP 402 payment protocol.",
			InputSchema: addressesSchema(),
			Annotations: readOnly,
			run: portfolioTool(func(api port.OctavAPI) func(context.Context, []string) ([]entity.PortfolioEntry, error) {
				return api.GetAgentWallet
			}, formatter.Wallet),
		},
		{
			Name:        "octav_agent_portfolio",
			Title:       "Get Portfolio (x402 Payment)",
			Description: "Get full portfolio using x402 payment protocol. For AI agents with automatic payment. Returns wallet + DeFi positions. Costs paid via HTTP 402 payment protocol.",
			InputSchema: addressesSchema(),
			Annotations: readOnly,
			run: portfolioTool(func(api port.OctavAPI) func(context.Context, []string) ([]entity.PortfolioEntry, error) {
				return api.GetAgentPortfolio
			}, formatter.Portfolio),
		},
	}
}
