package port

import (
	"context"

	"octav_mcp/internal/domain/entity"
)

// TransactionQuery narrows a transaction history request.
// Empty strings and nil pointers are left out of the query string.
type TransactionQuery struct {
	Chain     string
	Type      string
	StartDate string
	EndDate   string
	Offset    *int
	Limit     *int
}

// OctavAPI defines the remote portfolio analytics endpoints the tools call.
// Every method issues exactly one request.
type OctavAPI interface {
	GetPortfolio(ctx context.Context, addresses []string) ([]entity.PortfolioEntry, error)
	GetWallet(ctx context.Context, addresses []string) ([]entity.PortfolioEntry, error)
	GetNAV(ctx context.Context, addresses []string, currency string) (*entity.NAVResponse, error)
	GetTokenOverview(ctx context.Context, addresses []string, date string) (*entity.TokenOverviewResponse, error)

	GetTransactions(ctx context.Context, addresses []string, query TransactionQuery) (*entity.TransactionsResponse, error)
	SyncTransactions(ctx context.Context, addresses []string) (*entity.SyncResponse, error)

	GetHistorical(ctx context.Context, addresses []string, date string) ([]entity.PortfolioEntry, error)
	SubscribeSnapshot(ctx context.Context, subscriptions []entity.SnapshotSubscription) (*entity.SubscribeSnapshotResponse, error)

	GetStatus(ctx context.Context, addresses []string) ([]entity.StatusEntry, error)
	GetCredits(ctx context.Context) (entity.Credits, error)

	GetAirdrop(ctx context.Context, address string) (*entity.AirdropResponse, error)
	GetPolymarket(ctx context.Context, address string) (*entity.PolymarketResponse, error)

	// Payment-gated variants. Same contract, billed through the x402 flow on the server side.
	GetAgentWallet(ctx context.Context, addresses []string) ([]entity.PortfolioEntry, error)
	GetAgentPortfolio(ctx context.Context, addresses []string) ([]entity.PortfolioEntry, error)
}
