// Package persistence implements the gateway between the ledger engine and
// durable storage. Snapshots cross this boundary; live domain objects never
// do. Failures surface as PERSISTENCE_FAILURE, or NOT_FOUND when no snapshot
// exists yet.
package persistence

import (
	"context"

	"finledger/internal/models"
)

// Gateway round-trips budget and transaction-store snapshots to durable
// storage. A save must not be interleaved with a mutation of the same
// budget; the caller holds the session quiescent during a save.
type Gateway interface {
	SaveBudget(ctx context.Context, userID string, snap *models.BudgetSnapshot) error
	LoadBudget(ctx context.Context, userID string) (*models.BudgetSnapshot, error)
	SaveStore(ctx context.Context, snap *models.StoreSnapshot) error
	LoadStore(ctx context.Context) (*models.StoreSnapshot, error)
}
