package services

import (
	"github.com/shopspring/decimal"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/pagination"
)

// transactionStore keeps every user's ordered transaction sequence in
// memory. It is a session-scoped repository object passed to its callers,
// not a process-wide singleton. Transactions are never removed individually;
// Reset is the only bulk removal.
type transactionStore struct {
	sequences map[string][]*models.Transaction
	seen      map[string]map[string]struct{}
}

// NewTransactionStore creates an empty store.
func NewTransactionStore() TransactionStorer {
	return &transactionStore{
		sequences: make(map[string][]*models.Transaction),
		seen:      make(map[string]map[string]struct{}),
	}
}

// Record appends a transaction to the user's sequence. A well-formed
// transaction is never rejected, with one exception: the same transaction ID
// may not appear twice in one user's sequence.
func (s *transactionStore) Record(userID string, tx *models.Transaction) error {
	if tx == nil {
		return apperrors.WithMessage(apperrors.ErrInvalidField, "transaction cannot be nil")
	}
	if userID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidField, "user ID cannot be empty")
	}

	ids, ok := s.seen[userID]
	if !ok {
		ids = make(map[string]struct{})
		s.seen[userID] = ids
	}
	if _, dup := ids[tx.ID()]; dup {
		return apperrors.ErrDuplicateTransaction
	}

	ids[tx.ID()] = struct{}{}
	s.sequences[userID] = append(s.sequences[userID], tx)
	return nil
}

// TotalsByKind sums the amounts of the user's transactions of the given
// kind. A user with no transactions yields zero; this query never fails.
func (s *transactionStore) TotalsByKind(userID string, kind models.TransactionKind) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range s.sequences[userID] {
		if tx.Kind() == kind {
			total = total.Add(tx.Amount())
		}
	}
	return total
}

// TotalsByCategory maps each category to its summed expense amount.
// Only expense transactions contribute; categories whose sum is zero are
// omitted.
func (s *transactionStore) TotalsByCategory(userID string) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range s.sequences[userID] {
		if tx.Kind() != models.KindExpense {
			continue
		}
		totals[tx.Category()] = totals[tx.Category()].Add(tx.Amount())
	}
	for category, sum := range totals {
		if sum.IsZero() {
			delete(totals, category)
		}
	}
	return totals
}

// Exceeding returns the ordered subsequence of expense transactions whose
// single amount exceeds ceiling. This is a per-transaction check, distinct
// from the cumulative month ceiling the budget enforces.
func (s *transactionStore) Exceeding(userID string, ceiling decimal.Decimal) []*models.Transaction {
	var out []*models.Transaction
	for _, tx := range s.sequences[userID] {
		if tx.Kind() == models.KindExpense && tx.Amount().GreaterThan(ceiling) {
			out = append(out, tx)
		}
	}
	return out
}

// Transactions returns one display page of the user's sequence, preserving
// insertion order.
func (s *transactionStore) Transactions(userID string, page pagination.PageRequest) pagination.PageResponse[*models.Transaction] {
	page.Defaults()
	seq := s.sequences[userID]
	return pagination.NewPageResponse(pagination.Slice(seq, page), page.Page, page.PageSize, int64(len(seq)))
}

// Reset discards the user's entire sequence.
func (s *transactionStore) Reset(userID string) {
	delete(s.sequences, userID)
	delete(s.seen, userID)
}

// Snapshot captures every user's sequence for persistence.
func (s *transactionStore) Snapshot() *models.StoreSnapshot {
	snap := &models.StoreSnapshot{Users: make(map[string][]models.TransactionSnapshot, len(s.sequences))}
	for userID, seq := range s.sequences {
		out := make([]models.TransactionSnapshot, 0, len(seq))
		for _, tx := range seq {
			out = append(out, tx.Snapshot())
		}
		snap.Users[userID] = out
	}
	return snap
}

// Restore replaces the store's contents with a persisted snapshot.
func (s *transactionStore) Restore(snap *models.StoreSnapshot) error {
	if snap == nil {
		return apperrors.WithMessage(apperrors.ErrInvalidField, "store snapshot cannot be nil")
	}

	sequences := make(map[string][]*models.Transaction, len(snap.Users))
	seen := make(map[string]map[string]struct{}, len(snap.Users))
	for userID, seq := range snap.Users {
		ids := make(map[string]struct{}, len(seq))
		for _, ts := range seq {
			tx, err := models.TransactionFromSnapshot(ts)
			if err != nil {
				return err
			}
			if _, dup := ids[tx.ID()]; dup {
				return apperrors.ErrDuplicateTransaction
			}
			ids[tx.ID()] = struct{}{}
			sequences[userID] = append(sequences[userID], tx)
		}
		seen[userID] = ids
	}

	s.sequences = sequences
	s.seen = seen
	return nil
}
