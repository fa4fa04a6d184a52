package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "finledger/internal/errors"
	"finledger/internal/uuid"
)

// TransactionKind represents the direction of a transaction.
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// ParseTransactionKind validates a kind string.
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch TransactionKind(s) {
	case KindIncome, KindExpense:
		return TransactionKind(s), nil
	}
	return "", apperrors.WithMessage(apperrors.ErrInvalidField, "transaction kind must be income or expense")
}

// Transaction is an immutable record of a single financial event. A
// correction is a new Transaction, never a mutation; all fields are fixed at
// construction through the builder.
type Transaction struct {
	id          string
	amount      decimal.Decimal
	kind        TransactionKind
	category    string
	description string
	occurredOn  time.Time
}

// ID returns the unique identifier assigned at build time.
func (t *Transaction) ID() string { return t.id }

// Amount returns the non-negative transaction amount.
func (t *Transaction) Amount() decimal.Decimal { return t.amount }

// Kind returns whether the transaction is income or expense.
func (t *Transaction) Kind() TransactionKind { return t.kind }

// Category returns the transaction's category label.
func (t *Transaction) Category() string { return t.category }

// Description returns the free-text description. May be empty.
func (t *Transaction) Description() string { return t.description }

// OccurredOn returns the calendar date of the event.
func (t *Transaction) OccurredOn() time.Time { return t.occurredOn }

// Month returns the 1-12 month index of the event date.
func (t *Transaction) Month() int { return int(t.occurredOn.Month()) }

// Snapshot captures the transaction for persistence.
func (t *Transaction) Snapshot() TransactionSnapshot {
	return TransactionSnapshot{
		ID:          t.id,
		Amount:      t.amount,
		Kind:        t.kind,
		Category:    t.category,
		Description: t.description,
		OccurredOn:  t.occurredOn,
	}
}

// TransactionFromSnapshot rebuilds a transaction from persisted state,
// preserving its original identifier.
func TransactionFromSnapshot(snap TransactionSnapshot) (*Transaction, error) {
	if !uuid.IsValid(snap.ID) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidField, "transaction snapshot has an invalid ID")
	}
	if snap.Amount.IsNegative() {
		return nil, apperrors.ErrInvalidAmount
	}
	kind, err := ParseTransactionKind(string(snap.Kind))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(snap.Category) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidField, "transaction category cannot be empty")
	}
	return &Transaction{
		id:          snap.ID,
		amount:      snap.Amount,
		kind:        kind,
		category:    snap.Category,
		description: snap.Description,
		occurredOn:  snap.OccurredOn,
	}, nil
}

// TransactionBuilder accumulates transaction fields with per-field
// validation. Each setter fails the moment it receives an invalid value
// rather than deferring to Build.
type TransactionBuilder struct {
	amount      decimal.Decimal
	kind        TransactionKind
	category    string
	description string
	occurredOn  time.Time

	amountSet bool
	kindSet   bool
}

// NewTransactionBuilder creates an empty builder.
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{}
}

// Amount sets the transaction amount. Negative amounts are rejected.
func (b *TransactionBuilder) Amount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperrors.ErrInvalidAmount
	}
	b.amount = amount
	b.amountSet = true
	return nil
}

// Kind sets the transaction kind.
func (b *TransactionBuilder) Kind(kind TransactionKind) error {
	parsed, err := ParseTransactionKind(string(kind))
	if err != nil {
		return err
	}
	b.kind = parsed
	b.kindSet = true
	return nil
}

// Category sets the category label. Empty labels are rejected.
func (b *TransactionBuilder) Category(category string) error {
	if strings.TrimSpace(category) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidField, "transaction category cannot be empty")
	}
	b.category = category
	return nil
}

// Description sets the free-text description. May be empty but not omitted
// by the caller contract, so no validation applies.
func (b *TransactionBuilder) Description(description string) {
	b.description = description
}

// OccurredOn sets the event date. Zero dates are rejected.
func (b *TransactionBuilder) OccurredOn(date time.Time) error {
	if date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidField, "transaction date cannot be zero")
	}
	b.occurredOn = date
	return nil
}

// Build assigns a fresh identifier and returns the immutable transaction.
// It fails only when a required field was never set; values that passed the
// setters are final.
func (b *TransactionBuilder) Build() (*Transaction, error) {
	if !b.amountSet {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidField, "transaction amount is required")
	}
	if !b.kindSet {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidField, "transaction kind is required")
	}
	if b.category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidField, "transaction category is required")
	}
	occurredOn := b.occurredOn
	if occurredOn.IsZero() {
		occurredOn = time.Now()
	}
	return &Transaction{
		id:          uuid.New(),
		amount:      b.amount,
		kind:        b.kind,
		category:    b.category,
		description: b.description,
		occurredOn:  occurredOn,
	}, nil
}
