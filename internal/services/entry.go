package services

import (
	"errors"
	"strings"
	"time"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/validator"
)

// EntryInput carries a raw ledger entry through validation before it is
// built into a transaction.
type EntryInput struct {
	Month       int                    `validate:"ledger_month"`
	Kind        models.TransactionKind `validate:"transaction_kind"`
	Category    string                 `validate:"required"`
	Amount      decimal.Decimal        `validate:"-"`
	Description string                 `validate:"-"`
}

// BuildEntry validates the input and builds an immutable transaction dated
// on the first day of the given month in the current year.
func BuildEntry(input EntryInput) (*models.Transaction, error) {
	if err := validator.Get().Struct(input); err != nil {
		var verrs govalidator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Tag() == "ledger_month" {
					return nil, apperrors.ErrInvalidMonth
				}
			}
		}
		return nil, apperrors.Wrap(apperrors.ErrInvalidField, err)
	}

	b := models.NewTransactionBuilder()
	if err := b.Amount(input.Amount); err != nil {
		return nil, err
	}
	if err := b.Kind(input.Kind); err != nil {
		return nil, err
	}
	if err := b.Category(input.Category); err != nil {
		return nil, err
	}
	b.Description(strings.TrimSpace(input.Description))

	now := time.Now()
	if err := b.OccurredOn(time.Date(now.Year(), time.Month(input.Month), 1, 0, 0, 0, 0, time.UTC)); err != nil {
		return nil, err
	}
	return b.Build()
}
