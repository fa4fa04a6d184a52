package persistence

import (
	"encoding/json"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
)

// EncodeBudget serializes a budget snapshot to a byte stream.
func EncodeBudget(snap *models.BudgetSnapshot) ([]byte, error) {
	if snap == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidField, "budget snapshot cannot be nil")
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return data, nil
}

// DecodeBudget deserializes a budget snapshot from a byte stream. The result
// is field-for-field equal to the snapshot that was encoded.
func DecodeBudget(data []byte) (*models.BudgetSnapshot, error) {
	var snap models.BudgetSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return &snap, nil
}

// EncodeStore serializes a transaction store snapshot to a byte stream.
func EncodeStore(snap *models.StoreSnapshot) ([]byte, error) {
	if snap == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidField, "store snapshot cannot be nil")
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return data, nil
}

// DecodeStore deserializes a transaction store snapshot from a byte stream.
func DecodeStore(data []byte) (*models.StoreSnapshot, error) {
	var snap models.StoreSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	if snap.Users == nil {
		snap.Users = make(map[string][]models.TransactionSnapshot)
	}
	return &snap, nil
}
