package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
)

// sqliteGateway persists snapshots in a SQLite database through GORM.
type sqliteGateway struct {
	db *gorm.DB
}

// NewSQLiteGateway creates a Gateway backed by the given database handle.
func NewSQLiteGateway(db *gorm.DB) Gateway {
	return &sqliteGateway{db: db}
}

// SaveBudget replaces the stored snapshot for userID in one transaction.
func (g *sqliteGateway) SaveBudget(ctx context.Context, userID string, snap *models.BudgetSnapshot) error {
	if snap == nil {
		return apperrors.WithMessage(apperrors.ErrInvalidField, "budget snapshot cannot be nil")
	}

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing BudgetRecord
		err := tx.Where("user_id = ?", userID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Where("budget_record_id = ?", existing.ID).Delete(&BudgetMonthRecord{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Delete(&existing).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// First save for this user.
		default:
			return err
		}

		return tx.Create(budgetRecordFrom(userID, snap)).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return nil
}

// LoadBudget reads the stored snapshot for userID. Returns NOT_FOUND when
// the user has never saved one.
func (g *sqliteGateway) LoadBudget(ctx context.Context, userID string) (*models.BudgetSnapshot, error) {
	var rec BudgetRecord
	err := g.db.WithContext(ctx).
		Preload("Months", func(db *gorm.DB) *gorm.DB { return db.Order("month ASC") }).
		Where("user_id = ?", userID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return rec.toSnapshot(), nil
}

// SaveStore replaces every user's stored transaction sequence in one
// transaction.
func (g *sqliteGateway) SaveStore(ctx context.Context, snap *models.StoreSnapshot) error {
	if snap == nil {
		return apperrors.WithMessage(apperrors.ErrInvalidField, "store snapshot cannot be nil")
	}

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&TransactionRecord{}).Error; err != nil {
			return err
		}
		for userID, seq := range snap.Users {
			for i, t := range seq {
				rec := TransactionRecord{
					ID:          t.ID,
					UserID:      userID,
					Position:    i,
					Amount:      t.Amount,
					Kind:        string(t.Kind),
					Category:    t.Category,
					Description: t.Description,
					OccurredOn:  t.OccurredOn,
				}
				if err := tx.Create(&rec).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return nil
}

// LoadStore reads every user's stored transaction sequence, preserving
// insertion order.
func (g *sqliteGateway) LoadStore(ctx context.Context) (*models.StoreSnapshot, error) {
	var recs []TransactionRecord
	err := g.db.WithContext(ctx).
		Order("user_id ASC, position ASC").
		Find(&recs).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}

	snap := &models.StoreSnapshot{Users: make(map[string][]models.TransactionSnapshot)}
	for _, r := range recs {
		snap.Users[r.UserID] = append(snap.Users[r.UserID], models.TransactionSnapshot{
			ID:          r.ID,
			Amount:      r.Amount,
			Kind:        models.TransactionKind(r.Kind),
			Category:    r.Category,
			Description: r.Description,
			OccurredOn:  r.OccurredOn,
		})
	}
	return snap, nil
}
