package persistence

import (
	"time"

	"github.com/shopspring/decimal"

	"finledger/internal/models"
)

// BudgetRecord is the SQLite row form of a budget snapshot. One row per
// owning user.
type BudgetRecord struct {
	models.Base
	UserID    string              `gorm:"uniqueIndex;not null"`
	BudgetID  string              `gorm:"not null"`
	Name      string              `gorm:"not null"`
	GoalLimit decimal.Decimal     `gorm:"type:numeric;not null"`
	Mode      string              `gorm:"not null"`
	Exceeded  bool                `gorm:"not null"`
	Months    []BudgetMonthRecord `gorm:"foreignKey:BudgetRecordID;references:ID"`
}

// BudgetMonthRecord is one monthly ledger row of a budget record.
type BudgetMonthRecord struct {
	ID             uint            `gorm:"primaryKey"`
	BudgetRecordID string          `gorm:"type:uuid;index;not null"`
	Month          int             `gorm:"not null"`
	IncomeTotal    decimal.Decimal `gorm:"type:numeric;not null"`
	ExpenseTotal   decimal.Decimal `gorm:"type:numeric;not null"`
}

// TransactionRecord is the SQLite row form of a recorded transaction.
// Position preserves insertion order within a user's sequence.
type TransactionRecord struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	UserID      string          `gorm:"index;not null"`
	Position    int             `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null"`
	Kind        string          `gorm:"not null"`
	Category    string          `gorm:"not null"`
	Description string
	OccurredOn  time.Time `gorm:"not null"`
	CreatedAt   time.Time
}

// toSnapshot converts a budget record back into the snapshot form.
func (r *BudgetRecord) toSnapshot() *models.BudgetSnapshot {
	snap := &models.BudgetSnapshot{
		ID:        r.BudgetID,
		Name:      r.Name,
		GoalLimit: r.GoalLimit,
		Mode:      models.EnforcementMode(r.Mode),
		Exceeded:  r.Exceeded,
	}
	for _, m := range r.Months {
		if m.Month < 1 || m.Month > 12 {
			continue
		}
		snap.Months[m.Month-1] = models.MonthSnapshot{
			Month:        m.Month,
			IncomeTotal:  m.IncomeTotal,
			ExpenseTotal: m.ExpenseTotal,
		}
	}
	return snap
}

// budgetRecordFrom converts a snapshot into its row form.
func budgetRecordFrom(userID string, snap *models.BudgetSnapshot) *BudgetRecord {
	rec := &BudgetRecord{
		UserID:    userID,
		BudgetID:  snap.ID,
		Name:      snap.Name,
		GoalLimit: snap.GoalLimit,
		Mode:      string(snap.Mode),
		Exceeded:  snap.Exceeded,
	}
	for _, m := range snap.Months {
		rec.Months = append(rec.Months, BudgetMonthRecord{
			Month:        m.Month,
			IncomeTotal:  m.IncomeTotal,
			ExpenseTotal: m.ExpenseTotal,
		})
	}
	return rec
}
