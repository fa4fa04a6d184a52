package models

import "github.com/shopspring/decimal"

// UserRole determines a user's access level.
type UserRole string

const (
	RoleRegular UserRole = "regular"
	RoleAdmin   UserRole = "admin"
)

// User is the owner of a budget and a transaction sequence. The engine never
// inspects users beyond their opaque identifier; this type exists for the
// authentication collaborator and for persistence of ownership.
type User struct {
	Base
	Username     string          `gorm:"uniqueIndex;not null" json:"username"`
	Email        string          `gorm:"not null" json:"email"`
	PasswordHash string          `gorm:"not null" json:"-"`
	BudgetGoal   decimal.Decimal `gorm:"type:numeric;not null" json:"budget_goal"`
	Role         UserRole        `gorm:"not null;default:regular" json:"role"`
	IsActive     bool            `gorm:"default:true" json:"is_active"`
}
