// Package validator provides a shared validation engine with custom rules
// for the ledger domain.
package validator

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// Get returns the shared validator instance with all custom rules registered.
func Get() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("enforcement_mode", validateEnforcementMode)
		_ = validate.RegisterValidation("transaction_kind", validateTransactionKind)
		_ = validate.RegisterValidation("ledger_month", validateLedgerMonth)
		_ = validate.RegisterValidation("user_role", validateUserRole)
	})
	return validate
}

func validateEnforcementMode(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "reject", "warn":
		return true
	}
	return false
}

func validateTransactionKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateLedgerMonth(fl validator.FieldLevel) bool {
	month := fl.Field().Int()
	return month >= 1 && month <= 12
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "regular", "admin":
		return true
	}
	return false
}
