// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	hexColorRegex   = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	ledgerDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("category_type", validateCategoryType)
		_ = v.RegisterValidation("date_range", validateDateRange)
		_ = v.RegisterValidation("ledger_date", validateLedgerDate)
	}
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateCategoryType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateDateRange(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "day", "week", "month", "year":
		return true
	}
	return false
}

// validateLedgerDate checks the zero-padded YYYY-MM-DD form that all date
// comparisons rely on.
func validateLedgerDate(fl validator.FieldLevel) bool {
	return ledgerDateRegex.MatchString(fl.Field().String())
}
