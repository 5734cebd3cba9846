// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// NSE tickers are upper-case letters and digits, optionally with & or -.
var tickerRegex = regexp.MustCompile(`^[A-Z][A-Z0-9&-]{0,19}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ticker", validateTicker)
		_ = v.RegisterValidation("positive_decimal", validatePositiveDecimal)
	}
}

// Ticker reports whether s looks like an exchange symbol.
func Ticker(s string) bool {
	return tickerRegex.MatchString(s)
}

func validateTicker(fl validator.FieldLevel) bool {
	return Ticker(fl.Field().String())
}

// positive_decimal accepts decimal.Decimal fields (or pointers, which the
// validator dereferences) holding a value greater than zero.
func validatePositiveDecimal(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.IsPositive()
}
