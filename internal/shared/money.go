package shared

import "github.com/shopspring/decimal"

// MaxMoney is the largest price or sale amount the business accepts.
var MaxMoney = decimal.RequireFromString("9999999.99")

// ValidateMoney checks that v is positive and not above MaxMoney and returns
// it rounded to cents. field names the offending input in the error.
func ValidateMoney(code, field string, v decimal.Decimal) (decimal.Decimal, error) {
	if !v.IsPositive() {
		return decimal.Zero, NewValidationError(code, "%s must be greater than zero", field)
	}
	if v.GreaterThan(MaxMoney) {
		return decimal.Zero, NewValidationError(code, "%s must not exceed %s", field, MaxMoney.StringFixed(2))
	}
	return v.Round(2), nil
}
