package accounting

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/stockbot/internal/domain/models"
)

// Numeric inputs are bounded so that arithmetic on them stays cheap.
const (
	maxNumberLength = 32
	maxExponent     = 18
)

// parsePositive applies the numeric policy shared by sell, buy and expense: the value
// must parse as a number, stay within maxNumberLength characters and 10^±maxExponent,
// and be strictly positive.
func parsePositive(field, raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) > maxNumberLength {
		return decimal.Zero, models.NewError(models.KindValidation,
			fmt.Sprintf("Invalid %s: too many digits (max %d).", field, maxNumberLength))
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, models.WrapError(models.KindValidation,
			fmt.Sprintf("Invalid %s %q: must be a number greater than 0.", field, raw), err)
	}
	if !value.IsPositive() {
		return decimal.Zero, models.NewError(models.KindValidation,
			fmt.Sprintf("Invalid %s %q: must be a number greater than 0.", field, raw))
	}
	if exp := value.Exponent(); exp < -maxExponent || exp > maxExponent {
		return decimal.Zero, models.NewError(models.KindValidation,
			fmt.Sprintf("Invalid %s %q: out of range.", field, raw))
	}
	return value, nil
}

// weightedAverageCost blends an incoming lot into the current average:
// (qty*avg + inQty*inPrice) / (qty + inQty).
func weightedAverageCost(qty, avg, inQty, inPrice decimal.Decimal) decimal.Decimal {
	total := qty.Add(inQty)
	if !total.IsPositive() {
		return decimal.Zero
	}
	return qty.Mul(avg).Add(inQty.Mul(inPrice)).Div(total)
}
