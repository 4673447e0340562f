// Package rates serves the fixed conversion rate table.
package rates

import (
	"strings"

	apperrors "kycdesk/internal/errors"
	"kycdesk/internal/models"

	"github.com/shopspring/decimal"
)

type pair struct{ from, to string }

var table = map[pair]decimal.Decimal{
	{models.CurrencyUSD, models.CurrencyUSDC}: decimal.NewFromInt(1),
}

// Rate returns the conversion rate from one currency code to another.
func Rate(from, to string) (decimal.Decimal, error) {
	r, ok := table[pair{strings.TrimSpace(from), strings.TrimSpace(to)}]
	if !ok {
		return decimal.Zero, apperrors.ErrUnsupportedPair
	}
	return r, nil
}
