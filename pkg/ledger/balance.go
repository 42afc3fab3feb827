package ledger

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBalances renders a commodity->amount mapping as a display string,
// e.g. "CHF 1000.50, USD 500.25". Amounts are fixed to two decimals with
// round-half-away-from-zero. Commodity codes are iterated in lexical order
// so the output is deterministic. An empty or nil map yields "".
func FormatBalances(balances map[string]decimal.Decimal) string {
	if len(balances) == 0 {
		return ""
	}

	codes := make([]string, 0, len(balances))
	for code := range balances {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		parts = append(parts, code+" "+balances[code].StringFixed(2))
	}
	return strings.Join(parts, ", ")
}
