package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
)

// ParseDecimalToCents converts a major-unit decimal string to cents.
// It accepts both dot (12.34) and comma (12,34) separators and performs
// half-up rounding on the third decimal place. Negative values are rejected,
// zero is allowed.
func ParseDecimalToCents(s string) (int64, error) {
	invalid := appErrors.ErrorResponse{
		Code:    appErrors.ErrInvalidInput,
		Message: fmt.Sprintf("Invalid amount: %q", s),
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return 0, invalid
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, invalid
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, invalid
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, invalid
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, invalid
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, invalid
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, invalid
	}

	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}

// FormatCents renders cents as a major-unit decimal string, e.g. 1234 -> "12.34".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
