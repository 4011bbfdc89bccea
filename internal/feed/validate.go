package feed

import (
	"strconv"
	"strings"
)

const (
	MinPageSize     = 1
	MaxPageSize     = 20
	DefaultPageSize = 10
)

// ValidatePageSize parses a page size typed by the user.
func ValidatePageSize(raw string) (int, error) {
	return validateNumber("page size", raw, MinPageSize, MaxPageSize)
}

// ValidatePageNumber parses a one-based page number typed by the user.
func ValidatePageNumber(raw string, totalPages int) (int, error) {
	return validateNumber("page number", raw, 1, totalPages)
}

func validateNumber(field, raw string, min, max int) (int, error) {
	if raw == "" || strings.IndexFunc(raw, notDigit) >= 0 {
		return 0, &ValidationError{Field: field, Reason: ReasonInvalidFormat}
	}
	n, err := strconv.Atoi(raw)
	// Only digits remain, so a parse error is an overflow.
	if err != nil || n < min || n > max {
		return 0, &ValidationError{Field: field, Reason: ReasonOutOfRange, Min: min, Max: max}
	}
	return n, nil
}

func notDigit(r rune) bool {
	return r < '0' || r > '9'
}
