package ledger

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidAmount is returned for amounts that are empty, non-numeric,
// or not strictly positive after comma removal.
var ErrInvalidAmount = errors.New("amount must be a positive number")

// ParseAmount converts free-form numeric text into a monetary amount.
// Commas are accepted as thousands separators and stripped before parsing:
// "35,000" parses to 35000. The result must be > 0.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", "")

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if n <= 0 {
		return 0, ErrInvalidAmount
	}
	return n, nil
}
