package ledger

import (
	"errors"
	"strings"
	"time"
)

// Validation messages shown to the user. Checks run in a fixed order and
// the first failure wins; later fields are not inspected.
var (
	ErrDateRequired   = errors.New("enter a date (YYYY-MM-DD)")
	ErrDateFormat     = errors.New("date must be YYYY-MM-DD")
	ErrUserRequired   = errors.New("select who paid")
	ErrAmountRequired = errors.New("enter an amount")
	ErrBadCategory    = errors.New("unknown category")
)

// ExpenseForm holds the raw expense composer inputs before validation.
// Amount is free-form text; commas are tolerated.
type ExpenseForm struct {
	Date     string
	UserID   int64
	Category string
	Memo     string
	Amount   string
}

// ExpenseDraft is a validated, normalized expense ready for submission.
// Memo is nil when the trimmed input was empty.
type ExpenseDraft struct {
	Date     string
	UserID   int64
	Category string
	Memo     *string
	Amount   int64
}

// Validate checks the form fail-fast: date, then user, then amount presence,
// then amount value, then category. It returns the normalized draft or the
// first failing check's error.
func (f ExpenseForm) Validate() (ExpenseDraft, error) {
	date := strings.TrimSpace(f.Date)
	if date == "" {
		return ExpenseDraft{}, ErrDateRequired
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ExpenseDraft{}, ErrDateFormat
	}
	if f.UserID <= 0 {
		return ExpenseDraft{}, ErrUserRequired
	}
	if strings.TrimSpace(f.Amount) == "" {
		return ExpenseDraft{}, ErrAmountRequired
	}
	amount, err := ParseAmount(f.Amount)
	if err != nil {
		return ExpenseDraft{}, err
	}
	if !ValidCategory(f.Category) {
		return ExpenseDraft{}, ErrBadCategory
	}

	draft := ExpenseDraft{
		Date:     date,
		UserID:   f.UserID,
		Category: f.Category,
		Amount:   amount,
	}
	if memo := strings.TrimSpace(f.Memo); memo != "" {
		draft.Memo = &memo
	}
	return draft, nil
}
