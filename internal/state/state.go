// Package state holds the client's single mutable snapshot and its
// transition functions. Every mutation goes through a method here so the
// both-or-neither load guarantee and the stale-response guard can be
// tested without a terminal attached.
package state

import (
	"strconv"
	"time"

	"github.com/bio70000-dotcom/couple-budget/internal/api"
	"github.com/bio70000-dotcom/couple-budget/internal/ledger"
)

// State is the client-side snapshot: selected month, loaded data, form
// seeds, and load bookkeeping. It is not safe for concurrent use; the TUI
// mutates it only from its update loop.
type State struct {
	Month    ledger.Month
	Users    []api.User
	Summary  *api.Summary
	Expenses []api.Expense

	// BudgetInput is the budget editor's text field, seeded from the last
	// loaded summary (empty when no budget is set).
	BudgetInput string

	// Form carries the expense composer fields. Date, user, and category
	// survive a successful submission for rapid successive entry.
	Form ledger.ExpenseForm

	Loading bool
	LoadErr string

	// gen is the latest issued load generation. Completions carrying any
	// other generation are discarded so a slow response from an old month
	// cannot overwrite a newer one.
	gen uint64
}

// New returns a State positioned on the current month with form defaults.
func New() *State {
	return &State{
		Month: ledger.CurrentMonth(),
		Form: ledger.ExpenseForm{
			Date:     time.Now().Format("2006-01-02"),
			Category: ledger.Categories[0],
		},
	}
}

// ShiftMonth moves the selection by delta months. The caller is expected
// to issue a fresh load afterwards.
func (s *State) ShiftMonth(delta int) {
	s.Month = s.Month.Shift(delta)
}

// BeginLoad marks a new load in flight and returns its generation.
func (s *State) BeginLoad() uint64 {
	s.gen++
	s.Loading = true
	s.LoadErr = ""
	return s.gen
}

// Generation returns the latest issued load generation.
func (s *State) Generation() uint64 {
	return s.gen
}

// ApplyLoad installs a completed load. Summary and expenses are replaced
// together and the budget input is reseeded. Stale generations are
// ignored entirely; the method reports whether the load was applied.
func (s *State) ApplyLoad(gen uint64, summary *api.Summary, expenses []api.Expense) bool {
	if gen != s.gen {
		return false
	}
	s.Loading = false
	s.LoadErr = ""
	s.Summary = summary
	s.Expenses = expenses
	s.BudgetInput = ""
	if summary != nil && summary.Budget != nil {
		s.BudgetInput = strconv.FormatInt(*summary.Budget, 10)
	}
	return true
}

// ApplyLoadError records a failed load. Previously loaded data stays as
// it was; only the error banner changes. Stale generations are ignored.
func (s *State) ApplyLoadError(gen uint64, err error) bool {
	if gen != s.gen {
		return false
	}
	s.Loading = false
	if err != nil {
		s.LoadErr = err.Error()
	}
	return true
}

// SetUsers installs the member list and defaults the composer's user to
// the first member when none is selected yet.
func (s *State) SetUsers(users []api.User) {
	s.Users = users
	if s.Form.UserID == 0 && len(users) > 0 {
		s.Form.UserID = users[0].ID
	}
}

// ApplyExpenseSaved resets the composer after a successful submission:
// amount and memo are cleared, everything else is kept.
func (s *State) ApplyExpenseSaved() {
	s.Form.Amount = ""
	s.Form.Memo = ""
}

// UserName resolves a member id to its name, or "" when unknown.
func (s *State) UserName(id int64) string {
	for _, u := range s.Users {
		if u.ID == id {
			return u.Name
		}
	}
	return ""
}
