package state

import (
	"errors"
	"testing"

	"github.com/bio70000-dotcom/couple-budget/internal/api"
)

func int64p(n int64) *int64 { return &n }

func TestBeginLoadBumpsGeneration(t *testing.T) {
	s := New()

	g1 := s.BeginLoad()
	g2 := s.BeginLoad()
	if g2 != g1+1 {
		t.Fatalf("generations = %d, %d, want consecutive", g1, g2)
	}
	if !s.Loading {
		t.Error("Loading should be true after BeginLoad")
	}
	if s.Generation() != g2 {
		t.Errorf("Generation() = %d, want %d", s.Generation(), g2)
	}
}

func TestApplyLoadInstallsBothTogether(t *testing.T) {
	s := New()
	gen := s.BeginLoad()

	summary := &api.Summary{Year: 2024, Month: 1, TotalUsed: 42000, Budget: int64p(500000)}
	expenses := []api.Expense{{ID: 1, Amount: 42000}}

	if !s.ApplyLoad(gen, summary, expenses) {
		t.Fatal("ApplyLoad rejected a current generation")
	}
	if s.Loading {
		t.Error("Loading should be false after ApplyLoad")
	}
	if s.Summary != summary {
		t.Error("Summary not installed")
	}
	if len(s.Expenses) != 1 {
		t.Errorf("Expenses = %d rows, want 1", len(s.Expenses))
	}
	if s.BudgetInput != "500000" {
		t.Errorf("BudgetInput = %q, want seeded from budget", s.BudgetInput)
	}
}

func TestApplyLoadNoBudgetClearsInput(t *testing.T) {
	s := New()
	s.BudgetInput = "300000"
	gen := s.BeginLoad()

	s.ApplyLoad(gen, &api.Summary{Year: 2024, Month: 2}, nil)
	if s.BudgetInput != "" {
		t.Errorf("BudgetInput = %q, want empty when no budget set", s.BudgetInput)
	}
}

func TestApplyLoadDiscardsStaleGeneration(t *testing.T) {
	s := New()

	stale := s.BeginLoad()
	current := s.BeginLoad()

	old := &api.Summary{Year: 2024, Month: 1, TotalUsed: 111}
	if s.ApplyLoad(stale, old, []api.Expense{{ID: 9}}) {
		t.Fatal("stale generation was applied")
	}
	if s.Summary != nil || len(s.Expenses) != 0 {
		t.Error("stale load mutated the snapshot")
	}
	if !s.Loading {
		t.Error("stale completion must not clear the loading flag")
	}

	fresh := &api.Summary{Year: 2024, Month: 2, TotalUsed: 222}
	if !s.ApplyLoad(current, fresh, nil) {
		t.Fatal("current generation was rejected")
	}
	if s.Summary.TotalUsed != 222 {
		t.Errorf("TotalUsed = %d, want the fresh load", s.Summary.TotalUsed)
	}
}

func TestApplyLoadErrorKeepsData(t *testing.T) {
	s := New()
	gen := s.BeginLoad()
	s.ApplyLoad(gen, &api.Summary{Year: 2024, Month: 1, TotalUsed: 100}, []api.Expense{{ID: 1}})

	gen = s.BeginLoad()
	if !s.ApplyLoadError(gen, errors.New("connection refused")) {
		t.Fatal("ApplyLoadError rejected a current generation")
	}
	if s.LoadErr != "connection refused" {
		t.Errorf("LoadErr = %q", s.LoadErr)
	}
	if s.Summary == nil || len(s.Expenses) != 1 {
		t.Error("a failed load must not discard previously loaded data")
	}
	if s.Loading {
		t.Error("Loading should be false after ApplyLoadError")
	}
}

func TestApplyLoadErrorDiscardsStale(t *testing.T) {
	s := New()
	stale := s.BeginLoad()
	s.BeginLoad()

	if s.ApplyLoadError(stale, errors.New("timeout")) {
		t.Fatal("stale error was applied")
	}
	if s.LoadErr != "" {
		t.Errorf("LoadErr = %q, want empty", s.LoadErr)
	}
}

func TestSetUsersDefaultsComposer(t *testing.T) {
	s := New()
	s.SetUsers([]api.User{{ID: 3, Name: "Husband"}, {ID: 4, Name: "Wife"}})
	if s.Form.UserID != 3 {
		t.Errorf("Form.UserID = %d, want first member", s.Form.UserID)
	}

	// A later refresh must not steal an explicit selection.
	s.Form.UserID = 4
	s.SetUsers([]api.User{{ID: 3, Name: "Husband"}, {ID: 4, Name: "Wife"}})
	if s.Form.UserID != 4 {
		t.Errorf("Form.UserID = %d, selection was overwritten", s.Form.UserID)
	}
}

func TestApplyExpenseSavedKeepsStickyFields(t *testing.T) {
	s := New()
	s.Form.Date = "2024-01-15"
	s.Form.UserID = 2
	s.Form.Category = "cafe"
	s.Form.Memo = "latte"
	s.Form.Amount = "4,500"

	s.ApplyExpenseSaved()

	if s.Form.Amount != "" || s.Form.Memo != "" {
		t.Error("amount and memo should clear after save")
	}
	if s.Form.Date != "2024-01-15" || s.Form.UserID != 2 || s.Form.Category != "cafe" {
		t.Error("date, user, and category should survive a save")
	}
}

func TestUserName(t *testing.T) {
	s := New()
	s.SetUsers([]api.User{{ID: 1, Name: "Husband"}})
	if got := s.UserName(1); got != "Husband" {
		t.Errorf("UserName(1) = %q", got)
	}
	if got := s.UserName(99); got != "" {
		t.Errorf("UserName(99) = %q, want empty", got)
	}
}
