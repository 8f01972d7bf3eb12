package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/bio70000-dotcom/couple-budget/internal/api"
	"github.com/bio70000-dotcom/couple-budget/internal/ledger"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "budget.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func addExpense(t *testing.T, s *Store, date string, userID int64, category string, amount int64) *api.Expense {
	t.Helper()
	e, err := s.CreateExpense(api.ExpenseInput{
		Date: date, UserID: userID, Category: category, Amount: amount,
	})
	if err != nil {
		t.Fatalf("creating expense: %v", err)
	}
	return e
}

func TestOpenSeedsDefaultUsers(t *testing.T) {
	s := openTestStore(t)

	users, err := s.ListUsers()
	if err != nil {
		t.Fatalf("listing users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2 seeded members", len(users))
	}
	if users[0].Name != "Husband" || users[1].Name != "Wife" {
		t.Errorf("users = %v", users)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "budget.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	users, err := s2.ListUsers()
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 {
		t.Errorf("got %d users after reopen, want 2 (no reseed)", len(users))
	}
}

func TestBudgetUpsert(t *testing.T) {
	s := openTestStore(t)
	m := ledger.Month{Year: 2024, Month: 1}

	if _, err := s.GetBudget(m); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound before any upsert", err)
	}

	if err := s.UpsertBudget(m, 500000); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.UpsertBudget(m, 600000); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	b, err := s.GetBudget(m)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if b.Amount != 600000 {
		t.Errorf("Amount = %d, want the replaced value 600000", b.Amount)
	}
	if b.Year != 2024 || b.Month != 1 {
		t.Errorf("budget month = %d-%d", b.Year, b.Month)
	}

	// Different month is a separate record.
	if _, err := s.GetBudget(ledger.Month{Year: 2024, Month: 2}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for untouched month", err)
	}
}

func TestCreateExpense(t *testing.T) {
	s := openTestStore(t)

	memo := "groceries"
	e, err := s.CreateExpense(api.ExpenseInput{
		Date: "2024-01-15", UserID: 1, Category: "food", Memo: &memo, Amount: 35000,
	})
	if err != nil {
		t.Fatalf("creating: %v", err)
	}
	if e.ID == 0 {
		t.Error("ID not assigned")
	}
	if e.UserName != "Husband" {
		t.Errorf("UserName = %q, want denormalized name", e.UserName)
	}
	if e.CreatedAt == "" {
		t.Error("CreatedAt not set")
	}
}

func TestCreateExpenseUnknownUser(t *testing.T) {
	s := openTestStore(t)

	_, err := s.CreateExpense(api.ExpenseInput{
		Date: "2024-01-15", UserID: 99, Category: "food", Amount: 1000,
	})
	if !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("err = %v, want ErrUnknownUser", err)
	}
}

func TestListExpensesMonthWindow(t *testing.T) {
	s := openTestStore(t)

	addExpense(t, s, "2023-12-31", 1, "food", 100)
	in1 := addExpense(t, s, "2024-01-01", 1, "food", 200)
	in2 := addExpense(t, s, "2024-01-31", 2, "cafe", 300)
	addExpense(t, s, "2024-02-01", 1, "food", 400)

	got, err := s.ListExpenses(ledger.Month{Year: 2024, Month: 1}, 0, "")
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d expenses, want 2 inside the month", len(got))
	}
	if got[0].ID != in1.ID || got[1].ID != in2.ID {
		t.Errorf("order = %d, %d, want date ascending", got[0].ID, got[1].ID)
	}
}

func TestListExpensesFilters(t *testing.T) {
	s := openTestStore(t)
	m := ledger.Month{Year: 2024, Month: 1}

	addExpense(t, s, "2024-01-05", 1, "food", 100)
	addExpense(t, s, "2024-01-06", 2, "food", 200)
	addExpense(t, s, "2024-01-07", 2, "cafe", 300)

	byUser, err := s.ListExpenses(m, 2, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(byUser) != 2 {
		t.Errorf("user filter: got %d, want 2", len(byUser))
	}

	both, err := s.ListExpenses(m, 2, "cafe")
	if err != nil {
		t.Fatal(err)
	}
	if len(both) != 1 || both[0].Amount != 300 {
		t.Errorf("combined filter: %v", both)
	}
}

func TestDeleteExpense(t *testing.T) {
	s := openTestStore(t)
	e := addExpense(t, s, "2024-01-10", 1, "food", 500)

	if err := s.DeleteExpense(e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteExpense(e.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestSummaryWithBudget(t *testing.T) {
	s := openTestStore(t)
	m := ledger.Month{Year: 2024, Month: 1}

	if err := s.UpsertBudget(m, 500000); err != nil {
		t.Fatal(err)
	}
	addExpense(t, s, "2024-01-05", 1, "food", 80000)
	addExpense(t, s, "2024-01-10", 2, "cafe", 30000)
	addExpense(t, s, "2024-01-15", 1, "cafe", 15000)
	addExpense(t, s, "2024-02-01", 1, "food", 99999) // outside the window

	sum, err := s.Summary(m)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if sum.TotalUsed != 125000 {
		t.Errorf("TotalUsed = %d, want 125000", sum.TotalUsed)
	}
	if sum.Budget == nil || *sum.Budget != 500000 {
		t.Errorf("Budget = %v, want 500000", sum.Budget)
	}
	if sum.Remain == nil || *sum.Remain != 375000 {
		t.Errorf("Remain = %v, want budget minus total", sum.Remain)
	}
	if sum.UsageRate == nil || *sum.UsageRate != 25.0 {
		t.Errorf("UsageRate = %v, want 25.0", sum.UsageRate)
	}

	// Per-user totals list every member and sum to the grand total.
	if len(sum.ByUser) != 2 {
		t.Fatalf("ByUser = %v, want both members", sum.ByUser)
	}
	var userSum int64
	for _, ut := range sum.ByUser {
		userSum += ut.TotalUsed
	}
	if userSum != sum.TotalUsed {
		t.Errorf("per-user sum = %d, want %d", userSum, sum.TotalUsed)
	}

	// Categories ordered by spend, highest first.
	if len(sum.ByCategory) != 2 {
		t.Fatalf("ByCategory = %v", sum.ByCategory)
	}
	if sum.ByCategory[0].Category != "food" || sum.ByCategory[0].TotalUsed != 80000 {
		t.Errorf("top category = %+v, want food 80000", sum.ByCategory[0])
	}
	if sum.ByCategory[1].Category != "cafe" || sum.ByCategory[1].TotalUsed != 45000 {
		t.Errorf("second category = %+v, want cafe 45000", sum.ByCategory[1])
	}
}

func TestSummaryUsageRateRounding(t *testing.T) {
	s := openTestStore(t)
	m := ledger.Month{Year: 2024, Month: 3}

	if err := s.UpsertBudget(m, 30000); err != nil {
		t.Fatal(err)
	}
	addExpense(t, s, "2024-03-01", 1, "food", 10000)

	sum, err := s.Summary(m)
	if err != nil {
		t.Fatal(err)
	}
	// 10000/30000 = 33.333..., rounded to one decimal place.
	if sum.UsageRate == nil || *sum.UsageRate != 33.3 {
		t.Errorf("UsageRate = %v, want 33.3", sum.UsageRate)
	}
}

func TestSummaryWithoutBudget(t *testing.T) {
	s := openTestStore(t)
	m := ledger.Month{Year: 2024, Month: 1}

	addExpense(t, s, "2024-01-05", 1, "food", 10000)

	sum, err := s.Summary(m)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Budget != nil || sum.Remain != nil || sum.UsageRate != nil {
		t.Error("budget-derived fields should be nil with no budget set")
	}
	if sum.TotalUsed != 10000 {
		t.Errorf("TotalUsed = %d, want 10000", sum.TotalUsed)
	}
}

func TestSummaryEmptyMonth(t *testing.T) {
	s := openTestStore(t)

	sum, err := s.Summary(ledger.Month{Year: 2024, Month: 6})
	if err != nil {
		t.Fatal(err)
	}
	if sum.TotalUsed != 0 {
		t.Errorf("TotalUsed = %d, want 0", sum.TotalUsed)
	}
	if len(sum.ByUser) != 2 {
		t.Fatalf("ByUser = %v, want both members at zero", sum.ByUser)
	}
	for _, ut := range sum.ByUser {
		if ut.TotalUsed != 0 {
			t.Errorf("%s total = %d, want 0", ut.UserName, ut.TotalUsed)
		}
	}
	if len(sum.ByCategory) != 0 {
		t.Errorf("ByCategory = %v, want empty", sum.ByCategory)
	}
}

func TestMonthWindowDecemberRollsYear(t *testing.T) {
	start, end := monthWindow(ledger.Month{Year: 2024, Month: 12})
	if start != "2024-12-01" || end != "2025-01-01" {
		t.Errorf("window = [%s, %s)", start, end)
	}
}
