package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bio70000-dotcom/couple-budget/internal/ledger"
)

func testMonth() ledger.Month {
	return ledger.Month{Year: 2024, Month: 1}
}

func TestNewClientNormalizesBaseURL(t *testing.T) {
	c := NewClient(" http://budget.local:8000/ ")
	if c.BaseURL() != "http://budget.local:8000" {
		t.Errorf("BaseURL() = %q, want trimmed", c.BaseURL())
	}

	c = NewClient("")
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want default", c.BaseURL())
	}
}

func TestGetSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/summary" {
			t.Errorf("path = %q, want /summary", r.URL.Path)
		}
		if r.URL.Query().Get("year") != "2024" || r.URL.Query().Get("month") != "1" {
			t.Errorf("query = %v, want year=2024 month=1", r.URL.Query())
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"year": 2024, "month": 1,
			"budget": 500000, "total_used": 120000,
			"remain": 380000, "usage_rate": 24.0,
			"by_user": [{"user_name":"Husband","total_used":80000},{"user_name":"Wife","total_used":40000}],
			"by_category": [{"category":"food","total_used":120000}]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	s, err := c.GetSummary(context.Background(), testMonth())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Budget == nil || *s.Budget != 500000 {
		t.Errorf("Budget = %v, want 500000", s.Budget)
	}
	if s.TotalUsed != 120000 {
		t.Errorf("TotalUsed = %d, want 120000", s.TotalUsed)
	}
	if s.Remain == nil || *s.Remain != 380000 {
		t.Errorf("Remain = %v, want 380000", s.Remain)
	}
	if s.UsageRate == nil || *s.UsageRate != 24.0 {
		t.Errorf("UsageRate = %v, want 24.0", s.UsageRate)
	}
	if len(s.ByUser) != 2 || s.ByUser[0].UserName != "Husband" {
		t.Errorf("ByUser = %v", s.ByUser)
	}
}

func TestGetSummaryNoBudgetNulls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"year":2024,"month":1,"budget":null,"total_used":0,"remain":null,"usage_rate":null,"by_user":[],"by_category":[]}`))
	}))
	defer srv.Close()

	s, err := NewClient(srv.URL).GetSummary(context.Background(), testMonth())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Budget != nil || s.Remain != nil || s.UsageRate != nil {
		t.Error("budget, remain, and usage_rate should all be nil when unset")
	}
}

func TestListExpensesFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("user_id") != "2" {
			t.Errorf("user_id = %q, want 2", q.Get("user_id"))
		}
		if q.Get("category") != "cafe" {
			t.Errorf("category = %q, want cafe", q.Get("category"))
		}
		w.Write([]byte(`[{"id":7,"date":"2024-01-05","user_id":2,"user_name":"Wife","category":"cafe","memo":null,"amount":4500,"created_at":"2024-01-05T09:30:00"}]`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).ListExpenses(context.Background(), testMonth(), ExpenseFilter{UserID: 2, Category: "cafe"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 7 || got[0].Memo != nil {
		t.Errorf("expenses = %+v", got)
	}
}

func TestCreateExpense(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/expenses" {
			t.Errorf("%s %s, want POST /expenses", r.Method, r.URL.Path)
		}
		var in ExpenseInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if in.Amount != 35000 || in.Category != "food" {
			t.Errorf("payload = %+v", in)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Expense{
			ID: 11, Date: in.Date, UserID: in.UserID, UserName: "Husband",
			Category: in.Category, Memo: in.Memo, Amount: in.Amount,
			CreatedAt: "2024-01-15T12:00:00",
		})
	}))
	defer srv.Close()

	memo := "groceries"
	created, err := NewClient(srv.URL).CreateExpense(context.Background(), ExpenseInput{
		Date: "2024-01-15", UserID: 1, Category: "food", Memo: &memo, Amount: 35000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 11 || created.UserName != "Husband" {
		t.Errorf("created = %+v", created)
	}
}

func TestGetBudgetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no budget set for this month", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetBudget(context.Background(), testMonth())
	if !errors.Is(err, ErrNoBudget) {
		t.Fatalf("err = %v, want ErrNoBudget", err)
	}
}

func TestDeleteExpense(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/expenses/42" {
			t.Errorf("%s %s, want DELETE /expenses/42", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).DeleteExpense(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestServiceErrorUsesBodyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid category", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ListUsers(context.Background())
	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *ServiceError", err)
	}
	if se.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", se.Status)
	}
	if se.Message != "invalid category" {
		t.Errorf("Message = %q, want body text", se.Message)
	}
}

func TestServiceErrorEmptyBodyFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ListUsers(context.Background())
	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *ServiceError", err)
	}
	if se.Message == "" {
		t.Error("Message should fall back to the status line")
	}
}
