// Package server implements the couple-budget HTTP service over the
// SQLite store.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/bio70000-dotcom/couple-budget/internal/api"
	"github.com/bio70000-dotcom/couple-budget/internal/ledger"
	"github.com/bio70000-dotcom/couple-budget/internal/store"
)

// Server holds the HTTP handlers for the budget service.
type Server struct {
	store *store.Store
}

// New creates a server over the given store.
func New(st *store.Store) *Server {
	return &Server{store: st}
}

// Handler returns the full route set with CORS and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", s.handleListUsers)
	mux.HandleFunc("GET /summary", s.handleSummary)
	mux.HandleFunc("GET /expenses", s.handleListExpenses)
	mux.HandleFunc("POST /expenses", s.handleCreateExpense)
	mux.HandleFunc("DELETE /expenses/{id}", s.handleDeleteExpense)
	mux.HandleFunc("GET /budget", s.handleGetBudget)
	mux.HandleFunc("POST /budget", s.handleSetBudget)

	return loggingMiddleware(withCORS(mux))
}

// ListenAndServe runs the service on the given address until it fails.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	m, err := parseMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sum, err := s.store.Summary(m)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	m, err := parseMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var userID int64
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		userID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "user_id must be an integer")
			return
		}
	}
	category := r.URL.Query().Get("category")

	expenses, err := s.store.ListExpenses(m, userID, category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var in api.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if !ledger.ValidCategory(in.Category) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown category %q", in.Category))
		return
	}
	if in.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	expense, err := s.store.CreateExpense(in)
	if errors.Is(err, store.ErrUnknownUser) {
		writeError(w, http.StatusBadRequest, "unknown user")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}

	err = s.store.DeleteExpense(id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	m, err := parseMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := s.store.GetBudget(m)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no budget set for this month")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var b api.Budget
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	m := ledger.Month{Year: b.Year, Month: b.Month}
	if !m.Valid() {
		writeError(w, http.StatusBadRequest, "year and month must denote a calendar month")
		return
	}
	if b.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	if err := s.store.UpsertBudget(m, b.Amount); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseMonth reads the year/month query parameters.
func parseMonth(r *http.Request) (ledger.Month, error) {
	q := r.URL.Query()

	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		return ledger.Month{}, errors.New("year must be an integer")
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		return ledger.Month{}, errors.New("month must be an integer")
	}

	m := ledger.Month{Year: year, Month: month}
	if !m.Valid() {
		return ledger.Month{}, errors.New("year and month must denote a calendar month")
	}
	return m, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

// writeError sends a plain-text error body; clients surface it verbatim.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}
