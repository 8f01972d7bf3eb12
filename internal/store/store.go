// Package store provides the SQLite persistence layer for the bundled
// budget service.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/bio70000-dotcom/couple-budget/internal/api"
	"github.com/bio70000-dotcom/couple-budget/internal/ledger"

	_ "modernc.org/sqlite" // register sqlite driver
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrUnknownUser indicates an expense references a missing user.
	ErrUnknownUser = errors.New("store: unknown user")
)

// defaultUsers are seeded into an empty database so the household has
// members to book expenses against from the first run.
var defaultUsers = []string{"Husband", "Wife"}

// Store provides SQLite-backed budget persistence.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path and ensures the
// schema and default members exist.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.seedUsers(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) seedUsers() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, name := range defaultUsers {
		if _, err := s.db.Exec("INSERT OR IGNORE INTO users (name) VALUES (?)", name); err != nil {
			return fmt.Errorf("seeding users: %w", err)
		}
	}
	return nil
}

// ListUsers returns all members ordered by id.
func (s *Store) ListUsers() ([]api.User, error) {
	rows, err := s.db.Query("SELECT id, name FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	users := []api.User{}
	for rows.Next() {
		var u api.User
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpsertBudget creates or replaces the budget for the month.
func (s *Store) UpsertBudget(m ledger.Month, amount int64) error {
	_, err := s.db.Exec(`INSERT INTO budgets (year, month, amount)
		VALUES (?, ?, ?)
		ON CONFLICT(year, month) DO UPDATE SET amount=excluded.amount`,
		m.Year, m.Month, amount,
	)
	return err
}

// GetBudget returns the month's budget, or ErrNotFound when unset.
func (s *Store) GetBudget(m ledger.Month) (*api.Budget, error) {
	var b api.Budget
	err := s.db.QueryRow(
		"SELECT year, month, amount FROM budgets WHERE year=? AND month=?",
		m.Year, m.Month,
	).Scan(&b.Year, &b.Month, &b.Amount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateExpense inserts an expense and returns the stored record with the
// denormalized user name and assigned id/created_at.
func (s *Store) CreateExpense(in api.ExpenseInput) (*api.Expense, error) {
	var userName string
	err := s.db.QueryRow("SELECT name FROM users WHERE id=?", in.UserID).Scan(&userName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, err
	}

	createdAt := time.Now().Format("2006-01-02T15:04:05")

	res, err := s.db.Exec(`INSERT INTO expenses (date, user_id, category, memo, amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.Date, in.UserID, in.Category, in.Memo, in.Amount, createdAt,
	)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &api.Expense{
		ID:        id,
		Date:      in.Date,
		UserID:    in.UserID,
		UserName:  userName,
		Category:  in.Category,
		Memo:      in.Memo,
		Amount:    in.Amount,
		CreatedAt: createdAt,
	}, nil
}

// ListExpenses returns the month's expenses ordered by date then id.
// userID and category narrow the result when non-zero.
func (s *Store) ListExpenses(m ledger.Month, userID int64, category string) ([]api.Expense, error) {
	start, end := monthWindow(m)

	query := `SELECT e.id, e.date, e.user_id, u.name, e.category, e.memo, e.amount, e.created_at
		FROM expenses e
		JOIN users u ON e.user_id = u.id
		WHERE e.date >= ? AND e.date < ?`
	args := []any{start, end}

	if userID > 0 {
		query += " AND e.user_id = ?"
		args = append(args, userID)
	}
	if category != "" {
		query += " AND e.category = ?"
		args = append(args, category)
	}
	query += " ORDER BY e.date ASC, e.id ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	expenses := []api.Expense{}
	for rows.Next() {
		var e api.Expense
		var memo sql.NullString
		if err := rows.Scan(&e.ID, &e.Date, &e.UserID, &e.UserName, &e.Category, &memo, &e.Amount, &e.CreatedAt); err != nil {
			return nil, err
		}
		if memo.Valid {
			e.Memo = &memo.String
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// DeleteExpense removes an expense, returning ErrNotFound for unknown ids.
func (s *Store) DeleteExpense(id int64) error {
	res, err := s.db.Exec("DELETE FROM expenses WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Summary computes the month aggregate: total spend, per-user totals with
// every member listed (zero included), per-category totals ordered by
// spend, and the budget-derived remain/usage rate when a budget is set.
func (s *Store) Summary(m ledger.Month) (*api.Summary, error) {
	start, end := monthWindow(m)

	sum := &api.Summary{
		Year:       m.Year,
		Month:      m.Month,
		ByUser:     []api.UserTotal{},
		ByCategory: []api.CategoryTotal{},
	}

	var budget sql.NullInt64
	err := s.db.QueryRow(
		"SELECT amount FROM budgets WHERE year=? AND month=?", m.Year, m.Month,
	).Scan(&budget)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	err = s.db.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM expenses
		WHERE date >= ? AND date < ?`, start, end,
	).Scan(&sum.TotalUsed)
	if err != nil {
		return nil, err
	}

	userRows, err := s.db.Query(`SELECT u.name, COALESCE(SUM(e.amount), 0)
		FROM users u
		LEFT JOIN expenses e
		    ON u.id = e.user_id AND e.date >= ? AND e.date < ?
		GROUP BY u.id, u.name
		ORDER BY u.id`, start, end)
	if err != nil {
		return nil, err
	}
	defer func() { _ = userRows.Close() }()

	for userRows.Next() {
		var ut api.UserTotal
		if err := userRows.Scan(&ut.UserName, &ut.TotalUsed); err != nil {
			return nil, err
		}
		sum.ByUser = append(sum.ByUser, ut)
	}
	if err := userRows.Err(); err != nil {
		return nil, err
	}

	catRows, err := s.db.Query(`SELECT category, COALESCE(SUM(amount), 0) AS total_used
		FROM expenses
		WHERE date >= ? AND date < ?
		GROUP BY category
		ORDER BY total_used DESC`, start, end)
	if err != nil {
		return nil, err
	}
	defer func() { _ = catRows.Close() }()

	for catRows.Next() {
		var ct api.CategoryTotal
		if err := catRows.Scan(&ct.Category, &ct.TotalUsed); err != nil {
			return nil, err
		}
		sum.ByCategory = append(sum.ByCategory, ct)
	}
	if err := catRows.Err(); err != nil {
		return nil, err
	}

	if budget.Valid {
		b := budget.Int64
		remain := b - sum.TotalUsed
		sum.Budget = &b
		sum.Remain = &remain
		if b > 0 {
			rate := math.Round(float64(sum.TotalUsed)/float64(b)*1000) / 10
			sum.UsageRate = &rate
		}
	}

	return sum, nil
}

// monthWindow returns the [first-of-month, first-of-next-month) date range.
func monthWindow(m ledger.Month) (start, end string) {
	next := m.Shift(1)
	return fmt.Sprintf("%04d-%02d-01", m.Year, m.Month),
		fmt.Sprintf("%04d-%02d-01", next.Year, next.Month)
}
