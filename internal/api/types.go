package api

// User is a household member. Identity is owned by the service.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Expense is a single ledger entry as returned by the service.
// Date and CreatedAt are kept as the service's strings (ISO date and
// timestamp); the client never parses them into time values.
type Expense struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	UserID    int64   `json:"user_id"`
	UserName  string  `json:"user_name"`
	Category  string  `json:"category"`
	Memo      *string `json:"memo"`
	Amount    int64   `json:"amount"`
	CreatedAt string  `json:"created_at"`
}

// ExpenseInput is the create-expense payload. The service assigns id,
// user_name, and created_at.
type ExpenseInput struct {
	Date     string  `json:"date"`
	UserID   int64   `json:"user_id"`
	Category string  `json:"category"`
	Memo     *string `json:"memo,omitempty"`
	Amount   int64   `json:"amount"`
}

// Budget is the monthly budget record, one per (year, month).
type Budget struct {
	Year   int   `json:"year"`
	Month  int   `json:"month"`
	Amount int64 `json:"amount"`
}

// UserTotal is one row of the summary's per-user breakdown.
type UserTotal struct {
	UserName  string `json:"user_name"`
	TotalUsed int64  `json:"total_used"`
}

// CategoryTotal is one row of the summary's per-category breakdown.
type CategoryTotal struct {
	Category  string `json:"category"`
	TotalUsed int64  `json:"total_used"`
}

// Summary is the server-computed monthly aggregate. Remain and UsageRate
// are present exactly when Budget is.
type Summary struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Budget     *int64          `json:"budget"`
	TotalUsed  int64           `json:"total_used"`
	Remain     *int64          `json:"remain"`
	UsageRate  *float64        `json:"usage_rate"`
	ByUser     []UserTotal     `json:"by_user"`
	ByCategory []CategoryTotal `json:"by_category"`
}
