// Package tui provides the interactive Bubble Tea dashboard for couple-budget.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/bio70000-dotcom/couple-budget/internal/api"
	"github.com/bio70000-dotcom/couple-budget/internal/config"
	"github.com/bio70000-dotcom/couple-budget/internal/ledger"
	"github.com/bio70000-dotcom/couple-budget/internal/state"
	"github.com/bio70000-dotcom/couple-budget/internal/tui/components"
	"github.com/bio70000-dotcom/couple-budget/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"
)

// UsersMsg is sent when the member list fetch completes.
type UsersMsg struct {
	Users []api.User
	Err   error
}

// LoadedMsg is sent when a joint summary+expenses load completes. Gen ties
// the message to the load that issued it so stale completions are dropped.
type LoadedMsg struct {
	Gen      uint64
	Summary  *api.Summary
	Expenses []api.Expense
	Err      error
}

// ExpenseSavedMsg is sent when a create-expense write completes.
type ExpenseSavedMsg struct {
	Err error
}

// BudgetSavedMsg is sent when an upsert-budget write completes.
type BudgetSavedMsg struct {
	Err error
}

// App is the root Bubble Tea model.
type App struct {
	st     *state.State
	client *api.Client

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// notice is a blocking notification (validation failure or write
	// error); any key dismisses it.
	notice string

	// Forms (huh); nil when not open
	expenseForm *huh.Form
	budgetForm  *huh.Form

	// First-run setup
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	// defaultUser preselects the composer's member by name, from config.
	defaultUser string

	// Expenses tab
	expCursor int

	spinner spinner.Model
}

const (
	minTerminalWidth = 70
	maxContentWidth  = 140
	minContentHeight = 5

	requestBudget = 30 * time.Second
)

// NewApp creates the dashboard model.
func NewApp(client *api.Client) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	cfg, _ := config.Load()

	return App{
		st:          state.New(),
		client:      client,
		needSetup:   !config.Exists(),
		defaultUser: cfg.General.DefaultUser,
		spinner:     sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		a.spinner.Tick,
		fetchUsersCmd(a.client),
		a.reload(),
	}
	return tea.Batch(cmds...)
}

// reload begins a new load generation for the selected month.
func (a App) reload() tea.Cmd {
	gen := a.st.BeginLoad()
	return loadMonthCmd(a.client, gen, a.st.Month)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.expenseForm != nil {
			a.expenseForm = a.expenseForm.WithWidth(a.formWidth())
		}
		if a.budgetForm != nil {
			a.budgetForm = a.budgetForm.WithWidth(a.formWidth())
		}
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(a.formWidth())
		}
		return a, nil

	case UsersMsg:
		if msg.Err != nil {
			a.st.ApplyLoadError(a.st.Generation(), msg.Err)
			return a, nil
		}
		a.st.SetUsers(msg.Users)
		if a.defaultUser != "" {
			for _, u := range msg.Users {
				if u.Name == a.defaultUser {
					a.st.Form.UserID = u.ID
					break
				}
			}
		}
		return a, nil

	case LoadedMsg:
		if msg.Err != nil {
			a.st.ApplyLoadError(msg.Gen, msg.Err)
			return a, nil
		}
		a.st.ApplyLoad(msg.Gen, msg.Summary, msg.Expenses)
		a.clampExpenseCursor()

		// Launch first-run setup once the first load settles
		if a.needSetup && a.setupForm == nil {
			a.setupForm = newSetupForm(&a.setupVals)
			return a, a.setupForm.Init()
		}
		return a, nil

	case ExpenseSavedMsg:
		if msg.Err != nil {
			a.notice = msg.Err.Error()
			return a, nil
		}
		a.st.ApplyExpenseSaved()
		return a, a.reload()

	case BudgetSavedMsg:
		if msg.Err != nil {
			a.notice = msg.Err.Error()
			return a, nil
		}
		return a, a.reload()

	case spinner.TickMsg:
		if a.st.Loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	// Forward unhandled messages to an open form (cursor blinks, etc.)
	if f := a.openForm(); f != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global: quit
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// Blocking notice: any key dismisses
	if a.notice != "" {
		a.notice = ""
		return a, nil
	}

	// Forms intercept all keys while open
	if a.openForm() != nil {
		return a.updateForm(msg)
	}

	// Help toggle / dismiss
	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit

	case "left", "h":
		a.st.ShiftMonth(-1)
		return a, a.reload()

	case "right", "l":
		a.st.ShiftMonth(1)
		return a, a.reload()

	case "r":
		return a, a.reload()

	case "a":
		if len(a.st.Users) == 0 {
			a.notice = "members not loaded yet"
			return a, nil
		}
		a.expenseForm = newExpenseForm(a.st, a.formWidth())
		return a, a.expenseForm.Init()

	case "b":
		a.budgetForm = newBudgetForm(a.st, a.formWidth())
		return a, a.budgetForm.Init()

	case "o":
		a.activeTab = 0
	case "e":
		a.activeTab = 1
	case "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)

	case "j", "down":
		if a.activeTab == 1 && a.expCursor < len(a.st.Expenses)-1 {
			a.expCursor++
		}
	case "k", "up":
		if a.activeTab == 1 && a.expCursor > 0 {
			a.expCursor--
		}
	case "g":
		if a.activeTab == 1 {
			a.expCursor = 0
		}
	case "G":
		if a.activeTab == 1 {
			a.expCursor = len(a.st.Expenses) - 1
			if a.expCursor < 0 {
				a.expCursor = 0
			}
		}
	}
	return a, nil
}

func (a App) openForm() *huh.Form {
	switch {
	case a.setupForm != nil:
		return a.setupForm
	case a.expenseForm != nil:
		return a.expenseForm
	case a.budgetForm != nil:
		return a.budgetForm
	}
	return nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch {
	case a.setupForm != nil:
		return a.updateSetupForm(msg)
	case a.expenseForm != nil:
		return a.updateExpenseForm(msg)
	case a.budgetForm != nil:
		return a.updateBudgetForm(msg)
	}
	return a, nil
}

func (a App) updateExpenseForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.expenseForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.expenseForm = f
	}

	switch a.expenseForm.State {
	case huh.StateCompleted:
		a.expenseForm = nil
		draft, err := a.st.Form.Validate()
		if err != nil {
			// Blocking validation notice; no network call is made.
			a.notice = err.Error()
			return a, nil
		}
		return a, createExpenseCmd(a.client, draft)

	case huh.StateAborted:
		a.expenseForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) updateBudgetForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.budgetForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.budgetForm = f
	}

	switch a.budgetForm.State {
	case huh.StateCompleted:
		a.budgetForm = nil
		amount, err := ledger.ParseAmount(a.st.BudgetInput)
		if err != nil {
			a.notice = err.Error()
			return a, nil
		}
		return a, upsertBudgetCmd(a.client, a.st.Month, amount)

	case huh.StateAborted:
		a.budgetForm = nil
		return a, nil
	}

	return a, cmd
}

func (a *App) clampExpenseCursor() {
	if a.expCursor >= len(a.st.Expenses) {
		a.expCursor = len(a.st.Expenses) - 1
	}
	if a.expCursor < 0 {
		a.expCursor = 0
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) formWidth() int {
	w := a.contentWidth() - 8
	if w < 40 {
		w = 40
	}
	return w
}

// ─── Commands ───────────────────────────────────────────────────

// fetchUsersCmd fetches the member list in a background goroutine.
func fetchUsersCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestBudget)
		defer cancel()

		users, err := client.ListUsers(ctx)
		return UsersMsg{Users: users, Err: err}
	}
}

// loadMonthCmd fetches summary and expenses concurrently and joins them
// into a single message. Either failure fails the whole load; no partial
// result is ever delivered.
func loadMonthCmd(client *api.Client, gen uint64, m ledger.Month) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestBudget)
		defer cancel()

		var (
			summary  *api.Summary
			expenses []api.Expense
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			s, err := client.GetSummary(gctx, m)
			if err != nil {
				return err
			}
			summary = s
			return nil
		})
		g.Go(func() error {
			e, err := client.ListExpenses(gctx, m, api.ExpenseFilter{})
			if err != nil {
				return err
			}
			expenses = e
			return nil
		})

		if err := g.Wait(); err != nil {
			return LoadedMsg{Gen: gen, Err: err}
		}
		return LoadedMsg{Gen: gen, Summary: summary, Expenses: expenses}
	}
}

// createExpenseCmd submits a validated expense draft.
func createExpenseCmd(client *api.Client, draft ledger.ExpenseDraft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestBudget)
		defer cancel()

		_, err := client.CreateExpense(ctx, api.ExpenseInput{
			Date:     draft.Date,
			UserID:   draft.UserID,
			Category: draft.Category,
			Memo:     draft.Memo,
			Amount:   draft.Amount,
		})
		return ExpenseSavedMsg{Err: err}
	}
}

// upsertBudgetCmd sets the month budget.
func upsertBudgetCmd(client *api.Client, m ledger.Month, amount int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestBudget)
		defer cancel()

		err := client.UpsertBudget(ctx, m, amount)
		return BudgetSavedMsg{Err: err}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
