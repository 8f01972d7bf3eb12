package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/bio70000-dotcom/couple-budget/internal/api"
	"github.com/bio70000-dotcom/couple-budget/internal/config"
	"github.com/bio70000-dotcom/couple-budget/internal/ledger"
	"github.com/bio70000-dotcom/couple-budget/internal/state"
	"github.com/bio70000-dotcom/couple-budget/internal/tui/theme"
)

// newExpenseForm builds the expense composer. Fields bind directly to the
// state's form values so date, member, and category survive between
// entries. Validation happens on submit, not per field, to keep the
// fail-fast ordering in one place.
func newExpenseForm(st *state.State, width int) *huh.Form {
	userOpts := make([]huh.Option[int64], 0, len(st.Users))
	for _, u := range st.Users {
		userOpts = append(userOpts, huh.NewOption(u.Name, u.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Value(&st.Form.Date),
			huh.NewSelect[int64]().
				Title("Paid by").
				Options(userOpts...).
				Value(&st.Form.UserID),
			huh.NewSelect[string]().
				Title("Category").
				Options(huh.NewOptions(ledger.Categories...)...).
				Value(&st.Form.Category),
			huh.NewInput().
				Title("Amount").
				Placeholder("35,000").
				Value(&st.Form.Amount),
			huh.NewInput().
				Title("Memo").
				Placeholder("optional").
				Value(&st.Form.Memo),
		).Title("Add expense"),
	)

	return form.WithWidth(width)
}

// newBudgetForm builds the budget editor bound to the state's seeded
// budget input.
func newBudgetForm(st *state.State, width int) *huh.Form {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly budget for " + st.Month.Label()).
				Description("Commas are fine: 1,500,000").
				Value(&st.BudgetInput),
		).Title("Set budget"),
	)

	return form.WithWidth(width)
}

// setupValues holds the first-run setup answers.
type setupValues struct {
	serverURL string
	themeName string
}

// newSetupForm builds the first-run configuration form.
func newSetupForm(vals *setupValues) *huh.Form {
	if vals.serverURL == "" {
		vals.serverURL = api.DefaultBaseURL
	}
	if vals.themeName == "" {
		vals.themeName = theme.Active.Name
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Budget service URL").
				Description("Where the couple-budget service runs").
				Value(&vals.serverURL),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.themeName),
		).Title("Welcome to couple-budget"),
	)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		// The server may have changed; refetch everything.
		return a, tea.Batch(fetchUsersCmd(a.client), a.reload())
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// saveSetupConfig persists the setup answers (best-effort) and applies
// them to the running app.
func (a *App) saveSetupConfig() {
	cfg, _ := config.Load()

	if a.setupVals.serverURL != "" && a.setupVals.serverURL != api.DefaultBaseURL {
		cfg.Server.URL = a.setupVals.serverURL
	}
	if a.setupVals.themeName != "" {
		cfg.Appearance.Theme = a.setupVals.themeName
		theme.SetActive(a.setupVals.themeName)
	}

	_ = config.Save(cfg)

	a.client = api.NewClient(config.ServerURL(cfg))
}
