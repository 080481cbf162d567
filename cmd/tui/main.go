package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/ajwalsh/piggy/cmd/tui/internal/view"
	"github.com/ajwalsh/piggy/internal/cache"
	"github.com/ajwalsh/piggy/internal/config"
	"github.com/ajwalsh/piggy/internal/database"
	"github.com/ajwalsh/piggy/internal/ledger"
	ledgerStore "github.com/ajwalsh/piggy/internal/ledger/store"
	"github.com/ajwalsh/piggy/internal/onboarding"
)

type model struct {
	ledgerService     *ledger.Service
	onboardingService *onboarding.Service
	ownerID           uuid.UUID

	currentView View

	dashboardView  view.DashboardModel
	goalFormView   view.GoalFormModel
	txFormView     view.TxFormModel
	historyView    view.HistoryModel
	onboardingView view.OnboardingModel
}

type View int

const (
	ViewMenu       View = 0
	ViewDashboard  View = 1
	ViewGoalForm   View = 2
	ViewTxForm     View = 3
	ViewHistory    View = 4
	ViewOnboarding View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ownerID, err := uuid.Parse(cfg.TUI.OwnerID)
	if err != nil {
		slog.Error("OWNER_ID must be a valid uuid", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	localCache, err := cache.New(afero.NewOsFs(), cfg.Cache.Dir)
	if err != nil {
		slog.Error("failed to open local cache", "error", err)
		os.Exit(1)
	}

	ledgerSvc := ledger.NewService(ledgerStore.New(db), localCache, cfg.Ledger.RecentLimit)
	onboardingSvc := onboarding.NewService(localCache)

	m := model{
		ledgerService:     ledgerSvc,
		onboardingService: onboardingSvc,
		ownerID:           ownerID,
		currentView:       ViewMenu,
		dashboardView:     view.NewDashboardModel(ledgerSvc, ownerID),
		goalFormView:      view.NewGoalFormModel(ledgerSvc, ownerID),
		txFormView:        view.NewTxFormModel(ledgerSvc, ownerID),
		historyView:       view.NewHistoryModel(ledgerSvc, ownerID),
		onboardingView:    view.NewOnboardingModel(onboardingSvc, ownerID),
	}

	// A fresh account lands in the setup wizard, not the menu.
	if onboarding.DecidePostAuthRoute(localCache, ownerID) == onboarding.RouteOnboarding {
		m.currentView = ViewOnboarding
	}

	return m
}

func (m model) Init() tea.Cmd {
	if m.currentView == ViewOnboarding {
		return m.onboardingView.Init()
	}

	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.ledgerService, m.ownerID)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewGoalForm
				m.goalFormView = view.NewGoalFormModel(m.ledgerService, m.ownerID)

				return m, m.goalFormView.Init()
			case "3":
				m.currentView = ViewTxForm
				m.txFormView = view.NewTxFormModel(m.ledgerService, m.ownerID)

				return m, m.txFormView.Init()
			case "4":
				m.currentView = ViewHistory
				m.historyView = view.NewHistoryModel(m.ledgerService, m.ownerID)

				return m, m.historyView.Init()
			case "5":
				m.currentView = ViewOnboarding
				m.onboardingView = view.NewOnboardingModel(m.onboardingService, m.ownerID)

				return m, m.onboardingView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewGoalForm:
		var newModel tea.Model
		newModel, cmd = m.goalFormView.Update(msg)
		m.goalFormView = newModel.(view.GoalFormModel)
	case ViewTxForm:
		var newModel tea.Model
		newModel, cmd = m.txFormView.Update(msg)
		m.txFormView = newModel.(view.TxFormModel)
	case ViewHistory:
		var newModel tea.Model
		newModel, cmd = m.historyView.Update(msg)
		m.historyView = newModel.(view.HistoryModel)
	case ViewOnboarding:
		var newModel tea.Model
		newModel, cmd = m.onboardingView.Update(msg)
		m.onboardingView = newModel.(view.OnboardingModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Piggy\n\n" +
				"1. Dashboard\n" +
				"2. New Goal\n" +
				"3. Record Transaction\n" +
				"4. Recent Transactions\n" +
				"5. Setup\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewGoalForm:
		return m.goalFormView.View()
	case ViewTxForm:
		return m.txFormView.View()
	case ViewHistory:
		return m.historyView.View()
	case ViewOnboarding:
		return m.onboardingView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
