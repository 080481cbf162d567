package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/ajwalsh/piggy/internal/ledger"
)

type HistoryModel struct {
	CommonModel
	svc     *ledger.Service
	ownerID uuid.UUID

	table   table.Model
	txs     []*ledger.Transaction
	goals   map[uuid.UUID]string
	summary ledger.Summary
	stale   bool
	loading bool
	err     error
}

func NewHistoryModel(svc *ledger.Service, ownerID uuid.UUID) HistoryModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 12},
		{Title: "Amount", Width: 14},
		{Title: "Goal", Width: 24},
		{Title: "Description", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return HistoryModel{svc: svc, ownerID: ownerID, table: t, loading: true}
}

func (m HistoryModel) Title() string     { return "Recent Transactions" }
func (m HistoryModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m HistoryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadHistoryMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.txs = msg.txs
		m.goals = msg.goals
		m.summary = msg.summary
		m.stale = msg.stale
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m HistoryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	summary := fmt.Sprintf("This month: %s in, %s out across %d transactions",
		FormatAmount(m.summary.Income),
		FormatAmount(m.summary.Expense),
		m.summary.Count,
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(summary),
		tableView,
	)

	if m.stale {
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("Offline: showing cached history") +
			"\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *HistoryModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			FormatDate(tx.CreatedAt),
			string(tx.Kind),
			FormatAmount(tx.Amount),
			m.goals[tx.GoalID],
			tx.Description,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadHistoryMsg struct {
	txs     []*ledger.Transaction
	goals   map[uuid.UUID]string
	summary ledger.Summary
	stale   bool
	err     error
}

func (m HistoryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		now := time.Now()

		snap, err := m.svc.LoadAll(ctx, m.ownerID)
		if err != nil {
			cached, cacheErr := m.svc.CachedSnapshot(m.ownerID)
			if cacheErr != nil {
				return loadHistoryMsg{err: err}
			}

			snap = cached

			return loadHistoryMsg{
				txs:   snap.RecentTransactions,
				goals: goalNames(snap.Goals),
				stale: true,
			}
		}

		return loadHistoryMsg{
			txs:     snap.RecentTransactions,
			goals:   goalNames(snap.Goals),
			summary: m.svc.MonthlySummary(m.ownerID, now.Month(), now.Year()),
		}
	}
}

func goalNames(goals []*ledger.Goal) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(goals))
	for _, g := range goals {
		names[g.ID] = g.Name
	}

	return names
}
