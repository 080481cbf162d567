package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/ajwalsh/piggy/internal/ledger"
)

type DashboardModel struct {
	CommonModel
	svc     *ledger.Service
	ownerID uuid.UUID

	snap     *ledger.Snapshot
	overview ledger.Overview
	stale    bool
	loading  bool
	err      error
}

func NewDashboardModel(svc *ledger.Service, ownerID uuid.UUID) DashboardModel {
	return DashboardModel{svc: svc, ownerID: ownerID, loading: true}
}

func (m DashboardModel) Title() string { return "Dashboard" }
func (m DashboardModel) ShortHelp() string {
	return "Esc: back | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDashboardMsg:
		m.loading = false
		m.snap = msg.snap
		m.overview = msg.overview
		m.stale = msg.stale
		m.err = msg.err

		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

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

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	var b strings.Builder

	b.WriteString(m.overviewView())
	b.WriteString("\n\n")

	if len(m.snap.Goals) == 0 {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("No goals yet. Create one from the menu."))
	}

	for _, g := range m.snap.Goals {
		b.WriteString(goalCard(g))
		b.WriteString("\n")
	}

	if m.stale {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(
			fmt.Sprintf("Offline: showing data cached at %s", m.snap.CachedAt.Format("2006-01-02 15:04")),
		))
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

func (m DashboardModel) overviewView() string {
	next := "-"
	if m.overview.NextDeadline != nil {
		next = FormatDate(*m.overview.NextDeadline)
	}

	cards := []string{
		overviewCard("Total Saved", FormatAmount(m.overview.TotalSaved)),
		overviewCard("Goals", fmt.Sprintf("%d", m.overview.TotalGoals)),
		overviewCard("Completed", fmt.Sprintf("%d", m.overview.CompletedGoals)),
		overviewCard("Next Deadline", next),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func overviewCard(label, value string) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 2).
		Render(
			lipgloss.NewStyle().Faint(true).Render(label) + "\n" +
				lipgloss.NewStyle().Bold(true).Render(value),
		)
}

func goalCard(g *ledger.Goal) string {
	pct := ledger.GoalProgress(g)

	title := g.Name
	if g.IsCompleted {
		title += "  " + lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("✔ completed")
	}

	if g.BalanceStale {
		title += "  " + lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("balance pending sync")
	}

	deadline := ""
	if g.Deadline != nil {
		deadline = "  |  by " + FormatDate(*g.Deadline)
	}

	body := fmt.Sprintf("%s\n%s  %s of %s (%.0f%%)%s",
		title,
		progressBar(pct, 30),
		FormatAmount(g.CurrentAmount),
		FormatAmount(g.TargetAmount),
		pct,
		deadline,
	)

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(goalColor(g))).
		Padding(0, 1).
		Width(70).
		Render(body)
}

func goalColor(g *ledger.Goal) string {
	if g.Color != "" {
		return g.Color
	}

	return ledger.DefaultColor
}

func progressBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	filled = min(width, max(0, filled))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	return lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Render(bar)
}

// Messages

type loadDashboardMsg struct {
	snap     *ledger.Snapshot
	overview ledger.Overview
	stale    bool
	err      error
}

// loadCmd fetches the live snapshot; when the remote store is down it falls
// back to the last cached projection and flags the view stale.
func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		snap, err := m.svc.LoadAll(ctx, m.ownerID)
		if err == nil {
			return loadDashboardMsg{snap: snap, overview: m.svc.Overview(m.ownerID)}
		}

		cached, cacheErr := m.svc.CachedSnapshot(m.ownerID)
		if cacheErr != nil {
			return loadDashboardMsg{err: err}
		}

		return loadDashboardMsg{snap: cached, overview: overviewOf(cached), stale: true}
	}
}

func overviewOf(snap *ledger.Snapshot) ledger.Overview {
	ov := ledger.Overview{TotalGoals: len(snap.Goals)}
	for _, g := range snap.Goals {
		ov.TotalSaved = ov.TotalSaved.Add(g.CurrentAmount)
		if g.IsCompleted {
			ov.CompletedGoals++
		}
	}

	if next, ok := ledger.NextDeadline(snap.Goals); ok {
		ov.NextDeadline = &next
	}

	return ov
}
