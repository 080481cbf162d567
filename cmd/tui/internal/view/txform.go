package view

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/ajwalsh/piggy/internal/ledger"
)

type txFormState int

const (
	txFormStateLoading txFormState = iota
	txFormStateForm
	txFormStateSaving
)

type TxFormModel struct {
	CommonModel
	svc     *ledger.Service
	ownerID uuid.UUID

	state  txFormState
	form   *huh.Form
	goals  []*ledger.Goal
	status string

	// Form field bindings
	formGoalID uuid.UUID
	formKind   ledger.Kind
	formAmount string
	formDesc   string
}

func NewTxFormModel(svc *ledger.Service, ownerID uuid.UUID) TxFormModel {
	return TxFormModel{svc: svc, ownerID: ownerID, state: txFormStateLoading, formKind: ledger.KindDeposit}
}

func (m TxFormModel) Title() string { return "Record Transaction" }
func (m TxFormModel) ShortHelp() string {
	if m.state == txFormStateForm {
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back"
}

func (m TxFormModel) Init() tea.Cmd {
	return m.loadGoalsCmd()
}

func (m TxFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case txGoalsLoadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		if len(msg.goals) == 0 {
			m.status = "No goals to record against. Create a goal first."
			return m, nil
		}

		m.goals = msg.goals

		return m.buildForm()

	case txSavedMsg:
		if msg.err != nil {
			m.status = txErrorMessage(msg.err)
			return m.buildForm()
		}

		return m, Back

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.state != txFormStateForm || m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = txFormStateSaving

	return m, m.saveCmd()
}

func (m TxFormModel) buildForm() (tea.Model, tea.Cmd) {
	goalOptions := make([]huh.Option[uuid.UUID], len(m.goals))
	for i, g := range m.goals {
		label := fmt.Sprintf("%s (%s of %s)", g.Name, FormatAmount(g.CurrentAmount), FormatAmount(g.TargetAmount))
		goalOptions[i] = huh.NewOption(label, g.ID)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Key("goal_id").
				Title("Goal").
				Options(goalOptions...).
				Value(&m.formGoalID),

			huh.NewSelect[ledger.Kind]().
				Key("kind").
				Title("Type").
				Options(
					huh.NewOption("Deposit", ledger.KindDeposit),
					huh.NewOption("Withdrawal", ledger.KindWithdrawal),
				).
				Value(&m.formKind),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("1000").
				Value(&m.formAmount).
				Validate(func(s string) error {
					_, err := ParseAmount(s)
					return err
				}),

			huh.NewInput().
				Key("description").
				Title("Description (optional)").
				Value(&m.formDesc),
		),
	).WithWidth(60).WithShowHelp(false)

	m.state = txFormStateForm

	return m, m.form.Init()
}

func (m TxFormModel) View() string {
	switch m.state {
	case txFormStateLoading:
		if m.status != "" {
			return lipgloss.NewStyle().Padding(2).Render(m.status)
		}

		return lipgloss.NewStyle().Padding(2).Render("Loading goals...")

	case txFormStateSaving:
		return lipgloss.NewStyle().Padding(2).Render("Recording transaction...")
	}

	content := m.form.View()
	if m.status != "" {
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// txErrorMessage translates ledger errors into something a person at a
// terminal can act on.
func txErrorMessage(err error) string {
	var (
		insufficient *ledger.InsufficientFundsError
		partial      *ledger.PartialFailureError
		unavailable  *ledger.RemoteUnavailableError
	)

	switch {
	case errors.As(err, &insufficient):
		return fmt.Sprintf("Not enough saved: only %s available.", FormatAmount(insufficient.Available))
	case errors.As(err, &partial):
		return "Transaction recorded, but the goal balance could not be updated. It will show as pending sync."
	case errors.As(err, &unavailable):
		return "Remote store unreachable. Try again later."
	}

	return fmt.Sprintf("Error: %v", err)
}

// Messages

type txGoalsLoadedMsg struct {
	goals []*ledger.Goal
	err   error
}

func (m TxFormModel) loadGoalsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		snap, err := m.svc.LoadAll(ctx, m.ownerID)
		if err != nil {
			return txGoalsLoadedMsg{err: err}
		}

		return txGoalsLoadedMsg{goals: snap.Goals}
	}
}

type txSavedMsg struct {
	err error
}

func (m TxFormModel) saveCmd() tea.Cmd {
	goalID, _ := m.form.Get("goal_id").(uuid.UUID)
	kind, _ := m.form.Get("kind").(ledger.Kind)
	amountStr := m.form.GetString("amount")
	desc := m.form.GetString("description")

	return func() tea.Msg {
		amount, err := ParseAmount(amountStr)
		if err != nil {
			return txSavedMsg{err: fmt.Errorf("amount: %w", err)}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		_, _, err = m.svc.RecordTransaction(ctx, m.ownerID, goalID, kind, amount, desc)

		return txSavedMsg{err: err}
	}
}
