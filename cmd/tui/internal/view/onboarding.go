package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/ajwalsh/piggy/internal/onboarding"
)

type onboardingState int

const (
	onboardingStateFigures onboardingState = iota
	onboardingStateAskBill
	onboardingStateBillForm
	onboardingStateSaving
)

// OnboardingModel walks a new account through setup: starting balance,
// monthly income, recurring bills. Completion routes the app to the dashboard.
type OnboardingModel struct {
	CommonModel
	svc     *onboarding.Service
	ownerID uuid.UUID

	state   onboardingState
	profile *onboarding.Profile
	form    *huh.Form
	status  string

	// Form field bindings
	formBalance   string
	formHasIncome bool
	formIncome    string
	formAddBill   bool
	formBillName  string
	formBillAmt   string
}

func NewOnboardingModel(svc *onboarding.Service, ownerID uuid.UUID) OnboardingModel {
	m := OnboardingModel{svc: svc, ownerID: ownerID}

	profile, err := svc.Load(ownerID)
	if err != nil {
		profile = onboarding.NewProfile(ownerID)
	}

	m.profile = profile
	m.startFigures()

	return m
}

func (m OnboardingModel) Title() string { return "Setup" }
func (m OnboardingModel) ShortHelp() string {
	return "Enter/Tab: navigate form | Esc: back"
}

func (m OnboardingModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *OnboardingModel) startFigures() tea.Cmd {
	m.state = onboardingStateFigures

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("balance").
				Title("Current savings balance").
				Placeholder("10000").
				Value(&m.formBalance).
				Validate(func(s string) error {
					_, err := ParseAmount(s)
					return err
				}),

			huh.NewConfirm().
				Key("has_income").
				Title("Do you have a regular monthly income?").
				Affirmative("Yes").
				Negative("No").
				Value(&m.formHasIncome),

			huh.NewInput().
				Key("income").
				Title("Monthly income (leave empty if none)").
				Placeholder("50000").
				Value(&m.formIncome),
		),
	).WithWidth(50).WithShowHelp(false)

	return m.form.Init()
}

func (m *OnboardingModel) startAskBill() tea.Cmd {
	m.state = onboardingStateAskBill
	m.formAddBill = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("add_bill").
				Title(fmt.Sprintf("Add a recurring monthly bill? (%d so far)", len(m.profile.MonthlyBills))).
				Affirmative("Add bill").
				Negative("Finish setup").
				Value(&m.formAddBill),
		),
	).WithWidth(50).WithShowHelp(false)

	return m.form.Init()
}

func (m *OnboardingModel) startBillForm() tea.Cmd {
	m.state = onboardingStateBillForm
	m.formBillName = ""
	m.formBillAmt = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("bill_name").
				Title("Bill name").
				Placeholder("Rent").
				Value(&m.formBillName).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("bill_amount").
				Title("Amount per month").
				Placeholder("15000").
				Value(&m.formBillAmt).
				Validate(func(s string) error {
					_, err := ParseAmount(s)
					return err
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	return m.form.Init()
}

func (m OnboardingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case onboardingDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, m.startFigures()
		}

		return m, Back

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.state == onboardingStateSaving || m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m.advance()
}

// advance moves the wizard to its next step after a form completes.
func (m OnboardingModel) advance() (tea.Model, tea.Cmd) {
	switch m.state {
	case onboardingStateFigures:
		if err := m.applyFigures(); err != nil {
			m.status = fmt.Sprintf("Error: %v", err)
			return m, m.startFigures()
		}

		m.status = ""

		return m, m.startAskBill()

	case onboardingStateAskBill:
		if m.form.GetBool("add_bill") {
			return m, m.startBillForm()
		}

		m.state = onboardingStateSaving

		return m, m.completeCmd()

	case onboardingStateBillForm:
		if err := m.applyBill(); err != nil {
			m.status = fmt.Sprintf("Error: %v", err)
		} else {
			m.status = ""
		}

		return m, m.startAskBill()
	}

	return m, nil
}

func (m *OnboardingModel) applyFigures() error {
	balance, err := ParseAmount(m.form.GetString("balance"))
	if err != nil {
		return fmt.Errorf("balance: %w", err)
	}

	m.profile.InitialBalance = balance
	m.profile.HasMonthlyIncome = m.form.GetBool("has_income")

	income := m.form.GetString("income")
	if m.profile.HasMonthlyIncome {
		amount, err := ParseAmount(income)
		if err != nil {
			return fmt.Errorf("income: %w", err)
		}

		m.profile.MonthlyIncome = amount
	}

	return nil
}

func (m *OnboardingModel) applyBill() error {
	amount, err := ParseAmount(m.form.GetString("bill_amount"))
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}

	_, err = m.profile.AddBill(m.form.GetString("bill_name"), amount)

	return err
}

func (m OnboardingModel) View() string {
	if m.state == onboardingStateSaving {
		return lipgloss.NewStyle().Padding(2).Render("Finishing setup...")
	}

	if m.form == nil {
		return ""
	}

	header := lipgloss.NewStyle().Bold(true).Render("Welcome to Piggy")

	summary := ""
	if len(m.profile.MonthlyBills) > 0 {
		summary = fmt.Sprintf("\nBills so far: %s/month, net %s/month",
			FormatAmount(m.profile.TotalMonthlyBills()),
			FormatAmount(m.profile.NetMonthly()),
		)
	}

	content := header + "\n" + summary + "\n" + m.form.View()
	if m.status != "" {
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type onboardingDoneMsg struct {
	err error
}

func (m OnboardingModel) completeCmd() tea.Cmd {
	profile := m.profile

	return func() tea.Msg {
		return onboardingDoneMsg{err: m.svc.Complete(profile)}
	}
}
