package view

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/ajwalsh/piggy/internal/ledger"
)

type GoalFormModel struct {
	CommonModel
	svc     *ledger.Service
	ownerID uuid.UUID

	form   *huh.Form
	saving bool
	status string

	// Form field bindings
	formName     string
	formCategory ledger.Category
	formTarget   string
	formCurrent  string
	formDeadline string
}

func NewGoalFormModel(svc *ledger.Service, ownerID uuid.UUID) GoalFormModel {
	m := GoalFormModel{svc: svc, ownerID: ownerID, formCategory: ledger.CategoryOther}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Goal name").
				Value(&m.formName).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[ledger.Category]().
				Key("category").
				Title("Category").
				Options(
					huh.NewOption("Travel", ledger.CategoryTravel),
					huh.NewOption("Electronics", ledger.CategoryElectronics),
					huh.NewOption("Education", ledger.CategoryEducation),
					huh.NewOption("Home", ledger.CategoryHome),
					huh.NewOption("Vehicle", ledger.CategoryVehicle),
					huh.NewOption("Emergency", ledger.CategoryEmergency),
					huh.NewOption("Other", ledger.CategoryOther),
				).
				Value(&m.formCategory),

			huh.NewInput().
				Key("target").
				Title("Target amount").
				Placeholder("50000").
				Value(&m.formTarget).
				Validate(func(s string) error {
					_, err := ParseAmount(s)
					return err
				}),

			huh.NewInput().
				Key("current").
				Title("Already saved (optional)").
				Placeholder("0").
				Value(&m.formCurrent),

			huh.NewInput().
				Key("deadline").
				Title("Deadline (optional, YYYY-MM-DD)").
				Placeholder("2027-06-01").
				Value(&m.formDeadline).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					_, err := time.Parse(time.DateOnly, s)
					return err
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	return m
}

func (m GoalFormModel) Title() string     { return "New Goal" }
func (m GoalFormModel) ShortHelp() string { return "Esc: cancel | Enter/Tab: navigate form" }

func (m GoalFormModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m GoalFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case goalSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		return m, Back

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.saving {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.saving = true

	return m, m.saveCmd()
}

func (m GoalFormModel) View() string {
	if m.saving {
		return lipgloss.NewStyle().Padding(2).Render("Saving goal...")
	}

	content := m.form.View()
	if m.status != "" {
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type goalSavedMsg struct {
	err error
}

func (m GoalFormModel) saveCmd() tea.Cmd {
	name := m.form.GetString("name")
	category, _ := m.form.Get("category").(ledger.Category)
	target := m.form.GetString("target")
	current := m.form.GetString("current")
	deadline := m.form.GetString("deadline")

	return func() tea.Msg {
		spec := ledger.GoalSpec{Name: name, Category: category}

		targetAmount, err := ParseAmount(target)
		if err != nil {
			return goalSavedMsg{err: fmt.Errorf("target amount: %w", err)}
		}

		spec.TargetAmount = targetAmount

		if current != "" {
			currentAmount, err := ParseAmount(current)
			if err != nil {
				return goalSavedMsg{err: fmt.Errorf("current amount: %w", err)}
			}

			spec.CurrentAmount = currentAmount
		}

		if deadline != "" {
			d, err := time.Parse(time.DateOnly, deadline)
			if err != nil {
				return goalSavedMsg{err: fmt.Errorf("deadline: %w", err)}
			}

			spec.Deadline = &d
		}

		ctx, cancel := DbCtx()
		defer cancel()

		_, err = m.svc.CreateGoal(ctx, m.ownerID, spec)

		return goalSavedMsg{err: err}
	}
}
