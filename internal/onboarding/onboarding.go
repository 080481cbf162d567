// Package onboarding holds the setup-wizard profile. The profile lives only
// in the local cache; it is never synchronized to the remote store.
package onboarding

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ajwalsh/piggy/internal/ledger"
)

// Bill is one recurring monthly expense captured during onboarding.
type Bill struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	AddedAt time.Time       `json:"added_at"`
}

// Profile is the onboarding state for one owner. SetupComplete gates the
// dashboard-vs-onboarding routing decision.
type Profile struct {
	OwnerID          uuid.UUID       `json:"owner_id"`
	InitialBalance   decimal.Decimal `json:"initial_balance"`
	HasMonthlyIncome bool            `json:"has_monthly_income"`
	MonthlyIncome    decimal.Decimal `json:"monthly_income"`
	MonthlyBills     []Bill          `json:"monthly_bills"`
	SetupComplete    bool            `json:"setup_complete"`
	CreatedAt        time.Time       `json:"created_at"`
	LastUpdated      time.Time       `json:"last_updated"`
}

func NewProfile(ownerID uuid.UUID) *Profile {
	return &Profile{OwnerID: ownerID}
}

// TotalMonthlyBills sums the bill amounts.
func (p *Profile) TotalMonthlyBills() decimal.Decimal {
	var total decimal.Decimal
	for _, b := range p.MonthlyBills {
		total = total.Add(b.Amount)
	}

	return total
}

// NetMonthly is income minus bills. Negative when bills exceed income.
func (p *Profile) NetMonthly() decimal.Decimal {
	return p.MonthlyIncome.Sub(p.TotalMonthlyBills())
}

// AddBill appends a bill to the profile. Bills are ordinary instance-owned
// state, appended in order.
func (p *Profile) AddBill(name string, amount decimal.Decimal) (Bill, error) {
	if name == "" {
		return Bill{}, &ledger.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	if !amount.IsPositive() {
		return Bill{}, &ledger.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	// Millisecond timestamps collide when bills are added back to back;
	// bump past the newest existing id to keep them unique.
	id := time.Now().UnixMilli()
	for _, b := range p.MonthlyBills {
		if b.ID >= id {
			id = b.ID + 1
		}
	}

	bill := Bill{
		ID:      id,
		Name:    name,
		Amount:  amount,
		AddedAt: time.Now().UTC(),
	}
	p.MonthlyBills = append(p.MonthlyBills, bill)

	return bill, nil
}

// RemoveBill deletes the bill with the given id. Reports whether it existed.
func (p *Profile) RemoveBill(id int64) bool {
	for i, b := range p.MonthlyBills {
		if b.ID == id {
			p.MonthlyBills = append(p.MonthlyBills[:i], p.MonthlyBills[i+1:]...)
			return true
		}
	}

	return false
}

// validateComplete checks the wizard can finish.
func (p *Profile) validateComplete() error {
	if !p.InitialBalance.IsPositive() {
		return &ledger.ValidationError{Field: "initial_balance", Reason: "must be greater than zero"}
	}

	if p.HasMonthlyIncome && !p.MonthlyIncome.IsPositive() {
		return &ledger.ValidationError{Field: "monthly_income", Reason: "must be greater than zero"}
	}

	if !p.HasMonthlyIncome && !p.MonthlyIncome.IsZero() {
		return &ledger.ValidationError{Field: "monthly_income", Reason: "must be zero without monthly income"}
	}

	for _, b := range p.MonthlyBills {
		if b.Name == "" || !b.Amount.IsPositive() {
			return &ledger.ValidationError{Field: "monthly_bills", Reason: "bills need a name and a positive amount"}
		}
	}

	return nil
}
