package onboardinghttp

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ajwalsh/piggy/internal/onboarding"
)

type profileResponse struct {
	OwnerID           uuid.UUID         `json:"owner_id"`
	InitialBalance    decimal.Decimal   `json:"initial_balance"`
	HasMonthlyIncome  bool              `json:"has_monthly_income"`
	MonthlyIncome     decimal.Decimal   `json:"monthly_income"`
	MonthlyBills      []onboarding.Bill `json:"monthly_bills"`
	TotalMonthlyBills decimal.Decimal   `json:"total_monthly_bills"`
	NetMonthly        decimal.Decimal   `json:"net_monthly"`
	SetupComplete     bool              `json:"setup_complete"`
	CreatedAt         time.Time         `json:"created_at"`
	LastUpdated       time.Time         `json:"last_updated"`
}

func toResponse(p *onboarding.Profile) profileResponse {
	return profileResponse{
		OwnerID:           p.OwnerID,
		InitialBalance:    p.InitialBalance,
		HasMonthlyIncome:  p.HasMonthlyIncome,
		MonthlyIncome:     p.MonthlyIncome,
		MonthlyBills:      p.MonthlyBills,
		TotalMonthlyBills: p.TotalMonthlyBills(),
		NetMonthly:        p.NetMonthly(),
		SetupComplete:     p.SetupComplete,
		CreatedAt:         p.CreatedAt,
		LastUpdated:       p.LastUpdated,
	}
}
