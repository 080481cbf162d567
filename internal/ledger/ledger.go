package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind represents the direction of a transaction against a goal.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
)

// Category classifies a savings goal and drives its default icon.
type Category string

const (
	CategoryTravel      Category = "Travel"
	CategoryElectronics Category = "Electronics"
	CategoryEducation   Category = "Education"
	CategoryHome        Category = "Home"
	CategoryVehicle     Category = "Vehicle"
	CategoryEmergency   Category = "Emergency"
	CategoryOther       Category = "Other"
)

// DefaultColor is the presentation hint used when a goal has none.
const DefaultColor = "#3b82f6"

func (c Category) Valid() bool {
	switch c {
	case CategoryTravel, CategoryElectronics, CategoryEducation, CategoryHome,
		CategoryVehicle, CategoryEmergency, CategoryOther:
		return true
	}

	return false
}

// DefaultIcon returns the icon hint for the category.
func (c Category) DefaultIcon() string {
	switch c {
	case CategoryTravel:
		return "fas fa-plane"
	case CategoryElectronics:
		return "fas fa-laptop"
	case CategoryEducation:
		return "fas fa-graduation-cap"
	case CategoryHome:
		return "fas fa-home"
	case CategoryVehicle:
		return "fas fa-car"
	case CategoryEmergency:
		return "fas fa-shield-alt"
	}

	return "fas fa-bullseye"
}

// Goal is a named savings target owned by a single user. IsCompleted is
// derived from the two amounts and never set independently.
type Goal struct {
	ID            uuid.UUID       `json:"id"`
	OwnerID       uuid.UUID       `json:"owner_id"`
	Name          string          `json:"name"`
	Category      Category        `json:"category"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	IsCompleted   bool            `json:"is_completed"`
	Color         string          `json:"color"`
	Icon          string          `json:"icon"`
	CreatedAt     time.Time       `json:"created_at"`

	// BalanceStale marks a goal whose stored balance may diverge from its
	// transaction history after a partial failure. In-memory only; cleared
	// by the next successful LoadAll.
	BalanceStale bool `json:"-"`
}

// Transaction is a single deposit or withdrawal applied against one goal.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	GoalID      uuid.UUID       `json:"goal_id"`
	Kind        Kind            `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
