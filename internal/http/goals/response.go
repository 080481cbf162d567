package goals

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ajwalsh/piggy/internal/ledger"
)

type goalResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Category      ledger.Category `json:"category"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Progress      float64         `json:"progress"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	IsCompleted   bool            `json:"is_completed"`
	BalanceStale  bool            `json:"balance_stale,omitempty"`
	Color         string          `json:"color"`
	Icon          string          `json:"icon"`
	CreatedAt     time.Time       `json:"created_at"`
}

type transactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	Kind        ledger.Kind     `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type goalDetailResponse struct {
	goalResponse
	Transactions []transactionResponse `json:"transactions"`
}

func toResponse(g *ledger.Goal) goalResponse {
	return goalResponse{
		ID:            g.ID,
		Name:          g.Name,
		Category:      g.Category,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Progress:      ledger.GoalProgress(g),
		Deadline:      g.Deadline,
		IsCompleted:   g.IsCompleted,
		BalanceStale:  g.BalanceStale,
		Color:         g.Color,
		Icon:          g.Icon,
		CreatedAt:     g.CreatedAt,
	}
}

func toResponseList(goals []*ledger.Goal) []goalResponse {
	resp := make([]goalResponse, len(goals))
	for i, g := range goals {
		resp[i] = toResponse(g)
	}

	return resp
}

func toDetailResponse(g *ledger.Goal, txs []*ledger.Transaction) goalDetailResponse {
	resp := goalDetailResponse{
		goalResponse: toResponse(g),
		Transactions: make([]transactionResponse, len(txs)),
	}

	for i, tx := range txs {
		resp.Transactions[i] = transactionResponse{
			ID:          tx.ID,
			Kind:        tx.Kind,
			Amount:      tx.Amount,
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt,
		}
	}

	return resp
}
