package transactions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ajwalsh/piggy/internal/ledger"
)

type transactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	GoalID      uuid.UUID       `json:"goal_id"`
	Kind        ledger.Kind     `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type goalBalanceResponse struct {
	ID            uuid.UUID       `json:"id"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Progress      float64         `json:"progress"`
	IsCompleted   bool            `json:"is_completed"`
}

type recordResponse struct {
	Transaction transactionResponse `json:"transaction"`
	Goal        goalBalanceResponse `json:"goal"`
}

type recentResponse struct {
	Transactions []transactionResponse `json:"transactions"`
	Stale        bool                  `json:"stale,omitempty"`
}

func toResponse(tx *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		GoalID:      tx.GoalID,
		Kind:        tx.Kind,
		Amount:      tx.Amount,
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
}

func toResponseList(txs []*ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

func toRecordResponse(tx *ledger.Transaction, goal *ledger.Goal) recordResponse {
	return recordResponse{
		Transaction: toResponse(tx),
		Goal: goalBalanceResponse{
			ID:            goal.ID,
			CurrentAmount: goal.CurrentAmount,
			Progress:      ledger.GoalProgress(goal),
			IsCompleted:   goal.IsCompleted,
		},
	}
}
