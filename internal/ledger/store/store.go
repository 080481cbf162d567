package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ajwalsh/piggy/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanGoal reads a goal row from the scanner.
// Expected column order: id, owner_id, name, category, target_amount, current_amount, deadline, is_completed, color, icon, created_at
func scanGoal(s scanner) (*ledger.Goal, error) {
	var g ledger.Goal

	var categoryStr string

	var deadline sql.NullTime

	if err := s.Scan(
		&g.ID, &g.OwnerID, &g.Name, &categoryStr, &g.TargetAmount, &g.CurrentAmount,
		&deadline, &g.IsCompleted, &g.Color, &g.Icon, &g.CreatedAt,
	); err != nil {
		return nil, err
	}

	g.Category = ledger.Category(categoryStr)

	if deadline.Valid {
		d := deadline.Time
		g.Deadline = &d
	}

	return &g, nil
}

// scanTransaction reads a transaction row from the scanner.
// Expected column order: id, owner_id, goal_id, kind, amount, description, created_at
func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var tx ledger.Transaction

	var kindStr string

	var desc sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.OwnerID, &tx.GoalID, &kindStr, &tx.Amount, &desc, &tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	tx.Kind = ledger.Kind(kindStr)
	tx.Description = desc.String

	return &tx, nil
}

const selectGoalColumns = `
	g.id, g.owner_id, g.name, g.category, g.target_amount, g.current_amount,
	g.deadline, g.is_completed, g.color, g.icon, g.created_at
`

const selectTransactionColumns = `
	t.id, t.owner_id, t.goal_id, t.kind, t.amount, t.description, t.created_at
`

func (s *Store) QueryGoals(ctx context.Context, ownerID uuid.UUID) ([]*ledger.Goal, error) {
	query := `SELECT ` + selectGoalColumns + `
		FROM savings_goals g
		WHERE g.owner_id = $1
		ORDER BY g.created_at DESC, g.id DESC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, wrapStoreError("querying goals", err)
	}
	defer rows.Close()

	var goals []*ledger.Goal

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, wrapStoreError("scanning goal", err)
		}

		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapStoreError("iterating goal rows", err)
	}

	return goals, nil
}

func (s *Store) InsertGoal(ctx context.Context, goal *ledger.Goal) error {
	query := `
		INSERT INTO savings_goals (owner_id, name, category, target_amount, current_amount, deadline, is_completed, color, icon, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	var deadline sql.NullTime
	if goal.Deadline != nil {
		deadline = sql.NullTime{Time: *goal.Deadline, Valid: true}
	}

	err := s.db.QueryRowContext(ctx, query,
		goal.OwnerID,
		goal.Name,
		goal.Category,
		goal.TargetAmount,
		goal.CurrentAmount,
		deadline,
		goal.IsCompleted,
		goal.Color,
		goal.Icon,
	).Scan(&goal.ID, &goal.CreatedAt)
	if err != nil {
		return wrapStoreError("inserting goal", err)
	}

	return nil
}

func (s *Store) UpdateGoal(ctx context.Context, id uuid.UUID, update ledger.GoalUpdate) error {
	query := `
		UPDATE savings_goals
		SET current_amount = $1, is_completed = $2
		WHERE id = $3
	`

	res, err := s.db.ExecContext(ctx, query, update.CurrentAmount, update.IsCompleted, id)
	if err != nil {
		return wrapStoreError("updating goal", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return wrapStoreError("updating goal", err)
	}

	if affected == 0 {
		return ledger.ErrGoalNotFound
	}

	return nil
}

func (s *Store) QueryTransactions(ctx context.Context, ownerID uuid.UUID, limit int) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.owner_id = $1
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, ownerID, limit)
	if err != nil {
		return nil, wrapStoreError("querying transactions", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (s *Store) QueryTransactionsForGoal(ctx context.Context, goalID uuid.UUID) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.goal_id = $1
		ORDER BY t.created_at DESC, t.id DESC`

	rows, err := s.db.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, wrapStoreError("querying goal transactions", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (s *Store) InsertTransaction(ctx context.Context, tx *ledger.Transaction) error {
	query := `
		INSERT INTO transactions (owner_id, goal_id, kind, amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	var desc sql.NullString
	if tx.Description != "" {
		desc = sql.NullString{String: tx.Description, Valid: true}
	}

	err := s.db.QueryRowContext(ctx, query,
		tx.OwnerID,
		tx.GoalID,
		tx.Kind,
		tx.Amount,
		desc,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return wrapStoreError("inserting transaction", err)
	}

	return nil
}

func collectTransactions(rows *sql.Rows) ([]*ledger.Transaction, error) {
	var txs []*ledger.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, wrapStoreError("scanning transaction", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapStoreError("iterating transaction rows", err)
	}

	return txs, nil
}

// wrapStoreError maps integrity violations (SQLSTATE class 23) to validation
// errors and everything else to remote-unavailable.
func wrapStoreError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return &ledger.ValidationError{Field: pgErr.ConstraintName, Reason: pgErr.Message}
	}

	return &ledger.RemoteUnavailableError{Err: fmt.Errorf("%s: %w", op, err)}
}
