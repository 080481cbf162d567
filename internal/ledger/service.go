package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=remotestore_mock.go -package=ledger

// RemoteStore is the hosted database the ledger synchronizes with. Query
// results are ordered newest first. Implementations surface constraint
// violations as *ValidationError and anything else as *RemoteUnavailableError.
type RemoteStore interface {
	QueryGoals(ctx context.Context, ownerID uuid.UUID) ([]*Goal, error)
	InsertGoal(ctx context.Context, goal *Goal) error
	UpdateGoal(ctx context.Context, id uuid.UUID, update GoalUpdate) error

	QueryTransactions(ctx context.Context, ownerID uuid.UUID, limit int) ([]*Transaction, error)
	QueryTransactionsForGoal(ctx context.Context, goalID uuid.UUID) ([]*Transaction, error)
	InsertTransaction(ctx context.Context, tx *Transaction) error
}

// ProjectionCache receives the denormalized snapshot after each successful
// mutation. Writes are best-effort; a full cache degrades, it does not fail
// the operation.
type ProjectionCache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// GoalUpdate carries the only goal fields a transaction may change.
type GoalUpdate struct {
	CurrentAmount decimal.Decimal
	IsCompleted   bool
}

// DefaultRecentLimit caps the transaction history kept in memory per owner.
const DefaultRecentLimit = 10

// Service is the single authoritative in-memory view of each owner's goals
// and transactions. All mutations go through it so derived fields stay
// consistent.
type Service struct {
	store       RemoteStore
	cache       ProjectionCache
	recentLimit int

	mu    sync.RWMutex
	state map[uuid.UUID]*ownerState
}

type ownerState struct {
	goals        []*Goal
	transactions []*Transaction
}

func NewService(store RemoteStore, cache ProjectionCache, recentLimit int) *Service {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}

	return &Service{
		store:       store,
		cache:       cache,
		recentLimit: recentLimit,
		state:       make(map[uuid.UUID]*ownerState),
	}
}

// Snapshot is a point-in-time copy of an owner's ledger state.
type Snapshot struct {
	Goals              []*Goal        `json:"goals"`
	RecentTransactions []*Transaction `json:"recent_transactions"`
	CachedAt           time.Time      `json:"cached_at,omitzero"`
}

// GoalSpec carries caller input for goal creation.
type GoalSpec struct {
	Name          string
	Category      Category
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *time.Time
	Color         string
	Icon          string
}

// LoadAll fetches the owner's goals and most recent transactions from the
// remote store and replaces the in-memory state. On failure the prior state
// is left untouched: stale-but-available beats blank.
func (s *Service) LoadAll(ctx context.Context, ownerID uuid.UUID) (*Snapshot, error) {
	goals, err := s.store.QueryGoals(ctx, ownerID)
	if err != nil {
		return nil, asLedgerError(err)
	}

	txs, err := s.store.QueryTransactions(ctx, ownerID, s.recentLimit)
	if err != nil {
		return nil, asLedgerError(err)
	}

	s.mu.Lock()
	s.state[ownerID] = &ownerState{goals: goals, transactions: txs}
	snap := s.state[ownerID].snapshot()
	s.mu.Unlock()

	s.writeProjection(ownerID, snap)

	return snap, nil
}

// CreateGoal validates the input, persists the goal and prepends it to the
// in-memory list. Violations are rejected, never silently clamped.
func (s *Service) CreateGoal(ctx context.Context, ownerID uuid.UUID, spec GoalSpec) (*Goal, error) {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	if !spec.Category.Valid() {
		return nil, &ValidationError{Field: "category", Reason: "unknown category"}
	}

	if !spec.TargetAmount.IsPositive() {
		return nil, &ValidationError{Field: "target_amount", Reason: "must be greater than zero"}
	}

	if spec.CurrentAmount.IsNegative() {
		return nil, &ValidationError{Field: "current_amount", Reason: "must not be negative"}
	}

	if spec.CurrentAmount.GreaterThan(spec.TargetAmount) {
		return nil, &ValidationError{Field: "current_amount", Reason: "must not exceed target amount"}
	}

	goal := &Goal{
		OwnerID:       ownerID,
		Name:          name,
		Category:      spec.Category,
		TargetAmount:  spec.TargetAmount,
		CurrentAmount: spec.CurrentAmount,
		Deadline:      spec.Deadline,
		IsCompleted:   spec.CurrentAmount.GreaterThanOrEqual(spec.TargetAmount),
		Color:         spec.Color,
		Icon:          spec.Icon,
	}
	if goal.Color == "" {
		goal.Color = DefaultColor
	}

	if goal.Icon == "" {
		goal.Icon = spec.Category.DefaultIcon()
	}

	if err := s.store.InsertGoal(ctx, goal); err != nil {
		return nil, asLedgerError(err)
	}

	s.mu.Lock()
	st := s.ownerStateLocked(ownerID)
	st.goals = append([]*Goal{goal}, st.goals...)
	snap := st.snapshot()
	s.mu.Unlock()

	s.writeProjection(ownerID, snap)

	return goal, nil
}

// RecordTransaction applies a deposit or withdrawal against one of the
// owner's goals. The transaction is persisted first, then the goal; if the
// second write fails the result is a *PartialFailureError carrying the
// transaction id, the transaction stays in history and the goal balance is
// flagged stale.
func (s *Service) RecordTransaction(
	ctx context.Context,
	ownerID, goalID uuid.UUID,
	kind Kind,
	amount decimal.Decimal,
	description string,
) (*Transaction, *Goal, error) {
	if kind != KindDeposit && kind != KindWithdrawal {
		return nil, nil, &ValidationError{Field: "kind", Reason: "must be deposit or withdrawal"}
	}

	if !amount.IsPositive() {
		return nil, nil, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	s.mu.RLock()
	goal := s.findGoalLocked(ownerID, goalID)

	var current, target decimal.Decimal
	if goal != nil {
		current = goal.CurrentAmount
		target = goal.TargetAmount
	}
	s.mu.RUnlock()

	if goal == nil {
		return nil, nil, ErrGoalNotFound
	}

	if kind == KindWithdrawal && amount.GreaterThan(current) {
		return nil, nil, &InsufficientFundsError{Available: current, Requested: amount}
	}

	newAmount := current.Add(amount)
	if kind == KindWithdrawal {
		newAmount = current.Sub(amount)
	}

	newCompleted := newAmount.GreaterThanOrEqual(target)

	tx := &Transaction{
		OwnerID:     ownerID,
		GoalID:      goalID,
		Kind:        kind,
		Amount:      amount,
		Description: strings.TrimSpace(description),
	}

	if err := s.store.InsertTransaction(ctx, tx); err != nil {
		return nil, nil, asLedgerError(err)
	}

	if err := s.store.UpdateGoal(ctx, goalID, GoalUpdate{
		CurrentAmount: newAmount,
		IsCompleted:   newCompleted,
	}); err != nil {
		s.mu.Lock()
		st := s.ownerStateLocked(ownerID)
		st.prepend(tx, s.recentLimit)

		if g := s.findGoalLocked(ownerID, goalID); g != nil {
			g.BalanceStale = true
		}
		snap := st.snapshot()
		s.mu.Unlock()

		s.writeProjection(ownerID, snap)

		return tx, nil, &PartialFailureError{TransactionID: tx.ID, GoalID: goalID, Err: err}
	}

	var updated Goal

	s.mu.Lock()
	st := s.ownerStateLocked(ownerID)
	st.prepend(tx, s.recentLimit)

	if g := s.findGoalLocked(ownerID, goalID); g != nil {
		g.CurrentAmount = newAmount
		g.IsCompleted = newCompleted
		g.BalanceStale = false
		updated = *g
	}
	snap := st.snapshot()
	s.mu.Unlock()

	s.writeProjection(ownerID, snap)

	return tx, &updated, nil
}

// GoalDetail returns a goal together with its full transaction history.
func (s *Service) GoalDetail(ctx context.Context, ownerID, goalID uuid.UUID) (*Goal, []*Transaction, error) {
	s.mu.RLock()
	goal := s.findGoalLocked(ownerID, goalID)

	var g Goal
	if goal != nil {
		g = *goal
	}
	s.mu.RUnlock()

	if goal == nil {
		return nil, nil, ErrGoalNotFound
	}

	txs, err := s.store.QueryTransactionsForGoal(ctx, goalID)
	if err != nil {
		return nil, nil, asLedgerError(err)
	}

	return &g, txs, nil
}

// Overview aggregates the dashboard header numbers from in-memory state.
type Overview struct {
	TotalSaved     decimal.Decimal `json:"total_saved"`
	TotalGoals     int             `json:"total_goals"`
	CompletedGoals int             `json:"completed_goals"`
	NextDeadline   *time.Time      `json:"next_deadline,omitempty"`
}

func (s *Service) Overview(ownerID uuid.UUID) Overview {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.state[ownerID]
	if !ok {
		return Overview{}
	}

	ov := Overview{TotalGoals: len(st.goals)}
	for _, g := range st.goals {
		ov.TotalSaved = ov.TotalSaved.Add(g.CurrentAmount)
		if g.IsCompleted {
			ov.CompletedGoals++
		}
	}

	if next, ok := NextDeadline(st.goals); ok {
		ov.NextDeadline = &next
	}

	return ov
}

// Summary totals one calendar month of transactions by kind.
type Summary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Count   int             `json:"count"`
}

// MonthlySummary sums the owner's in-memory transaction history for the
// given calendar month. Pure given current state.
func (s *Service) MonthlySummary(ownerID uuid.UUID, month time.Month, year int) Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum Summary

	st, ok := s.state[ownerID]
	if !ok {
		return sum
	}

	for _, tx := range st.transactions {
		if tx.CreatedAt.Month() != month || tx.CreatedAt.Year() != year {
			continue
		}

		switch tx.Kind {
		case KindDeposit:
			sum.Income = sum.Income.Add(tx.Amount)
		case KindWithdrawal:
			sum.Expense = sum.Expense.Add(tx.Amount)
		}

		sum.Count++
	}

	return sum
}

// CachedSnapshot reads the owner's last projection from the local cache.
// Used for stale-but-available rendering while the remote store is down.
func (s *Service) CachedSnapshot(ownerID uuid.UUID) (*Snapshot, error) {
	if s.cache == nil {
		return nil, ErrNoSnapshot
	}

	data, err := s.cache.Get(snapshotKey(ownerID))
	if err != nil {
		return nil, ErrNoSnapshot
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, ErrNoSnapshot
	}

	return &snap, nil
}

// GoalProgress returns the goal's completion percentage, clamped to [0,100].
// A zero target reports 0. Pure function, no side effects.
func GoalProgress(goal *Goal) float64 {
	if !goal.TargetAmount.IsPositive() {
		return 0
	}

	pct := goal.CurrentAmount.
		Div(goal.TargetAmount).
		Mul(decimal.NewFromInt(100)).
		InexactFloat64()

	return min(100, max(0, pct))
}

// NextDeadline returns the earliest deadline among active goals that have
// one. Ties keep the first goal in the given ordering.
func NextDeadline(goals []*Goal) (time.Time, bool) {
	var (
		next  time.Time
		found bool
	)

	for _, g := range goals {
		if g.IsCompleted || g.Deadline == nil {
			continue
		}

		if !found || g.Deadline.Before(next) {
			next = *g.Deadline
			found = true
		}
	}

	return next, found
}

func (s *Service) ownerStateLocked(ownerID uuid.UUID) *ownerState {
	st, ok := s.state[ownerID]
	if !ok {
		st = &ownerState{}
		s.state[ownerID] = st
	}

	return st
}

func (s *Service) findGoalLocked(ownerID, goalID uuid.UUID) *Goal {
	st, ok := s.state[ownerID]
	if !ok {
		return nil
	}

	for _, g := range st.goals {
		if g.ID == goalID {
			return g
		}
	}

	return nil
}

func (st *ownerState) prepend(tx *Transaction, limit int) {
	st.transactions = append([]*Transaction{tx}, st.transactions...)
	if len(st.transactions) > limit {
		st.transactions = st.transactions[:limit]
	}
}

// snapshot copies the state so callers never alias the slices or structs the
// service keeps mutating.
func (st *ownerState) snapshot() *Snapshot {
	snap := &Snapshot{
		Goals:              make([]*Goal, len(st.goals)),
		RecentTransactions: make([]*Transaction, len(st.transactions)),
	}

	for i, g := range st.goals {
		c := *g
		snap.Goals[i] = &c
	}

	for i, tx := range st.transactions {
		c := *tx
		snap.RecentTransactions[i] = &c
	}

	return snap
}

func (s *Service) writeProjection(ownerID uuid.UUID, snap *Snapshot) {
	if s.cache == nil {
		return
	}

	proj := *snap
	proj.CachedAt = time.Now().UTC()

	data, err := json.Marshal(&proj)
	if err != nil {
		slog.Warn("failed to marshal snapshot projection", "owner", ownerID, "error", err)
		return
	}

	if err := s.cache.Set(snapshotKey(ownerID), data); err != nil {
		// Best-effort persistence: a full cache degrades reloads, nothing else.
		slog.Warn("cache write degraded", "owner", ownerID, "error", err)
	}
}

func snapshotKey(ownerID uuid.UUID) string {
	return "snapshot:" + ownerID.String()
}

// asLedgerError keeps taxonomy errors intact and folds anything else into
// RemoteUnavailable.
func asLedgerError(err error) error {
	var (
		ve *ValidationError
		ru *RemoteUnavailableError
	)

	if errors.As(err, &ve) || errors.As(err, &ru) {
		return err
	}

	return &RemoteUnavailableError{Err: err}
}
