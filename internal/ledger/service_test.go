package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ajwalsh/piggy/internal/ledger"
)

func amt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// seedGoals loads the service state with the given goals through the store
// mock so mutations have something to act on.
func seedGoals(t *testing.T, svc *ledger.Service, store *ledger.MockRemoteStore, ownerID uuid.UUID, goals []*ledger.Goal) {
	t.Helper()

	store.EXPECT().
		QueryGoals(gomock.Any(), ownerID).
		Return(goals, nil)
	store.EXPECT().
		QueryTransactions(gomock.Any(), ownerID, gomock.Any()).
		Return(nil, nil)

	_, err := svc.LoadAll(context.Background(), ownerID)
	require.NoError(t, err)
}

func TestService_CreateGoal(t *testing.T) {
	ownerID := uuid.New()

	type testCase struct {
		name      string
		spec      ledger.GoalSpec
		setupMock func(m *ledger.MockRemoteStore)
		wantErr   bool
		check     func(t *testing.T, g *ledger.Goal)
	}

	tests := []testCase{
		{
			name: "Success",
			spec: ledger.GoalSpec{
				Name:         "Goa Trip",
				Category:     ledger.CategoryTravel,
				TargetAmount: amt(50000),
			},
			setupMock: func(m *ledger.MockRemoteStore) {
				m.EXPECT().
					InsertGoal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, g *ledger.Goal) error {
						g.ID = uuid.New()
						g.CreatedAt = time.Now()
						return nil
					})
			},
			check: func(t *testing.T, g *ledger.Goal) {
				assert.NotEmpty(t, g.ID)
				assert.Equal(t, ownerID, g.OwnerID)
				assert.Equal(t, "fas fa-plane", g.Icon)
				assert.Equal(t, ledger.DefaultColor, g.Color)
				assert.False(t, g.IsCompleted)
			},
		},
		{
			name: "AlreadyFundedIsCompleted",
			spec: ledger.GoalSpec{
				Name:          "Laptop",
				Category:      ledger.CategoryElectronics,
				TargetAmount:  amt(80000),
				CurrentAmount: amt(80000),
			},
			setupMock: func(m *ledger.MockRemoteStore) {
				m.EXPECT().
					InsertGoal(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, g *ledger.Goal) {
				assert.True(t, g.IsCompleted)
				assert.Equal(t, "fas fa-laptop", g.Icon)
			},
		},
		{
			name:    "EmptyName",
			spec:    ledger.GoalSpec{Name: "   ", Category: ledger.CategoryOther, TargetAmount: amt(100)},
			wantErr: true,
		},
		{
			name:    "UnknownCategory",
			spec:    ledger.GoalSpec{Name: "X", Category: "Yachts", TargetAmount: amt(100)},
			wantErr: true,
		},
		{
			name:    "ZeroTarget",
			spec:    ledger.GoalSpec{Name: "X", Category: ledger.CategoryOther},
			wantErr: true,
		},
		{
			name: "NegativeCurrent",
			spec: ledger.GoalSpec{
				Name: "X", Category: ledger.CategoryOther,
				TargetAmount: amt(100), CurrentAmount: amt(-1),
			},
			wantErr: true,
		},
		{
			name: "CurrentExceedsTarget",
			spec: ledger.GoalSpec{
				Name: "X", Category: ledger.CategoryOther,
				TargetAmount: amt(100), CurrentAmount: amt(101),
			},
			wantErr: true,
		},
		{
			name: "StoreDown",
			spec: ledger.GoalSpec{Name: "X", Category: ledger.CategoryOther, TargetAmount: amt(100)},
			setupMock: func(m *ledger.MockRemoteStore) {
				m.EXPECT().
					InsertGoal(gomock.Any(), gomock.Any()).
					Return(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := ledger.NewMockRemoteStore(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(store)
			}

			svc := ledger.NewService(store, nil, 0)
			got, err := svc.CreateGoal(context.Background(), ownerID, tt.spec)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			tt.check(t, got)
		})
	}
}

func TestService_CreateGoal_RejectionsSkipStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No EXPECT calls registered: any store access fails the test.
	store := ledger.NewMockRemoteStore(ctrl)
	svc := ledger.NewService(store, nil, 0)

	_, err := svc.CreateGoal(context.Background(), uuid.New(), ledger.GoalSpec{
		Name: "", Category: ledger.CategoryOther, TargetAmount: amt(100),
	})

	var validation *ledger.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "name", validation.Field)
}

func TestService_CreateGoal_SurvivesReload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	store := ledger.NewMockRemoteStore(ctrl)
	svc := ledger.NewService(store, nil, 0)

	var persisted ledger.Goal

	store.EXPECT().
		InsertGoal(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, g *ledger.Goal) error {
			g.ID = uuid.New()
			persisted = *g
			return nil
		})

	created, err := svc.CreateGoal(context.Background(), ownerID, ledger.GoalSpec{
		Name:          "Emergency Fund",
		Category:      ledger.CategoryEmergency,
		TargetAmount:  amt(100000),
		CurrentAmount: amt(2500),
	})
	require.NoError(t, err)

	store.EXPECT().
		QueryGoals(gomock.Any(), ownerID).
		DoAndReturn(func(_ context.Context, _ uuid.UUID) ([]*ledger.Goal, error) {
			g := persisted
			return []*ledger.Goal{&g}, nil
		})
	store.EXPECT().
		QueryTransactions(gomock.Any(), ownerID, gomock.Any()).
		Return(nil, nil)

	snap, err := svc.LoadAll(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, snap.Goals, 1)
	assert.Equal(t, created.Name, snap.Goals[0].Name)
	assert.True(t, snap.Goals[0].TargetAmount.Equal(created.TargetAmount))
	assert.True(t, snap.Goals[0].CurrentAmount.Equal(created.CurrentAmount))
}

func TestService_LoadAll_FailureKeepsPriorState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	store := ledger.NewMockRemoteStore(ctrl)
	svc := ledger.NewService(store, nil, 0)

	seedGoals(t, svc, store, ownerID, []*ledger.Goal{
		{ID: uuid.New(), OwnerID: ownerID, Name: "Bike", TargetAmount: amt(90000), CurrentAmount: amt(30000)},
	})

	store.EXPECT().
		QueryGoals(gomock.Any(), ownerID).
		Return(nil, errors.New("connection refused"))

	_, err := svc.LoadAll(context.Background(), ownerID)

	var unavailable *ledger.RemoteUnavailableError
	require.ErrorAs(t, err, &unavailable)

	ov := svc.Overview(ownerID)
	assert.Equal(t, 1, ov.TotalGoals)
	assert.True(t, ov.TotalSaved.Equal(amt(30000)))
}

func TestService_RecordTransaction_Deposit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	goalID := uuid.New()
	store := ledger.NewMockRemoteStore(ctrl)
	svc := ledger.NewService(store, nil, 0)

	seedGoals(t, svc, store, ownerID, []*ledger.Goal{
		{ID: goalID, OwnerID: ownerID, Name: "Bike", TargetAmount: amt(90000), CurrentAmount: amt(85000)},
	})

	store.EXPECT().
		InsertTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
			tx.ID = uuid.New()
			tx.CreatedAt = time.Now()
			return nil
		})
	store.EXPECT().
		UpdateGoal(gomock.Any(), goalID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, update ledger.GoalUpdate) error {
			assert.True(t, update.CurrentAmount.Equal(amt(91000)))
			assert.True(t, update.IsCompleted)
			return nil
		})

	tx, goal, err := svc.RecordTransaction(context.Background(), ownerID, goalID, ledger.KindDeposit, amt(6000), "bonus")
	require.NoError(t, err)
	assert.NotEmpty(t, tx.ID)
	assert.True(t, goal.CurrentAmount.Equal(amt(91000)))
	assert.True(t, goal.IsCompleted)
	assert.False(t, goal.BalanceStale)

	ov := svc.Overview(ownerID)
	assert.True(t, ov.TotalSaved.Equal(amt(91000)))
	assert.Equal(t, 1, ov.CompletedGoals)
}

func TestService_RecordTransaction_WithdrawalOverdraft(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	goalID := uuid.New()
	store := ledger.NewMockRemoteStore(ctrl)
	svc := ledger.NewService(store, nil, 0)

	goal := &ledger.Goal{ID: goalID, OwnerID: ownerID, Name: "Fund", TargetAmount: amt(20000)}
	seedGoals(t, svc, store, ownerID, []*ledger.Goal{goal})

	// Two deposits bring the balance to 10000.
	for _, d := range []int64{4000, 6000} {
		store.EXPECT().
			InsertTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
				tx.ID = uuid.New()
				return nil
			})
		store.EXPECT().UpdateGoal(gomock.Any(), goalID, gomock.Any()).Return(nil)

		_, _, err := svc.RecordTransaction(context.Background(), ownerID, goalID, ledger.KindDeposit, amt(d), "")
		require.NoError(t, err)
	}

	// One rupee over the balance: rejected before any store write.
	_, _, err := svc.RecordTransaction(context.Background(), ownerID, goalID, ledger.KindWithdrawal, amt(10001), "")

	var insufficient *ledger.InsufficientFundsError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.Equal(amt(10000)))
	assert.True(t, insufficient.Requested.Equal(amt(10001)))

	ov := svc.Overview(ownerID)
	assert.True(t, ov.TotalSaved.Equal(amt(10000)))

	// Exactly the balance is fine.
	store.EXPECT().
		InsertTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
			tx.ID = uuid.New()
			return nil
		})
	store.EXPECT().
		UpdateGoal(gomock.Any(), goalID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, update ledger.GoalUpdate) error {
			assert.True(t, update.CurrentAmount.IsZero())
			return nil
		})

	_, goalAfter, err := svc.RecordTransaction(context.Background(), ownerID, goalID, ledger.KindWithdrawal, amt(10000), "")
	require.NoError(t, err)
	assert.True(t, goalAfter.CurrentAmount.IsZero())
}

func TestService_RecordTransaction_Rejections(t *testing.T) {
	type testCase struct {
		name   string
		kind   ledger.Kind
		amount decimal.Decimal
	}

	tests := []testCase{
		{name: "ZeroAmount", kind: ledger.KindDeposit, amount: amt(0)},
		{name: "NegativeAmount", kind: ledger.KindWithdrawal, amount: amt(-500)},
		{name: "UnknownKind", kind: "transfer", amount: amt(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// No EXPECT calls: rejection must happen before the store is touched.
			store := ledger.NewMockRemoteStore(ctrl)
			svc := ledger.NewService(store, nil, 0)

			_, _, err := svc.RecordTransaction(context.Background(), uuid.New(), uuid.New(), tt.kind, tt.amount, "")

			var validation *ledger.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestService_RecordTransaction_UnknownGoal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	store := ledger.NewMockRemoteStore(ctrl)
	svc := ledger.NewService(store, nil, 0)

	seedGoals(t, svc, store, ownerID, nil)

	_, _, err := svc.RecordTransaction(context.Background(), ownerID, uuid.New(), ledger.KindDeposit, amt(100), "")
	assert.ErrorIs(t, err, ledger.ErrGoalNotFound)
}

func TestService_RecordTransaction_PartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	goalID := uuid.New()
	txID := uuid.New()
	store := ledger.NewMockRemoteStore(ctrl)
	svc := ledger.NewService(store, nil, 0)

	seedGoals(t, svc, store, ownerID, []*ledger.Goal{
		{ID: goalID, OwnerID: ownerID, Name: "Fund", TargetAmount: amt(20000), CurrentAmount: amt(5000)},
	})

	store.EXPECT().
		InsertTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
			tx.ID = txID
			return nil
		})
	store.EXPECT().
		UpdateGoal(gomock.Any(), goalID, gomock.Any()).
		Return(errors.New("connection reset"))

	tx, goal, err := svc.RecordTransaction(context.Background(), ownerID, goalID, ledger.KindDeposit, amt(1000), "")

	var partial *ledger.PartialFailureError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, txID, partial.TransactionID)
	assert.Equal(t, goalID, partial.GoalID)

	// The transaction survives in history; the goal balance does not move but
	// is flagged stale.
	require.NotNil(t, tx)
	assert.Nil(t, goal)

	store.EXPECT().
		QueryTransactionsForGoal(gomock.Any(), goalID).
		Return([]*ledger.Transaction{{ID: txID, GoalID: goalID, Kind: ledger.KindDeposit, Amount: amt(1000)}}, nil)

	g, txs, err := svc.GoalDetail(context.Background(), ownerID, goalID)
	require.NoError(t, err)
	assert.True(t, g.BalanceStale)
	assert.True(t, g.CurrentAmount.Equal(amt(5000)))
	require.Len(t, txs, 1)
	assert.Equal(t, txID, txs[0].ID)
}

func TestService_MonthlySummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	store := ledger.NewMockRemoteStore(ctrl)
	svc := ledger.NewService(store, nil, 0)

	march := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	april := time.Date(2026, time.April, 2, 9, 0, 0, 0, time.UTC)

	store.EXPECT().QueryGoals(gomock.Any(), ownerID).Return(nil, nil)
	store.EXPECT().
		QueryTransactions(gomock.Any(), ownerID, gomock.Any()).
		Return([]*ledger.Transaction{
			{ID: uuid.New(), Kind: ledger.KindDeposit, Amount: amt(5000), CreatedAt: march},
			{ID: uuid.New(), Kind: ledger.KindWithdrawal, Amount: amt(1200), CreatedAt: march},
			{ID: uuid.New(), Kind: ledger.KindDeposit, Amount: amt(700), CreatedAt: april},
		}, nil)

	_, err := svc.LoadAll(context.Background(), ownerID)
	require.NoError(t, err)

	sum := svc.MonthlySummary(ownerID, time.March, 2026)
	assert.True(t, sum.Income.Equal(amt(5000)))
	assert.True(t, sum.Expense.Equal(amt(1200)))
	assert.Equal(t, 2, sum.Count)

	empty := svc.MonthlySummary(ownerID, time.May, 2026)
	assert.Equal(t, 0, empty.Count)
}

func TestService_CachedSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	store := ledger.NewMockRemoteStore(ctrl)
	cache := ledger.NewMockProjectionCache(ctrl)
	svc := ledger.NewService(store, cache, 0)

	var written []byte

	store.EXPECT().QueryGoals(gomock.Any(), ownerID).Return([]*ledger.Goal{
		{ID: uuid.New(), OwnerID: ownerID, Name: "Bike", TargetAmount: amt(90000), CurrentAmount: amt(30000)},
	}, nil)
	store.EXPECT().QueryTransactions(gomock.Any(), ownerID, gomock.Any()).Return(nil, nil)
	cache.EXPECT().
		Set(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ string, value []byte) error {
			written = value
			return nil
		})

	_, err := svc.LoadAll(context.Background(), ownerID)
	require.NoError(t, err)
	require.NotEmpty(t, written)

	cache.EXPECT().Get(gomock.Any()).Return(written, nil)

	snap, err := svc.CachedSnapshot(ownerID)
	require.NoError(t, err)
	require.Len(t, snap.Goals, 1)
	assert.Equal(t, "Bike", snap.Goals[0].Name)
	assert.False(t, snap.CachedAt.IsZero())
}

func TestService_CachedSnapshot_Missing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := ledger.NewMockProjectionCache(ctrl)
	cache.EXPECT().Get(gomock.Any()).Return(nil, errors.New("no entry"))

	svc := ledger.NewService(ledger.NewMockRemoteStore(ctrl), cache, 0)

	_, err := svc.CachedSnapshot(uuid.New())
	assert.ErrorIs(t, err, ledger.ErrNoSnapshot)
}

func TestService_CacheWriteFailureDoesNotFailOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	store := ledger.NewMockRemoteStore(ctrl)
	cache := ledger.NewMockProjectionCache(ctrl)
	svc := ledger.NewService(store, cache, 0)

	store.EXPECT().QueryGoals(gomock.Any(), ownerID).Return(nil, nil)
	store.EXPECT().QueryTransactions(gomock.Any(), ownerID, gomock.Any()).Return(nil, nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(errors.New("storage full"))

	_, err := svc.LoadAll(context.Background(), ownerID)
	assert.NoError(t, err)
}

func TestService_RecentHistoryCappedAtLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	goalID := uuid.New()
	store := ledger.NewMockRemoteStore(ctrl)
	cache := ledger.NewMockProjectionCache(ctrl)
	svc := ledger.NewService(store, cache, 3)

	var lastWrite []byte

	cache.EXPECT().
		Set(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ string, value []byte) error {
			lastWrite = value
			return nil
		}).
		AnyTimes()

	store.EXPECT().QueryGoals(gomock.Any(), ownerID).Return([]*ledger.Goal{
		{ID: goalID, OwnerID: ownerID, Name: "Fund", TargetAmount: amt(100000)},
	}, nil)
	store.EXPECT().QueryTransactions(gomock.Any(), ownerID, 3).Return(nil, nil)

	_, err := svc.LoadAll(context.Background(), ownerID)
	require.NoError(t, err)

	for range 5 {
		store.EXPECT().
			InsertTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
				tx.ID = uuid.New()
				return nil
			})
		store.EXPECT().UpdateGoal(gomock.Any(), goalID, gomock.Any()).Return(nil)

		_, _, err := svc.RecordTransaction(context.Background(), ownerID, goalID, ledger.KindDeposit, amt(100), "")
		require.NoError(t, err)
	}

	cache.EXPECT().Get(gomock.Any()).Return(lastWrite, nil)

	snap, err := svc.CachedSnapshot(ownerID)
	require.NoError(t, err)
	assert.Len(t, snap.RecentTransactions, 3)
}
