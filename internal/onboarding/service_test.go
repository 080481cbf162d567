package onboarding_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajwalsh/piggy/internal/cache"
	"github.com/ajwalsh/piggy/internal/ledger"
	"github.com/ajwalsh/piggy/internal/onboarding"
)

func newTestService(t *testing.T) (*onboarding.Service, *cache.Store) {
	t.Helper()

	c, err := cache.New(afero.NewMemMapFs(), "cache")
	require.NoError(t, err)

	return onboarding.NewService(c), c
}

func TestService_LoadMissing(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Load(uuid.New())
	assert.ErrorIs(t, err, onboarding.ErrNoProfile)
}

func TestService_SaveAndLoad(t *testing.T) {
	svc, _ := newTestService(t)
	ownerID := uuid.New()

	p := onboarding.NewProfile(ownerID)
	p.InitialBalance = decimal.NewFromInt(10000)

	require.NoError(t, svc.Save(p))
	assert.False(t, p.CreatedAt.IsZero())
	assert.False(t, p.LastUpdated.IsZero())

	got, err := svc.Load(ownerID)
	require.NoError(t, err)
	assert.Equal(t, ownerID, got.OwnerID)
	assert.True(t, got.InitialBalance.Equal(decimal.NewFromInt(10000)))
	assert.False(t, got.SetupComplete)
}

func TestService_Complete(t *testing.T) {
	type testCase struct {
		name    string
		build   func(p *onboarding.Profile)
		wantErr bool
	}

	tests := []testCase{
		{
			name: "Valid",
			build: func(p *onboarding.Profile) {
				p.InitialBalance = decimal.NewFromInt(25000)
				p.HasMonthlyIncome = true
				p.MonthlyIncome = decimal.NewFromInt(60000)
			},
		},
		{
			name: "ValidWithoutIncome",
			build: func(p *onboarding.Profile) {
				p.InitialBalance = decimal.NewFromInt(5000)
			},
		},
		{
			name:    "ZeroBalance",
			build:   func(p *onboarding.Profile) {},
			wantErr: true,
		},
		{
			name: "IncomeClaimedButZero",
			build: func(p *onboarding.Profile) {
				p.InitialBalance = decimal.NewFromInt(5000)
				p.HasMonthlyIncome = true
			},
			wantErr: true,
		},
		{
			name: "IncomeWithoutClaim",
			build: func(p *onboarding.Profile) {
				p.InitialBalance = decimal.NewFromInt(5000)
				p.MonthlyIncome = decimal.NewFromInt(100)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)

			p := onboarding.NewProfile(uuid.New())
			tt.build(p)

			err := svc.Complete(p)
			if tt.wantErr {
				var validation *ledger.ValidationError
				assert.ErrorAs(t, err, &validation)
				assert.False(t, p.SetupComplete)

				return
			}

			require.NoError(t, err)
			assert.True(t, p.SetupComplete)
		})
	}
}

func TestService_CompletePurgesOtherOwners(t *testing.T) {
	svc, c := newTestService(t)
	ownerA := uuid.New()
	ownerB := uuid.New()

	// Owner A left a snapshot and profile behind on this machine.
	require.NoError(t, c.Set(cache.Key("snapshot", ownerA.String()), []byte("{}")))
	pA := onboarding.NewProfile(ownerA)
	pA.InitialBalance = decimal.NewFromInt(100)
	require.NoError(t, svc.Save(pA))

	pB := onboarding.NewProfile(ownerB)
	pB.InitialBalance = decimal.NewFromInt(9000)
	require.NoError(t, svc.Complete(pB))

	_, err := c.Get(cache.Key("snapshot", ownerA.String()))
	assert.ErrorIs(t, err, cache.ErrNoEntry)

	_, err = svc.Load(ownerA)
	assert.ErrorIs(t, err, onboarding.ErrNoProfile)

	got, err := svc.Load(ownerB)
	require.NoError(t, err)
	assert.True(t, got.SetupComplete)

	current, err := c.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, ownerB.String(), current)
}

func TestDecidePostAuthRoute(t *testing.T) {
	svc, c := newTestService(t)
	ownerID := uuid.New()

	// Nothing cached yet: onboarding.
	assert.Equal(t, onboarding.RouteOnboarding, onboarding.DecidePostAuthRoute(c, ownerID))

	// Saved but not completed: still onboarding.
	p := onboarding.NewProfile(ownerID)
	p.InitialBalance = decimal.NewFromInt(5000)
	require.NoError(t, svc.Save(p))
	assert.Equal(t, onboarding.RouteOnboarding, onboarding.DecidePostAuthRoute(c, ownerID))

	// Completed: dashboard.
	require.NoError(t, svc.Complete(p))
	assert.Equal(t, onboarding.RouteDashboard, onboarding.DecidePostAuthRoute(c, ownerID))
}

func TestProfile_Bills(t *testing.T) {
	p := onboarding.NewProfile(uuid.New())
	p.MonthlyIncome = decimal.NewFromInt(50000)

	rent, err := p.AddBill("Rent", decimal.NewFromInt(15000))
	require.NoError(t, err)

	_, err = p.AddBill("Internet", decimal.NewFromInt(1000))
	require.NoError(t, err)

	assert.True(t, p.TotalMonthlyBills().Equal(decimal.NewFromInt(16000)))
	assert.True(t, p.NetMonthly().Equal(decimal.NewFromInt(34000)))

	_, err = p.AddBill("", decimal.NewFromInt(100))
	assert.Error(t, err)

	_, err = p.AddBill("Zero", decimal.Zero)
	assert.Error(t, err)

	assert.True(t, p.RemoveBill(rent.ID))
	assert.False(t, p.RemoveBill(rent.ID))
	assert.True(t, p.TotalMonthlyBills().Equal(decimal.NewFromInt(1000)))
}
