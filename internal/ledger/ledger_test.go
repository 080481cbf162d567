package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajwalsh/piggy/internal/ledger"
)

func TestGoalProgress(t *testing.T) {
	type testCase struct {
		name    string
		current int64
		target  int64
		want    float64
	}

	tests := []testCase{
		{name: "Empty", current: 0, target: 1000, want: 0},
		{name: "Half", current: 500, target: 1000, want: 50},
		{name: "Exact", current: 1000, target: 1000, want: 100},
		{name: "OverfundedClamps", current: 1500, target: 1000, want: 100},
		{name: "ZeroTarget", current: 500, target: 0, want: 0},
		{name: "NegativeTarget", current: 500, target: -100, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &ledger.Goal{CurrentAmount: amt(tt.current), TargetAmount: amt(tt.target)}

			got := ledger.GoalProgress(g)
			assert.InDelta(t, tt.want, got, 0.0001)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestNextDeadline(t *testing.T) {
	near := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	far := time.Date(2027, time.January, 15, 0, 0, 0, 0, time.UTC)

	t.Run("EarliestActiveWins", func(t *testing.T) {
		goals := []*ledger.Goal{
			{Name: "Far", Deadline: &far},
			{Name: "Near", Deadline: &near},
			{Name: "None"},
		}

		got, ok := ledger.NextDeadline(goals)
		require.True(t, ok)
		assert.Equal(t, near, got)
	})

	t.Run("CompletedGoalsIgnored", func(t *testing.T) {
		goals := []*ledger.Goal{
			{Name: "Done", Deadline: &near, IsCompleted: true},
			{Name: "Far", Deadline: &far},
		}

		got, ok := ledger.NextDeadline(goals)
		require.True(t, ok)
		assert.Equal(t, far, got)
	})

	t.Run("NoDeadlines", func(t *testing.T) {
		_, ok := ledger.NextDeadline([]*ledger.Goal{{Name: "None"}})
		assert.False(t, ok)
	})
}

func TestCategory(t *testing.T) {
	assert.True(t, ledger.CategoryTravel.Valid())
	assert.True(t, ledger.CategoryOther.Valid())
	assert.False(t, ledger.Category("Yachts").Valid())

	assert.Equal(t, "fas fa-plane", ledger.CategoryTravel.DefaultIcon())
	assert.Equal(t, "fas fa-shield-alt", ledger.CategoryEmergency.DefaultIcon())
	assert.Equal(t, "fas fa-bullseye", ledger.CategoryOther.DefaultIcon())
}
