package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/runclub/runtrack/internal/domain"
	"github.com/runclub/runtrack/internal/repository/postgres"
	"github.com/runclub/runtrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardRepository_Top(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLeaderboardRepository(testDB.DB)
	ctx := context.Background()

	today := time.Now()
	userA := testutil.NewUserBuilder().WithDisplayName("A").Build(t, testDB.DB)
	userB := testutil.NewUserBuilder().WithDisplayName("B").Build(t, testDB.DB)

	testutil.NewRecordBuilder(userA.ID).WithRunDate(today).WithDistance(10).Build(t, testDB.DB)
	testutil.NewRecordBuilder(userA.ID).WithRunDate(today).WithDistance(5).Build(t, testDB.DB)
	testutil.NewRecordBuilder(userB.ID).WithRunDate(today).WithDistance(20).Build(t, testDB.DB)

	entries, err := repo.Top(ctx, domain.PeriodDaily, 100)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, userB.ID, entries[0].UserID)
	assert.Equal(t, "B", entries[0].DisplayName)
	assert.InDelta(t, 20.0, entries[0].TotalDistance, 0.001)
	assert.Equal(t, userA.ID, entries[1].UserID)
	assert.InDelta(t, 15.0, entries[1].TotalDistance, 0.001)
}

func TestLeaderboardRepository_Top_Limit(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLeaderboardRepository(testDB.DB)
	ctx := context.Background()

	today := time.Now()
	for i := 0; i < 5; i++ {
		user := testutil.NewUserBuilder().Build(t, testDB.DB)
		testutil.NewRecordBuilder(user.ID).WithRunDate(today).WithDistance(float64(i + 1)).Build(t, testDB.DB)
	}

	entries, err := repo.Top(ctx, domain.PeriodMonthly, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.InDelta(t, 5.0, entries[0].TotalDistance, 0.001)
}

func TestLeaderboardRepository_UserRank(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLeaderboardRepository(testDB.DB)
	ctx := context.Background()

	today := time.Now()
	distances := map[string]float64{"A": 50, "B": 30, "C": 30, "D": 10}
	users := make(map[string]uuid.UUID)
	for name, distance := range distances {
		user := testutil.NewUserBuilder().WithDisplayName(name).Build(t, testDB.DB)
		users[name] = user.ID
		testutil.NewRecordBuilder(user.ID).WithRunDate(today).WithDistance(distance).Build(t, testDB.DB)
	}
	absent := testutil.NewUserBuilder().WithDisplayName("E").Build(t, testDB.DB)

	tests := []struct {
		name         string
		userID       uuid.UUID
		wantRank     *int
		wantDistance float64
	}{
		{"top of the board", users["A"], intPtr(1), 50},
		{"tied second", users["B"], intPtr(2), 30},
		{"tie shares rank", users["C"], intPtr(2), 30},
		{"after a tie", users["D"], intPtr(4), 10},
		{"absent user", absent.ID, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := repo.UserRank(ctx, domain.PeriodMonthly, tt.userID)
			require.NoError(t, err)

			if tt.wantRank == nil {
				assert.Nil(t, result.Rank)
			} else {
				require.NotNil(t, result.Rank)
				assert.Equal(t, *tt.wantRank, *result.Rank)
			}
			assert.InDelta(t, tt.wantDistance, result.TotalDistance, 0.001)
		})
	}
}

func TestLeaderboardRepository_PeriodWindows(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLeaderboardRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.NewUserBuilder().Build(t, testDB.DB)
	today := time.Now()

	// A run two months back is outside every current window.
	testutil.NewRecordBuilder(user.ID).WithRunDate(today.AddDate(0, -2, 0)).WithDistance(42).Build(t, testDB.DB)

	for _, period := range []domain.LeaderboardPeriod{domain.PeriodDaily, domain.PeriodWeekly, domain.PeriodMonthly} {
		entries, err := repo.Top(ctx, period, 100)
		require.NoError(t, err)
		assert.Empty(t, entries, "period %s", period)

		result, err := repo.UserRank(ctx, period, user.ID)
		require.NoError(t, err)
		assert.Nil(t, result.Rank)
	}
}

func intPtr(v int) *int {
	return &v
}
