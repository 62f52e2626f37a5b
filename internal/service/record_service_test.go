package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/runclub/runtrack/internal/domain"
	"github.com/runclub/runtrack/internal/repository"
	"github.com/runclub/runtrack/internal/repository/postgres"
	"github.com/runclub/runtrack/internal/service"
	"github.com/runclub/runtrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecordService(t *testing.T) (*service.RecordService, *testutil.MemoryStore, *testutil.TestDB) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	store := testutil.NewMemoryStore()
	svc := service.NewRecordService(postgres.NewRecordRepository(testDB.DB), store)
	return svc, store, testDB
}

func TestRecordService_Create_DurationMinutesToSeconds(t *testing.T) {
	svc, _, testDB := newRecordService(t)
	ctx := context.Background()

	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	minutes := 30
	record, err := svc.Create(ctx, user.ID, service.CreateRecordInput{
		RunDate:         time.Now(),
		Distance:        5.2,
		DurationMinutes: &minutes,
	})
	require.NoError(t, err)

	require.NotNil(t, record.Duration)
	assert.Equal(t, 1800, *record.Duration)

	stored, err := svc.Get(ctx, user.ID, record.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Duration)
	assert.Equal(t, 1800, *stored.Duration)
}

func TestRecordService_Create_NoDuration(t *testing.T) {
	svc, _, testDB := newRecordService(t)

	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	record, err := svc.Create(context.Background(), user.ID, service.CreateRecordInput{
		RunDate:  time.Now(),
		Distance: 3,
	})
	require.NoError(t, err)
	assert.Nil(t, record.Duration)
}

func TestRecordService_Get_Ownership(t *testing.T) {
	svc, _, testDB := newRecordService(t)
	ctx := context.Background()

	owner := testutil.NewUserBuilder().Build(t, testDB.DB)
	intruder := testutil.NewUserBuilder().Build(t, testDB.DB)
	record := testutil.NewRecordBuilder(owner.ID).Build(t, testDB.DB)

	got, err := svc.Get(ctx, owner.ID, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)

	_, err = svc.Get(ctx, intruder.ID, record.ID)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	_, err = svc.Get(ctx, owner.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestRecordService_Update_MissClassification(t *testing.T) {
	svc, _, testDB := newRecordService(t)
	ctx := context.Background()

	owner := testutil.NewUserBuilder().Build(t, testDB.DB)
	intruder := testutil.NewUserBuilder().Build(t, testDB.DB)
	record := testutil.NewRecordBuilder(owner.ID).WithDistance(5).Build(t, testDB.DB)

	distance := 7.5
	updated, err := svc.Update(ctx, owner.ID, record.ID, service.UpdateRecordInput{Distance: &distance})
	require.NoError(t, err)
	assert.Equal(t, 7.5, updated.Distance)

	_, err = svc.Update(ctx, intruder.ID, record.ID, service.UpdateRecordInput{Distance: &distance})
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	_, err = svc.Update(ctx, owner.ID, uuid.New(), service.UpdateRecordInput{Distance: &distance})
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestRecordService_Delete_RemovesEvidence(t *testing.T) {
	svc, store, testDB := newRecordService(t)
	ctx := context.Background()

	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	key := user.ID.String() + "/evidence.jpg"
	url, err := store.Put(ctx, key, "image/jpeg", strings.NewReader("jpeg-bytes"), 10)
	require.NoError(t, err)
	require.True(t, store.Has(key))

	record := testutil.NewRecordBuilder(user.ID).WithEvidenceURL(url).Build(t, testDB.DB)

	require.NoError(t, svc.Delete(ctx, user.ID, record.ID))

	_, err = svc.Get(ctx, user.ID, record.ID)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.False(t, store.Has(key), "evidence image should be deleted with the record")
}

func TestRecordService_Delete_ForeignURLLeftAlone(t *testing.T) {
	svc, store, testDB := newRecordService(t)
	ctx := context.Background()

	user := testutil.NewUserBuilder().Build(t, testDB.DB)
	record := testutil.NewRecordBuilder(user.ID).
		WithEvidenceURL("https://elsewhere.example/pic.jpg").
		Build(t, testDB.DB)

	require.NoError(t, svc.Delete(ctx, user.ID, record.ID))
	assert.Equal(t, 0, store.Len())
}

func TestRecordService_Delete_Misses(t *testing.T) {
	svc, _, testDB := newRecordService(t)
	ctx := context.Background()

	owner := testutil.NewUserBuilder().Build(t, testDB.DB)
	intruder := testutil.NewUserBuilder().Build(t, testDB.DB)
	record := testutil.NewRecordBuilder(owner.ID).Build(t, testDB.DB)

	err := svc.Delete(ctx, intruder.ID, record.ID)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	err = svc.Delete(ctx, owner.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	// The record survives the intruder's attempt.
	_, err = svc.Get(ctx, owner.ID, record.ID)
	require.NoError(t, err)
}

func TestRecordService_List_Defaults(t *testing.T) {
	svc, _, testDB := newRecordService(t)
	ctx := context.Background()

	user := testutil.NewUserBuilder().Build(t, testDB.DB)
	testutil.NewRecordBuilder(user.ID).BuildMany(t, testDB.DB, 12)

	page, err := svc.List(ctx, user.ID, repository.ListOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, int64(12), page.Count)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Records, 10)
}

func TestRecordService_Stats(t *testing.T) {
	svc, _, testDB := newRecordService(t)
	ctx := context.Background()

	user := testutil.NewUserBuilder().Build(t, testDB.DB)
	today := time.Now()

	// Three runs across two distinct days.
	testutil.NewRecordBuilder(user.ID).WithRunDate(today).WithDistance(4).Build(t, testDB.DB)
	testutil.NewRecordBuilder(user.ID).WithRunDate(today).WithDistance(6).Build(t, testDB.DB)
	testutil.NewRecordBuilder(user.ID).WithRunDate(today.AddDate(0, 0, -1)).WithDistance(10).Build(t, testDB.DB)

	stats, err := svc.Stats(ctx, user.ID)
	require.NoError(t, err)

	assert.InDelta(t, 20.0, stats.TotalDistance, 0.001)
	assert.Equal(t, 2, stats.DaysCount)
	assert.InDelta(t, 10.0, stats.AverageDistance, 0.001)
	assert.Len(t, stats.DailyDistance, 2)
	assert.NotEmpty(t, stats.WeeklyDistance)
}

func TestRecordService_Stats_Empty(t *testing.T) {
	svc, _, testDB := newRecordService(t)

	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	stats, err := svc.Stats(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, 0.0, stats.TotalDistance)
	assert.Equal(t, 0.0, stats.AverageDistance)
	assert.Equal(t, 0, stats.DaysCount)
	assert.NotNil(t, stats.DailyDistance)
	assert.NotNil(t, stats.WeeklyDistance)
	assert.Empty(t, stats.DailyDistance)
	assert.Empty(t, stats.WeeklyDistance)
}

func TestUploadService_UploadImage(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := service.NewUploadService(store)
	userID := uuid.New()

	url, err := svc.UploadImage(context.Background(), userID, "run.JPG", "image/jpeg", strings.NewReader("data"), 4)
	require.NoError(t, err)

	assert.Contains(t, url, userID.String()+"/")
	assert.True(t, strings.HasSuffix(url, ".jpg"), "extension should be lowercased: %s", url)
	assert.Equal(t, 1, store.Len())

	_, err = svc.UploadImage(context.Background(), userID, "notes.txt", "text/plain", strings.NewReader("data"), 4)
	assert.ErrorIs(t, err, service.ErrNotImage)
	assert.Equal(t, 1, store.Len())
}
