package activity_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerone/portfolio/adapters/persistence"
	activityUC "github.com/careerone/portfolio/internal/application/usecase/activity"
	"github.com/careerone/portfolio/internal/domain/activity"
	"github.com/careerone/portfolio/pkg/apperror"
	"github.com/careerone/portfolio/pkg/logger"
)

func seeded(t *testing.T, n int) (*activityUC.ActivityUseCase, []activity.Activity) {
	t.Helper()
	repo := persistence.NewMemoryActivityRepo()
	uc := activityUC.NewActivityUseCase(repo, logger.NewNopLogger())

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	saved := make([]activity.Activity, 0, n)
	for i := 0; i < n; i++ {
		a := activity.New("skill", activity.VerbAdded, "Skill Added", fmt.Sprintf("skill %d", i))
		a.OccurredAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, uc.ExecuteRecord(context.Background(), a))
		saved = append(saved, a)
	}
	return uc, saved
}

func TestListRecentNewestFirst(t *testing.T) {
	uc, saved := seeded(t, 3)

	got, err := uc.ExecuteListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, saved[2].ID, got[0].ID)
	assert.Equal(t, saved[1].ID, got[1].ID)
}

func TestListRecentLimits(t *testing.T) {
	uc, _ := seeded(t, activityUC.MaxLimit+5)
	ctx := context.Background()

	got, err := uc.ExecuteListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, activityUC.DefaultLimit)

	got, err = uc.ExecuteListRecent(ctx, 1000)
	require.NoError(t, err)
	assert.Len(t, got, activityUC.MaxLimit)

	_, err = uc.ExecuteListRecent(ctx, -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
}

func TestRecordValidatesAndFillsTime(t *testing.T) {
	repo := persistence.NewMemoryActivityRepo()
	uc := activityUC.NewActivityUseCase(repo, logger.NewNopLogger())
	ctx := context.Background()

	err := uc.ExecuteRecord(ctx, activity.Activity{Title: "No kind"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))

	a := activity.New("cv", activity.VerbExported, "Cv Exported", "")
	a.OccurredAt = time.Time{}
	require.NoError(t, uc.ExecuteRecord(ctx, a))

	got, err := uc.ExecuteListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].OccurredAt.IsZero())
}

func TestRecordIsIdempotentPerID(t *testing.T) {
	uc, saved := seeded(t, 1)
	require.NoError(t, uc.ExecuteRecord(context.Background(), saved[0]))

	got, err := uc.ExecuteListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFeed(t *testing.T) {
	uc, saved := seeded(t, 2)

	feed, err := uc.ExecuteFeed(context.Background(), "http://localhost:8080")
	require.NoError(t, err)
	assert.Equal(t, "Careerone Portfolio - Recent Activities", feed.Title)
	assert.Equal(t, "http://localhost:8080/api/activities", feed.Link.Href)
	require.Len(t, feed.Items, 2)
	assert.Equal(t, saved[1].ID.String(), feed.Items[0].Id)
	assert.Equal(t, "skill 1", feed.Items[0].Description)
	assert.Equal(t, saved[1].OccurredAt, feed.Updated)

	rss, err := feed.ToRss()
	require.NoError(t, err)
	assert.Contains(t, rss, "<title>Skill Added</title>")
}

func TestFeedWithNoActivities(t *testing.T) {
	uc := activityUC.NewActivityUseCase(persistence.NewMemoryActivityRepo(), logger.NewNopLogger())

	feed, err := uc.ExecuteFeed(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, feed.Items)
	assert.True(t, feed.Updated.IsZero())
}
