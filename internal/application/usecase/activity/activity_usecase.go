package activity

import (
	"context"
	"time"

	"github.com/careerone/portfolio/internal/domain/activity"
	"github.com/careerone/portfolio/pkg/apperror"
	"github.com/careerone/portfolio/pkg/logger"
	"github.com/gorilla/feeds"
	"go.uber.org/zap"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	feedLimit    = 20
)

type ActivityUseCase struct {
	repo   activity.Repository
	logger logger.Logger
}

func NewActivityUseCase(repo activity.Repository, log logger.Logger) *ActivityUseCase {
	return &ActivityUseCase{repo: repo, logger: log}
}

// ExecuteListRecent returns up to limit entries, newest first. Zero means
// the default.
func (uc *ActivityUseCase) ExecuteListRecent(ctx context.Context, limit int) ([]activity.Activity, error) {
	switch {
	case limit < 0:
		return nil, apperror.NewInvalidInput("limit must not be negative", nil)
	case limit == 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return uc.repo.ListRecent(ctx, limit)
}

// ExecuteRecord stores one activity. The worker calls it for every event
// read from the broker.
func (uc *ActivityUseCase) ExecuteRecord(ctx context.Context, a activity.Activity) error {
	if a.Kind == "" {
		return apperror.NewInvalidInput("activity kind is required", nil)
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now().UTC()
	}
	return uc.repo.Save(ctx, a)
}

// ExecuteFeed builds the RSS view of the recent activities. baseURL is the
// public address of the API, used for item links.
func (uc *ActivityUseCase) ExecuteFeed(ctx context.Context, baseURL string) (*feeds.Feed, error) {
	items, err := uc.repo.ListRecent(ctx, feedLimit)
	if err != nil {
		uc.logger.Error("Failed to list activities for feed", err)
		return nil, err
	}

	feed := &feeds.Feed{
		Title:       "Careerone Portfolio - Recent Activities",
		Link:        &feeds.Link{Href: baseURL + "/api/activities"},
		Description: "Changes made to your portfolio and CV.",
		Created:     time.Now().UTC(),
	}
	for _, a := range items {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          a.ID.String(),
			Title:       a.Title,
			Link:        &feeds.Link{Href: baseURL + "/api/activities#" + a.ID.String()},
			Description: a.Description,
			Created:     a.OccurredAt,
		})
	}
	if len(items) > 0 {
		feed.Updated = items[0].OccurredAt
	}

	uc.logger.Debug("Activity feed generated", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}
