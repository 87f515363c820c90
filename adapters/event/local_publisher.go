package event

import (
	"context"

	"github.com/careerone/portfolio/internal/application/service"
	"github.com/careerone/portfolio/internal/domain/activity"
)

// LocalPublisher records activities straight into the store, for
// deployments without a broker.
type LocalPublisher struct {
	repo activity.Repository
}

func NewLocalPublisher(repo activity.Repository) *LocalPublisher {
	return &LocalPublisher{repo: repo}
}

func (p *LocalPublisher) Publish(ctx context.Context, a activity.Activity) error {
	return p.repo.Save(ctx, a)
}

var _ service.ActivityPublisher = (*LocalPublisher)(nil)
