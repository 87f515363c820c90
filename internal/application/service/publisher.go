package service

import (
	"context"

	"github.com/careerone/portfolio/internal/domain/activity"
)

type ActivityPublisher interface {
	Publish(ctx context.Context, a activity.Activity) error
}
