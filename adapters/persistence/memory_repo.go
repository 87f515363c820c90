package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/careerone/portfolio/internal/domain/activity"
	"github.com/careerone/portfolio/internal/domain/panel"
	"github.com/careerone/portfolio/internal/domain/profile"
	"github.com/careerone/portfolio/pkg/apperror"
)

type memoryPanelRepo[T panel.Record[T]] struct {
	kind string

	mu   sync.RWMutex
	recs []T
}

// NewMemoryPanelRepo keeps a panel in process memory. Contents are lost on
// restart.
func NewMemoryPanelRepo[T panel.Record[T]](kind string) panel.Repository[T] {
	return &memoryPanelRepo[T]{kind: kind, recs: make([]T, 0)}
}

func (r *memoryPanelRepo[T]) List(ctx context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, len(r.recs))
	copy(out, r.recs)
	return out, nil
}

func (r *memoryPanelRepo[T]) Append(ctx context.Context, rec T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.recs {
		if existing.Identity() == rec.Identity() {
			return apperror.NewConflict(r.kind, "a record with id '"+rec.Identity()+"' already exists")
		}
	}
	r.recs = append(r.recs, rec)
	return nil
}

func (r *memoryPanelRepo[T]) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rec := range r.recs {
		if rec.Identity() == id {
			r.recs = append(r.recs[:i:i], r.recs[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound(r.kind, id)
}

func (r *memoryPanelRepo[T]) Replace(ctx context.Context, recs []T) error {
	next := make([]T, len(recs))
	copy(next, recs)
	r.mu.Lock()
	r.recs = next
	r.mu.Unlock()
	return nil
}

type memoryProfileRepo struct {
	mu sync.RWMutex
	p  profile.Profile
}

func NewMemoryProfileRepo() profile.Repository {
	return &memoryProfileRepo{}
}

func (r *memoryProfileRepo) Get(ctx context.Context) (*profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p := r.p
	if p.ProfileImage != nil {
		img := *p.ProfileImage
		p.ProfileImage = &img
	}
	return &p, nil
}

func (r *memoryProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = *p
	if p.ProfileImage != nil {
		img := *p.ProfileImage
		r.p.ProfileImage = &img
	}
	return nil
}

const memoryActivityCap = 500

type memoryActivityRepo struct {
	mu    sync.RWMutex
	items []activity.Activity
}

// NewMemoryActivityRepo keeps the most recent activities only; the oldest
// entries are dropped past a fixed cap.
func NewMemoryActivityRepo() activity.Repository {
	return &memoryActivityRepo{}
}

func (r *memoryActivityRepo) Save(ctx context.Context, a activity.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.ID == a.ID {
			return nil
		}
	}
	r.items = append(r.items, a)
	if len(r.items) > memoryActivityCap {
		r.items = append([]activity.Activity(nil), r.items[len(r.items)-memoryActivityCap:]...)
	}
	return nil
}

func (r *memoryActivityRepo) ListRecent(ctx context.Context, limit int) ([]activity.Activity, error) {
	r.mu.RLock()
	out := make([]activity.Activity, len(r.items))
	copy(out, r.items)
	r.mu.RUnlock()

	// ids are time ordered, so they break ties between equal timestamps
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].ID.String() > out[j].ID.String()
		}
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
