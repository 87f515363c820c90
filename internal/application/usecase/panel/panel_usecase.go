package panel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/careerone/portfolio/internal/application/service"
	"github.com/careerone/portfolio/internal/domain/activity"
	"github.com/careerone/portfolio/internal/domain/panel"
	"github.com/careerone/portfolio/pkg/apperror"
	"github.com/careerone/portfolio/pkg/logger"
	"go.uber.org/zap"
)

// PanelUseCase is the list and draft form for one record type.
type PanelUseCase[T panel.Record[T]] struct {
	kind      string
	repo      panel.Repository[T]
	publisher service.ActivityPublisher
	blank     func() T
	logger    logger.Logger

	mu    sync.Mutex
	draft T
}

// NewPanelUseCase wires a panel for kind. blank builds an empty draft with
// the form defaults; nil means the zero value.
func NewPanelUseCase[T panel.Record[T]](
	kind string,
	repo panel.Repository[T],
	pub service.ActivityPublisher,
	blank func() T,
	log logger.Logger,
) *PanelUseCase[T] {
	if blank == nil {
		blank = func() T {
			var zero T
			return zero
		}
	}
	return &PanelUseCase[T]{
		kind:      kind,
		repo:      repo,
		publisher: pub,
		blank:     blank,
		logger:    log.With(zap.String("panel", kind)),
		draft:     blank(),
	}
}

func (uc *PanelUseCase[T]) Kind() string {
	return uc.kind
}

func (uc *PanelUseCase[T]) List(ctx context.Context) ([]T, error) {
	return uc.repo.List(ctx)
}

// Add stores rec under a fresh id and returns the stored copy. Any id the
// caller set is ignored.
func (uc *PanelUseCase[T]) Add(ctx context.Context, rec T) (T, error) {
	rec, err := panel.Prepare(rec.WithIdentity(panel.NewID()))
	if err != nil {
		var zero T
		return zero, apperror.NewInvalidInput(uc.kind+" validation failed", err)
	}
	if err := uc.repo.Append(ctx, rec); err != nil {
		var zero T
		return zero, err
	}

	uc.logger.Info("Record added", zap.String("id", rec.Identity()))
	uc.record(ctx, activity.VerbAdded, panel.LabelOf(rec))
	return rec, nil
}

func (uc *PanelUseCase[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperror.NewInvalidInput("id is required", nil)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("Record deleted", zap.String("id", id))
	uc.record(ctx, activity.VerbDeleted, id)
	return nil
}

func (uc *PanelUseCase[T]) Draft() T {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.draft
}

// UpdateDraft merges a partial JSON object into the draft. Keys absent
// from patch keep their current value.
func (uc *PanelUseCase[T]) UpdateDraft(patch []byte) (T, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	merged, err := mergeJSON(uc.draft, patch)
	if err != nil {
		return uc.draft, apperror.NewInvalidInput("draft patch must be a JSON object", err)
	}
	if n, ok := any(merged).(panel.Normalizer[T]); ok {
		merged = n.Normalize()
	}
	uc.draft = merged
	return uc.draft, nil
}

func (uc *PanelUseCase[T]) ResetDraft() T {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.draft = uc.blank()
	return uc.draft
}

// SubmitDraft adds the draft as a new record and clears the form. A draft
// that fails validation is kept so the caller can fix it.
func (uc *PanelUseCase[T]) SubmitDraft(ctx context.Context) (T, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	rec, err := uc.Add(ctx, uc.draft)
	if err != nil {
		return rec, err
	}
	uc.draft = uc.blank()
	return rec, nil
}

// Check validates and normalizes a full list without storing it. Records
// keep their ids, which must be present and unique.
func (uc *PanelUseCase[T]) Check(recs []T) ([]T, error) {
	prepared := make([]T, 0, len(recs))
	for i, r := range recs {
		p, err := panel.Prepare(r)
		if err != nil {
			return nil, apperror.NewInvalidInput(fmt.Sprintf("%s record %d is invalid", uc.kind, i), err)
		}
		prepared = append(prepared, p)
	}
	if err := panel.CheckUniqueIDs(prepared); err != nil {
		return nil, apperror.NewInvalidInput(uc.kind+" ids must be unique", err)
	}
	return prepared, nil
}

// Replace swaps the whole list for recs after Check.
func (uc *PanelUseCase[T]) Replace(ctx context.Context, recs []T) error {
	prepared, err := uc.Check(recs)
	if err != nil {
		return err
	}
	return uc.repo.Replace(ctx, prepared)
}

// Seed replaces the list with recs under freshly assigned ids.
func (uc *PanelUseCase[T]) Seed(ctx context.Context, recs []T) error {
	withIDs := make([]T, len(recs))
	for i, r := range recs {
		withIDs[i] = r.WithIdentity(panel.NewID())
	}
	return uc.Replace(ctx, withIDs)
}

func (uc *PanelUseCase[T]) record(ctx context.Context, verb, description string) {
	if uc.publisher == nil {
		return
	}
	a := activity.New(uc.kind, verb, activity.Title(uc.kind, verb), description)
	if err := uc.publisher.Publish(ctx, a); err != nil {
		uc.logger.Error("Failed to publish activity", err, zap.String("kind", a.Kind))
	}
}

func mergeJSON[T any](current T, patch []byte) (T, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(patch, &fields); err != nil {
		return current, err
	}
	if fields == nil {
		return current, errors.New("patch is null")
	}
	// the id belongs to the stored record, never to the form
	delete(fields, "id")

	base, err := json.Marshal(current)
	if err != nil {
		return current, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return current, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	out, err := json.Marshal(merged)
	if err != nil {
		return current, err
	}
	var next T
	if err := json.Unmarshal(out, &next); err != nil {
		return current, err
	}
	return next, nil
}
