package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/careerone/portfolio/internal/domain/activity"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// ErrMalformedEvent marks a message that can never be processed and should
// be committed and skipped.
var ErrMalformedEvent = errors.New("malformed activity event")

// DecodeActivityEvent turns a message from the activity topic back into an
// activity.
func DecodeActivityEvent(msg kafka.Message) (activity.Activity, error) {
	var payload ActivityEventPayload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		return activity.Activity{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	id, err := uuid.Parse(payload.ID)
	if err != nil {
		return activity.Activity{}, fmt.Errorf("%w: bad id %q", ErrMalformedEvent, payload.ID)
	}
	if payload.Kind == "" {
		return activity.Activity{}, fmt.Errorf("%w: empty kind", ErrMalformedEvent)
	}
	return activity.Activity{
		ID:          id,
		Kind:        payload.Kind,
		Title:       payload.Title,
		Description: payload.Description,
		OccurredAt:  payload.OccurredAt,
	}, nil
}

type ActivityHandler func(ctx context.Context, a activity.Activity) error

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

var (
	retryInitialDelay = 500 * time.Millisecond
	retryMaxDelay     = 30 * time.Second
)

// ConsumeActivities reads the activity topic until ctx is done. Malformed
// messages are committed and skipped. A handler error is retried with
// backoff and the next message is not fetched until it succeeds, so a
// later commit can never move the offset past an unsaved activity.
func ConsumeActivities(ctx context.Context, reader MessageReader, handle ActivityHandler, onError func(error)) error {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			onError(fmt.Errorf("fetch message: %w", err))
			continue
		}

		a, err := DecodeActivityEvent(msg)
		if err != nil {
			onError(err)
			commit(ctx, reader, msg, onError)
			continue
		}

		if !handleWithRetry(ctx, a, handle, onError) {
			return nil
		}
		commit(ctx, reader, msg, onError)
	}
}

// handleWithRetry reports false when ctx ended before handle succeeded.
func handleWithRetry(ctx context.Context, a activity.Activity, handle ActivityHandler, onError func(error)) bool {
	delay := retryInitialDelay
	for attempt := 1; ; attempt++ {
		err := handle(ctx, a)
		if err == nil {
			return true
		}
		onError(fmt.Errorf("handle activity %s (attempt %d): %w", a.ID, attempt, err))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
		delay *= 2
		if delay > retryMaxDelay {
			delay = retryMaxDelay
		}
	}
}

func commit(ctx context.Context, reader MessageReader, msg kafka.Message, onError func(error)) {
	if err := reader.CommitMessages(ctx, msg); err != nil {
		onError(fmt.Errorf("commit message: %w", err))
	}
}
