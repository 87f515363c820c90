package event

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerone/portfolio/adapters/persistence"
	"github.com/careerone/portfolio/internal/config"
	"github.com/careerone/portfolio/internal/domain/activity"
	"github.com/careerone/portfolio/pkg/logger"
)

func TestActivityEventRoundTrip(t *testing.T) {
	a := activity.New("education", activity.VerbAdded, "Education Added", "University of Colombo")
	a.OccurredAt = time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	value, err := json.Marshal(NewActivityEventPayload(a))
	require.NoError(t, err)
	assert.Contains(t, string(value), `"occurred_at":"2024-03-01T10:30:00Z"`)

	got, err := DecodeActivityEvent(kafka.Message{Key: []byte(a.Kind), Value: value})
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, a.Kind, got.Kind)
	assert.Equal(t, a.Title, got.Title)
	assert.Equal(t, a.Description, got.Description)
	assert.True(t, a.OccurredAt.Equal(got.OccurredAt))
}

func TestDecodeActivityEventRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not json", `{"id":`},
		{"bad id", `{"id":"not-a-uuid","kind":"skill.added"}`},
		{"empty kind", `{"id":"0190a6a8-3c1e-7a3b-9c52-2f4f3a6a1b10","kind":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeActivityEvent(kafka.Message{Value: []byte(tt.value)})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedEvent))
		})
	}
}

func TestLocalPublisherWritesToStore(t *testing.T) {
	repo := persistence.NewMemoryActivityRepo()
	pub := NewLocalPublisher(repo)
	a := activity.New("cv", activity.VerbExported, "Cv Exported", "cv.pdf")

	require.NoError(t, pub.Publish(context.Background(), a))

	items, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].ID)
}

func TestNewKafkaProducerClientNeedsBrokers(t *testing.T) {
	_, err := NewKafkaProducerClient(config.Config{}, logger.NewNopLogger())
	assert.Error(t, err)

	var cfg config.Config
	cfg.Kafka.Brokers = []string{"localhost:9092"}
	cfg.Kafka.ActivityTopic = "portfolio.activity"
	client, err := NewKafkaProducerClient(cfg, logger.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, "portfolio.activity", client.ActivityEventsWriter.Topic)
	client.Close()
}

type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.queue) > 0 {
		msg := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) commits() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}

func activityMessage(t *testing.T, offset int64, a activity.Activity) kafka.Message {
	t.Helper()
	value, err := json.Marshal(NewActivityEventPayload(a))
	require.NoError(t, err)
	return kafka.Message{Partition: 0, Offset: offset, Key: []byte(a.Kind), Value: value}
}

func TestConsumeActivitiesRetriesBeforeMovingOn(t *testing.T) {
	retryInitialDelay, retryMaxDelay = time.Millisecond, 2*time.Millisecond
	t.Cleanup(func() { retryInitialDelay, retryMaxDelay = 500*time.Millisecond, 30*time.Second })

	first := activity.New("education", activity.VerbAdded, "Education Added", "BSc")
	second := activity.New("skill", activity.VerbAdded, "Skill Added", "Go")
	reader := &fakeReader{queue: []kafka.Message{
		{Offset: 4, Value: []byte("not json")},
		activityMessage(t, 5, first),
		activityMessage(t, 6, second),
	}}

	var mu sync.Mutex
	var handled []string
	failures := 2
	handle := func(_ context.Context, a activity.Activity) error {
		mu.Lock()
		defer mu.Unlock()
		handled = append(handled, a.Description)
		if a.ID == first.ID && failures > 0 {
			failures--
			return errors.New("database unavailable")
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- ConsumeActivities(ctx, reader, handle, func(error) {}) }()

	assert.Eventually(t, func() bool { return len(reader.commits()) == 3 }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, []int64{4, 5, 6}, reader.commits())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"BSc", "BSc", "BSc", "Go"}, handled)
}

func TestConsumeActivitiesStopsRetryingOnCancel(t *testing.T) {
	retryInitialDelay, retryMaxDelay = time.Millisecond, time.Millisecond
	t.Cleanup(func() { retryInitialDelay, retryMaxDelay = 500*time.Millisecond, 30*time.Second })

	a := activity.New("profile", activity.VerbUpdated, "Profile Updated", "")
	reader := &fakeReader{queue: []kafka.Message{activityMessage(t, 9, a)}}

	ctx, cancel := context.WithCancel(context.Background())
	attempts := make(chan struct{}, 100)
	handle := func(context.Context, activity.Activity) error {
		select {
		case attempts <- struct{}{}:
		default:
		}
		return errors.New("still down")
	}

	done := make(chan error, 1)
	go func() { done <- ConsumeActivities(ctx, reader, handle, func(error) {}) }()

	<-attempts
	<-attempts
	cancel()
	require.NoError(t, <-done)
	assert.Empty(t, reader.commits(), "a failed activity must stay uncommitted")
}
