package activity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	VerbAdded    = "added"
	VerbDeleted  = "deleted"
	VerbUpdated  = "updated"
	VerbUploaded = "uploaded"
	VerbExported = "exported"
	VerbImported = "imported"
)

// Activity is one "recent activity" entry. Kind is "<subject>.<verb>",
// for example "education.added".
type Activity struct {
	ID          uuid.UUID `json:"id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func Kind(subject, verb string) string {
	return subject + "." + verb
}

// Title renders a subject and verb as a heading, "Education Added".
func Title(subject, verb string) string {
	return capitalize(subject) + " " + capitalize(verb)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func New(subject, verb, title, description string) Activity {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return Activity{
		ID:          id,
		Kind:        Kind(subject, verb),
		Title:       title,
		Description: description,
		OccurredAt:  time.Now().UTC(),
	}
}

type Repository interface {
	Save(ctx context.Context, a Activity) error
	// ListRecent returns at most limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]Activity, error)
}
