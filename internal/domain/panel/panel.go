package panel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Record is implemented by every entity a panel holds. Implementations use
// value receivers so a record can be copied in and out of a list freely.
type Record[T any] interface {
	Identity() string
	WithIdentity(id string) T
	Validate() error
}

// Normalizer is optionally implemented by records that rewrite dependent
// fields before they are stored.
type Normalizer[T any] interface {
	Normalize() T
}

// Labeler is optionally implemented by records that have a human readable
// one-line label.
type Labeler interface {
	Label() string
}

// LabelOf returns rec's label, or its identity when it has none.
func LabelOf[T Record[T]](rec T) string {
	if l, ok := any(rec).(Labeler); ok {
		if s := l.Label(); s != "" {
			return s
		}
	}
	return rec.Identity()
}

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrMissingField     = errors.New("missing required field")
	ErrDuplicateID      = errors.New("duplicate record id")
	ErrInvalidSelection = errors.New("value is not one of the allowed options")
)

// Repository keeps one ordered list of records. Insertion order is display
// order.
type Repository[T Record[T]] interface {
	List(ctx context.Context) ([]T, error)
	Append(ctx context.Context, rec T) error
	Delete(ctx context.Context, id string) error
	Replace(ctx context.Context, recs []T) error
}

// NewID returns a time-ordered record identifier.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

type Field struct {
	Name  string
	Value string
}

func Require(name, value string) Field {
	return Field{Name: name, Value: value}
}

// CheckRequired reports every field whose value is blank.
func CheckRequired(fields ...Field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
}

func CheckOneOf(name, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s=%q (allowed: %s)", ErrInvalidSelection, name, value, strings.Join(allowed, ", "))
}

// Prepare validates rec and applies Normalize when the type provides it.
func Prepare[T Record[T]](rec T) (T, error) {
	if n, ok := any(rec).(Normalizer[T]); ok {
		rec = n.Normalize()
	}
	if err := rec.Validate(); err != nil {
		return rec, err
	}
	return rec, nil
}

// CheckUniqueIDs rejects lists where an identity is blank or repeated.
func CheckUniqueIDs[T Record[T]](recs []T) error {
	seen := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		id := r.Identity()
		if id == "" {
			return fmt.Errorf("%w: blank id", ErrMissingField)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
