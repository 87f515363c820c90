package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFound("skill", "s1"), http.StatusNotFound},
		{"invalid input", NewInvalidInput("name is required", nil), http.StatusBadRequest},
		{"conflict", NewConflict("cv", "preview is not ready"), http.StatusConflict},
		{"unavailable", NewUnavailable("chrome missing", errors.New("exec: not found")), http.StatusServiceUnavailable},
		{"internal", NewInternal("db down", nil), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("load: %w", NewNotFound("profile", "1")), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToHTTPStatus(tt.err))
		})
	}
}

func TestToJSON(t *testing.T) {
	body := NewNotFound("education", "e1").ToJSON()
	assert.Equal(t, "not found", body["error"])
	assert.Equal(t, "education not found", body["message"])
	assert.Equal(t, "education with identifier 'e1' was not found", body["details"])

	internal := NewInternal("pq: relation does not exist", errors.New("driver")).ToJSON()
	assert.Equal(t, "internal server error", internal["error"])
	assert.NotContains(t, internal, "details")
}

func TestErrorKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewInternal("save failed", cause)

	assert.True(t, errors.Is(err, ErrInternal))
	assert.Equal(t, cause, err.Cause())
	assert.Contains(t, err.Error(), "disk full")
}
