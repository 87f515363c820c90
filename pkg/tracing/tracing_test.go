package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerone/portfolio/internal/config"
	"github.com/careerone/portfolio/pkg/logger"
)

func TestTracingDisabledWithoutEndpoint(t *testing.T) {
	tp, err := NewTracerProvider(config.Config{}, logger.NewNopLogger(), "careerone-portfolio")
	require.NoError(t, err)
	assert.Nil(t, tp)
	assert.NoError(t, Shutdown(context.Background(), tp))
}
