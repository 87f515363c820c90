package cv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerone/portfolio/internal/domain/cv"
	"github.com/careerone/portfolio/pkg/logger"
)

const testDelay = 50 * time.Millisecond

func TestGeneratorBecomesReadyOnlyAfterDelay(t *testing.T) {
	g := NewGenerator(testDelay, logger.NewNopLogger())
	defer g.Close()

	assert.Equal(t, cv.StateIdle, g.Status().State)

	st := g.Request()
	require.Equal(t, cv.StateGenerating, st.State)
	require.NotNil(t, st.RequestedAt)
	assert.Nil(t, st.ReadyAt)

	require.Eventually(t, func() bool { return g.Status().IsReady() }, 2*time.Second, 5*time.Millisecond)

	final := g.Status()
	require.NotNil(t, final.ReadyAt)
	assert.GreaterOrEqual(t, final.ReadyAt.Sub(*final.RequestedAt), testDelay)
}

func TestGeneratorIgnoresRequestWhileGenerating(t *testing.T) {
	g := NewGenerator(time.Hour, logger.NewNopLogger())
	defer g.Close()

	first := g.Request()
	second := g.Request()

	assert.Equal(t, cv.StateGenerating, second.State)
	assert.Equal(t, *first.RequestedAt, *second.RequestedAt)
}

func TestGeneratorRequestFromReadyStartsOver(t *testing.T) {
	g := NewGenerator(testDelay, logger.NewNopLogger())
	defer g.Close()

	g.Request()
	require.Eventually(t, func() bool { return g.Status().IsReady() }, 2*time.Second, 5*time.Millisecond)

	st := g.Request()
	assert.Equal(t, cv.StateGenerating, st.State)
	assert.Nil(t, st.ReadyAt)
	require.Eventually(t, func() bool { return g.Status().IsReady() }, 2*time.Second, 5*time.Millisecond)
}

func TestGeneratorResetCancelsPendingTimer(t *testing.T) {
	g := NewGenerator(testDelay, logger.NewNopLogger())
	defer g.Close()

	g.Request()
	st := g.Reset()
	assert.Equal(t, cv.StateIdle, st.State)
	assert.Nil(t, st.RequestedAt)

	time.Sleep(3 * testDelay)
	assert.Equal(t, cv.StateIdle, g.Status().State)
}

func TestGeneratorCloseStopsEverything(t *testing.T) {
	g := NewGenerator(testDelay, logger.NewNopLogger())

	g.Request()
	g.Close()
	time.Sleep(3 * testDelay)
	assert.Equal(t, cv.StateGenerating, g.Status().State)

	st := g.Request()
	assert.Equal(t, cv.StateGenerating, st.State)
	time.Sleep(3 * testDelay)
	assert.False(t, g.Status().IsReady())
}
