package easythreads

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFillDefaults(t *testing.T) {
	var o Options
	o.FillDefaults()

	assert.Equal(t, defaultPollInterval, o.PollInterval)
	assert.Equal(t, *GetDefaultRP(), o.DefaultRetry)
	assert.IsType(t, &NoopMetrics{}, o.Metrics)

	// Workers is never defaulted; New rejects it instead
	assert.Zero(t, o.Workers)
}

func TestRetryPolicyOverlay(t *testing.T) {
	base := RetryPolicy{Attempts: 1, Initial: 200 * time.Millisecond, Max: 5 * time.Second}

	assert.Equal(t, base, base.overlay(nil))

	got := base.overlay(&RetryPolicy{Attempts: 3})
	assert.Equal(t, 3, got.Attempts)
	assert.Equal(t, base.Initial, got.Initial)
	assert.Equal(t, base.Max, got.Max)

	got = base.overlay(&RetryPolicy{Initial: time.Millisecond, Max: time.Second})
	assert.Equal(t, base.Attempts, got.Attempts)
	assert.Equal(t, time.Millisecond, got.Initial)
	assert.Equal(t, time.Second, got.Max)
}
