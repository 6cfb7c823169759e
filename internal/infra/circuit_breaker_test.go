package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSMTP = errors.New("smtp unavailable")

func newTestCB() *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		OpenTimeout:      50 * time.Millisecond,
	})
}

func TestCircuitBreaker_TripsAfterThreshold(t *testing.T) {
	cb := newTestCB()
	fail := func() error { return errSMTP }

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errSMTP)
	}
	assert.Equal(t, CBOpen, cb.State())

	// Open circuit fast-fails without invoking fn.
	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_RecoversThroughHalfOpen(t *testing.T) {
	cb := newTestCB()
	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errSMTP })
	}
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	// Two successful probes close the circuit.
	require.NoError(t, cb.Execute(func() error { return nil }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	cb := newTestCB()
	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errSMTP })
	}
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	assert.ErrorIs(t, cb.Execute(func() error { return errSMTP }), errSMTP)
	assert.Equal(t, CBOpen, cb.State())
}

func TestCircuitBreaker_ClosedResetsFailureCount(t *testing.T) {
	cb := newTestCB()
	_ = cb.Execute(func() error { return errSMTP })
	_ = cb.Execute(func() error { return errSMTP })
	require.NoError(t, cb.Execute(func() error { return nil }))

	// The streak was broken; two more failures stay under the threshold.
	_ = cb.Execute(func() error { return errSMTP })
	_ = cb.Execute(func() error { return errSMTP })
	assert.Equal(t, CBClosed, cb.State())
}

func TestCBState_String(t *testing.T) {
	assert.Equal(t, "closed", CBClosed.String())
	assert.Equal(t, "open", CBOpen.String())
	assert.Equal(t, "half-open", CBHalfOpen.String())
}
