package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unreachable() error { return &UnreachableError{Cause: "connection refused"} }
func rejection() error   { return &RejectionError{StatusCode: 422, Message: "bad sale"} }

func TestCB_TripsAfterConsecutiveUnreachable(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, OpenTimeout: time.Hour})

	for i := 0; i < 2; i++ {
		_ = cb.Execute(func() error { return unreachable() })
		assert.Equal(t, CBClosed, cb.State())
	}

	_ = cb.Execute(func() error { return unreachable() })
	assert.Equal(t, CBOpen, cb.State())

	err := cb.Execute(func() error { return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestCB_RejectionDoesNotTrip(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: time.Hour})

	// The remote answered; the link is fine even though the sale was refused
	for i := 0; i < 5; i++ {
		err := cb.Execute(func() error { return rejection() })
		assert.True(t, IsRejection(err)) // passed through untouched
	}
	assert.Equal(t, CBClosed, cb.State())
}

func TestCB_SuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: time.Hour})

	_ = cb.Execute(func() error { return unreachable() })
	require.NoError(t, cb.Execute(func() error { return nil }))
	_ = cb.Execute(func() error { return unreachable() })

	// Never two consecutive failures
	assert.Equal(t, CBClosed, cb.State())
}

func TestCB_HalfOpenProbeClosesAfterSuccesses(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 2,
		OpenTimeout:      10 * time.Millisecond,
	})

	_ = cb.Execute(func() error { return unreachable() })
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(15 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBHalfOpen, cb.State())
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCB_HalfOpenProbeFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		OpenTimeout:      10 * time.Millisecond,
	})

	_ = cb.Execute(func() error { return unreachable() })
	time.Sleep(15 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	_ = cb.Execute(func() error { return unreachable() })
	assert.Equal(t, CBOpen, cb.State())
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsRejection(rejection()))
	assert.False(t, IsRejection(unreachable()))
	assert.True(t, IsUnreachable(unreachable()))
	assert.False(t, IsUnreachable(rejection()))

	wrapped := errors.Join(errors.New("pass failed"), rejection())
	assert.True(t, IsRejection(wrapped))
}
