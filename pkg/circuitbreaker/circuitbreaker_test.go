package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream failed")

func TestBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	cfg := DefaultConfig("test")
	cfg.ConsecutiveFailures = 3
	b := New[string](cfg)

	for i := 0; i < 3; i++ {
		_, err := b.Execute(func() (string, error) { return "", errUpstream })
		assert.ErrorIs(t, err, errUpstream)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	called := false
	_, err := b.Execute(func() (string, error) {
		called = true
		return "ok", nil
	})
	assert.True(t, IsOpen(err))
	assert.False(t, called)
}

func TestBreaker_HalfOpenRecovers(t *testing.T) {
	cfg := DefaultConfig("test")
	cfg.ConsecutiveFailures = 1
	cfg.Timeout = 10 * time.Millisecond
	b := New[int](cfg)

	_, _ = b.Execute(func() (int, error) { return 0, errUpstream })
	require.Equal(t, gobreaker.StateOpen, b.State())

	time.Sleep(20 * time.Millisecond)

	v, err := b.Execute(func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreaker_IsSuccessfulIgnoresClientErrors(t *testing.T) {
	errClient := errors.New("bad request")
	cfg := DefaultConfig("test")
	cfg.ConsecutiveFailures = 1
	cfg.IsSuccessful = func(err error) bool { return err == nil || errors.Is(err, errClient) }
	b := New[int](cfg)

	_, err := b.Execute(func() (int, error) { return 0, errClient })

	assert.ErrorIs(t, err, errClient)
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestIsOpen(t *testing.T) {
	assert.True(t, IsOpen(gobreaker.ErrOpenState))
	assert.True(t, IsOpen(gobreaker.ErrTooManyRequests))
	assert.False(t, IsOpen(errUpstream))
	assert.False(t, IsOpen(nil))
}
