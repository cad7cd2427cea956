package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fastReadyConfig(attempts uint64) ReadyConfig {
	return ReadyConfig{MaxAttempts: attempts, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}
}

func TestDefaultReadyConfig(t *testing.T) {
	cfg := DefaultReadyConfig()

	require.Equal(t, uint64(DefaultReadyAttempts), cfg.MaxAttempts)
	require.Equal(t, DefaultInitialInterval, cfg.InitialInterval)
	require.Equal(t, DefaultMaxInterval, cfg.MaxInterval)
}

func TestWaitReady_HealthyFirstAttempt(t *testing.T) {
	f := new(MockFetcher)
	f.On("FetchAndDecodeJSON", "http://backend.test/health").Return([]byte(`{"status":"healthy","database":"connected"}`), nil).Once()

	err := WaitReady(context.Background(), newTestLogger(), newTestClient(t, f), fastReadyConfig(3))

	require.NoError(t, err)
	f.AssertNumberOfCalls(t, "FetchAndDecodeJSON", 1)
}

func TestWaitReady_SuccessAfterRetries(t *testing.T) {
	f := new(MockFetcher)
	f.On("FetchAndDecodeJSON", mock.Anything).Return(nil, errors.New("connection refused")).Once()
	f.On("FetchAndDecodeJSON", mock.Anything).Return([]byte(`{"status":"unhealthy","database":"disconnected","error":"boom"}`), nil).Once()
	f.On("FetchAndDecodeJSON", mock.Anything).Return([]byte(`{"status":"healthy","database":"connected"}`), nil).Once()

	err := WaitReady(context.Background(), newTestLogger(), newTestClient(t, f), fastReadyConfig(5))

	require.NoError(t, err)
	f.AssertNumberOfCalls(t, "FetchAndDecodeJSON", 3)
}

func TestWaitReady_FailureAfterAllAttempts(t *testing.T) {
	f := new(MockFetcher)
	f.On("FetchAndDecodeJSON", mock.Anything).Return([]byte(`{"status":"unhealthy","database":"disconnected"}`), nil)

	err := WaitReady(context.Background(), newTestLogger(), newTestClient(t, f), fastReadyConfig(3))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnhealthy)
	f.AssertNumberOfCalls(t, "FetchAndDecodeJSON", 3)
}

func TestWaitReady_ContextCancellation(t *testing.T) {
	f := new(MockFetcher)
	f.On("FetchAndDecodeJSON", mock.Anything).Return(nil, errors.New("down"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WaitReady(ctx, newTestLogger(), newTestClient(t, f), ReadyConfig{MaxAttempts: 10, InitialInterval: time.Second, MaxInterval: time.Second})

	require.Error(t, err)
}
