package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	ctx := context.Background()
	transient := &RetryableError{Err: errors.New("not ready")}

	tests := []struct {
		name      string
		attempts  int
		failures  int
		err       error
		wantCalls int
		wantErr   bool
	}{
		{"FirstTry", 3, 0, nil, 1, false},
		{"RecoversAfterTransient", 3, 2, transient, 3, false},
		{"GivesUp", 2, 5, transient, 2, true},
		{"PermanentStopsAtOnce", 3, 5, errors.New("auth failed"), 1, true},
		{"ZeroAttemptsRunsOnce", 0, 5, transient, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(ctx, tt.attempts, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("Retry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryUnwrap(t *testing.T) {
	cause := errors.New("refused")
	err := Retry(context.Background(), 1, 0, func() error { return &RetryableError{Err: cause} })
	if !errors.Is(err, cause) {
		t.Errorf("Retry() error = %v, want it to wrap %v", err, cause)
	}
}

func TestRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, 3, time.Hour, func() error { return &RetryableError{Err: errors.New("down")} })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() error = %v, want context.Canceled", err)
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	_, err := NewRedisCache(context.Background(), RedisConfig{
		Addr:            "127.0.0.1:1",
		ConnectAttempts: 2,
		ConnectDelay:    time.Millisecond,
	})
	if err == nil {
		t.Fatal("NewRedisCache() should fail for an unreachable server")
	}
}
