// Package resilience decorates the call repository with per-call timeouts
// and bounded exponential retry for transient upstream failures.
package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/ebeckman/gong-mcp/internal/domain/call"
	"github.com/ebeckman/gong-mcp/internal/infrastructure/gong"
)

// Config tunes the resilience decorator.
type Config struct {
	Timeout       time.Duration
	MaxRetries    int
	RetryDelay    time.Duration
	RetryMaxDelay time.Duration
}

// DefaultConfig returns conservative defaults suitable for the Gong API.
func DefaultConfig() Config {
	return Config{
		Timeout:       30 * time.Second,
		MaxRetries:    3,
		RetryDelay:    500 * time.Millisecond,
		RetryMaxDelay: 5 * time.Second,
	}
}

// ResilientRepository decorates a call.Repository.
type ResilientRepository struct {
	inner call.Repository
	cfg   Config
}

func NewResilientRepository(inner call.Repository, cfg Config) *ResilientRepository {
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultConfig().RetryDelay
	}
	return &ResilientRepository{inner: inner, cfg: cfg}
}

func (r *ResilientRepository) FindByID(ctx context.Context, id call.ID) (*call.Call, error) {
	return withRetry(ctx, r.cfg, func(ctx context.Context) (*call.Call, error) {
		return r.inner.FindByID(ctx, id)
	})
}

func (r *ResilientRepository) List(ctx context.Context, filter call.ListFilter) ([]*call.Call, error) {
	return withRetry(ctx, r.cfg, func(ctx context.Context) ([]*call.Call, error) {
		return r.inner.List(ctx, filter)
	})
}

func (r *ResilientRepository) GetTranscript(ctx context.Context, id call.ID) (*call.Transcript, error) {
	return withRetry(ctx, r.cfg, func(ctx context.Context) (*call.Transcript, error) {
		return r.inner.GetTranscript(ctx, id)
	})
}

func withRetry[T any](ctx context.Context, cfg Config, op func(context.Context) (T, error)) (T, error) {
	var zero T
	delay := cfg.RetryDelay
	for attempt := 0; ; attempt++ {
		opCtx := ctx
		cancel := func() {}
		if cfg.Timeout > 0 {
			opCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		}
		v, err := op(opCtx)
		cancel()
		if err == nil {
			return v, nil
		}
		if !retryable(err) || attempt >= cfg.MaxRetries {
			return zero, err
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if cfg.RetryMaxDelay > 0 && delay > cfg.RetryMaxDelay {
			delay = cfg.RetryMaxDelay
		}
	}
}

// retryable treats upstream 5xx/network errors and rate limits as
// transient; definitive answers (not found, bad credentials) and caller
// cancellation are not retried.
func retryable(err error) bool {
	switch {
	case errors.Is(err, call.ErrCallNotFound),
		errors.Is(err, call.ErrTranscriptNotFound),
		errors.Is(err, gong.ErrNotFound),
		errors.Is(err, gong.ErrUnauthorized),
		errors.Is(err, context.Canceled):
		return false
	}
	return true
}
