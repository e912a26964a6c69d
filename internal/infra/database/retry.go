package database

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"time"
)

const (
	retryAttempts  = 5
	retryBaseDelay = 2 * time.Second
)

// withRetry runs a read query, retrying transient network failures with
// linear backoff (2s, 4s, 6s, ...). Non-network errors fail immediately.
// This mirrors the retry policy the persistence layer already applies on
// the ERP side, so alerting survives the same connection hiccups.
func withRetry[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if !isTransient(err) {
			return zero, err
		}
		lastErr = err
		if attempt == retryAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(retryBaseDelay * time.Duration(attempt+1)):
		}
	}
	return zero, lastErr
}

func isTransient(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	// lib/pq surfaces some transport failures as plain errors.
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe")
}
