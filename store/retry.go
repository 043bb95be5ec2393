package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// exportAttempts bounds the transaction attempts of one SQL export.
const exportAttempts = 3

var retryBackoff = 100 * time.Millisecond

// withTransactionRetry runs fn in a transaction, retrying transient
// failures with exponential backoff. fn must be safe to run again.
func withTransactionRetry(ctx context.Context, db *gorm.DB, logger *zap.Logger, attempts int, fn func(tx *gorm.DB) error) error {
	return retry(ctx, logger, attempts, func() error {
		return db.WithContext(ctx).Transaction(fn)
	})
}

func retry(ctx context.Context, logger *zap.Logger, attempts int, fn func() error) error {
	var lastErr error
	for i := 0; i < attempts; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryableError(err) || i == attempts-1 {
			break
		}

		logger.Warn("transaction failed, retrying",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", attempts),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(1<<uint(i)) * retryBackoff):
		}
	}
	if attempts > 1 && isRetryableError(lastErr) {
		return fmt.Errorf("transaction failed after %d attempts: %w", attempts, lastErr)
	}
	return lastErr
}

// isRetryableError reports deadlocks, serialization failures, lock
// timeouts and dropped connections.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, s := range []string{
		"deadlock",
		"serialization failure", "40001", // PostgreSQL SQLSTATE
		"database is locked", // SQLite
		"lock timeout", "lock wait timeout",
		"connection reset", "connection refused", "broken pipe", "bad connection",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
