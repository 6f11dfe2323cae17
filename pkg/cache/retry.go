package cache

import (
	"context"
	"errors"
	"time"
)

// transientError marks a failure worth retrying, such as a registry timeout
// or a 5xx response.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient marks err as retryable for [Retry]. A nil err stays nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err was marked with [Transient].
func IsTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// retryAttempts bounds how often [Retry] runs fn.
const retryAttempts = 3

// retryPause is the initial pause between attempts. Tests shorten it.
var retryPause = time.Second

// Retry runs fn up to three times, doubling the pause between attempts from
// an initial second. Only failures marked [Transient] are retried; anything
// else aborts immediately. The pauses watch ctx, fn itself does not.
func Retry(ctx context.Context, fn func() error) error {
	pause := retryPause
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsTransient(err) || attempt == retryAttempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pause):
			pause *= 2
		}
	}
}
