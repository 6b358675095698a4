package update

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

var (
	defaultRetryDelay = 500 * time.Millisecond
	requestTimeout    = 30 * time.Second
)

func defaultRetryOpts(ctx context.Context) []retry.Option {
	return []retry.Option{
		retry.Context(ctx),
		retry.Delay(defaultRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.Attempts(3),
		retry.LastErrorOnly(true),
	}
}

type retryCallback[T any] func(ctx context.Context) (T, error)

// doWithRetry runs callback with a per-attempt timeout, retrying transient
// failures with backoff. Errors wrapped with retry.Unrecoverable stop the
// retry loop immediately.
func doWithRetry[T any](ctx context.Context, callback retryCallback[T], opts ...retry.Option) (T, error) {
	var returnValue T
	var err error

	err = retry.Do(func() error {
		rctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		returnValue, err = callback(rctx)

		return err
	}, append(defaultRetryOpts(ctx), opts...)...)

	return returnValue, err
}
