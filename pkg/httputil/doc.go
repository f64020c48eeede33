// Package httputil provides the retry helper used around launch API calls.
//
// # Retry
//
// [Retry] runs an operation up to maxAttempts times. After the n-th failed
// attempt it waits baseDelay*n before trying again, so the default policy
// (3 attempts, 1s) waits 1s and then 2s. The error of the final attempt is
// returned unchanged, which lets callers inspect status codes and error
// classes with errors.As.
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return client.Get(ctx, "/statistics", nil, &stats)
//	})
//
// [Do] is the value-returning form:
//
//	stats, err := httputil.Do(ctx, 3, time.Second, func() (launch.Stats, error) {
//	    var s launch.Stats
//	    return s, client.Get(ctx, "/statistics", nil, &s)
//	})
//
// Every error is retried; the helper has no notion of transient versus
// permanent failures. Waits are cut short when ctx is cancelled, in which
// case ctx.Err() is returned.
package httputil
