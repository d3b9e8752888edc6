// Package resilience holds the fault tolerance helpers for calls that leave the process.
//
//   - circuitbreaker: sony/gobreaker presets for the identity provider and the database
//   - retry: jittered exponential backoff for transient failures
//
// The identity client nests them, retry outside and breaker inside, so a call
// refused by an open breaker is not retried:
//
//	err := retry.WithBackoff(ctx, retry.IdentityAPIConfig(), func() error {
//	    return breaker.Do(func() error { return send(ctx) })
//	})
package resilience
