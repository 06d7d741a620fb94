/*
Package resilience provides a circuit breaker for calls to remote
dependencies, such as fetching catalogs over HTTP.

# States

	Closed --[ReadyToTrip]-> Open --[Timeout]-> Half-Open --[MaxRequests successes]-> Closed
	                                               |
	                                           [failure]
	                                               v
	                                             Open

# Usage

	breaker := resilience.New("catalog", resilience.Settings{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	err := breaker.Do(ctx, func(ctx context.Context) error {
		return fetch(ctx)
	})

A call that fails only because its context was cancelled does not count
against the dependency.
*/
package resilience
