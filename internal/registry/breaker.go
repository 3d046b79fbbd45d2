package registry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"
)

// BreakerClient wraps a JSONGetter with per-host circuit breakers so a
// dead index makes the rest of a batch run fail fast instead of burning
// a full timeout on every remaining package.
type BreakerClient struct {
	inner    JSONGetter
	breakers map[string]*circuit.Breaker
	mu       sync.RWMutex
}

// NewBreakerClient wraps client with circuit breaking.
func NewBreakerClient(client JSONGetter) *BreakerClient {
	return &BreakerClient{
		inner:    client,
		breakers: make(map[string]*circuit.Breaker),
	}
}

// getBreaker returns or creates the circuit breaker for a host.
func (b *BreakerClient) getBreaker(host string) *circuit.Breaker {
	b.mu.RLock()
	breaker, ok := b.breakers[host]
	b.mu.RUnlock()
	if ok {
		return breaker
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if breaker, ok := b.breakers[host]; ok {
		return breaker
	}

	// Trips after 5 consecutive failures, probes again with
	// exponentially growing intervals.
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 30 * time.Second
	policy.MaxInterval = 5 * time.Minute
	policy.Reset()

	breaker = circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    policy,
		ShouldTrip: circuit.ThresholdTripFunc(5),
	})
	b.breakers[host] = breaker
	return breaker
}

// GetJSON fetches through the underlying client unless the host's
// circuit is open. Responses the index produced itself (404 and other
// client errors) count as successes for the breaker; only transport
// failures and server errors trip it.
func (b *BreakerClient) GetJSON(ctx context.Context, rawURL string, v any) error {
	breaker := b.getBreaker(hostOf(rawURL))
	if !breaker.Ready() {
		return fmt.Errorf("circuit open for %s: %w", hostOf(rawURL), ErrUnavailable)
	}

	var reqErr error
	err := breaker.Call(func() error {
		reqErr = b.inner.GetJSON(ctx, rawURL, v)
		var httpErr *HTTPError
		if errors.As(reqErr, &httpErr) && httpErr.StatusCode < 500 && httpErr.StatusCode != 429 {
			return nil
		}
		return reqErr
	}, 0)

	if err != nil {
		return err
	}
	return reqErr
}

// BreakerStates reports each known host's circuit state.
func (b *BreakerClient) BreakerStates() map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	states := make(map[string]string, len(b.breakers))
	for host, breaker := range b.breakers {
		if breaker.Tripped() {
			states[host] = "open"
		} else {
			states[host] = "closed"
		}
	}
	return states
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}
	return parsed.Host
}
