package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/cenk/backoff"
	lru "github.com/hashicorp/golang-lru/v2"
	circuit "github.com/rubyist/circuitbreaker"
	"github.com/sirupsen/logrus"
)

// breakerThreshold trips a host's circuit after this many consecutive
// network failures, so a dead host stops consuming probe budget.
const breakerThreshold = 5

type outcome struct {
	ok         bool
	definitive bool
	reason     string
}

// URL checks URLs for reachability with a bounded retry, per-host circuit
// breaking, and a per-URL outcome cache.
type URL struct {
	client  *http.Client
	timeout time.Duration
	retries uint64

	mu       sync.Mutex
	breakers map[string]*circuit.Breaker
	cache    *lru.Cache[string, outcome]
}

// NewURL creates a URL prober. timeout bounds each attempt; retries is the
// number of additional attempts after a network failure (at most one per
// the recovery policy, but configurable down to zero).
func NewURL(timeout time.Duration, retries uint64) *URL {
	cache, _ := lru.New[string, outcome](defaultCacheSize)
	return &URL{
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		timeout:  timeout,
		retries:  retries,
		breakers: make(map[string]*circuit.Breaker),
		cache:    cache,
	}
}

// Check probes one URL. definitive reports whether a failure is a reliable
// sign of a dead site; ambiguous failures (redirects, server errors,
// timeouts) are tentative.
func (u *URL) Check(ctx context.Context, rawurl string) (ok, definitive bool, reason string) {
	if o, hit := u.cache.Get(rawurl); hit {
		return o.ok, o.definitive, o.reason
	}

	o := u.probe(ctx, rawurl)
	u.cache.Add(rawurl, o)
	return o.ok, o.definitive, o.reason
}

func (u *URL) probe(ctx context.Context, rawurl string) outcome {
	parsed, err := url.Parse(rawurl)
	if err != nil || parsed.Host == "" {
		return outcome{reason: fmt.Sprintf("Unparsable URL (%v) on www-site", err)}
	}

	breaker := u.breaker(parsed.Host)
	if !breaker.Ready() {
		return outcome{reason: fmt.Sprintf("Unprobed www-site (circuit open for host %s)", parsed.Host)}
	}

	var status int
	fetch := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, u.timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, rawurl, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", "ptlint/1.0")
		resp, err := u.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 16*1024))
		status = resp.StatusCode
		return nil
	}

	err = breaker.Call(func() error {
		return backoff.Retry(fetch, backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Second), u.retries), ctx))
	}, 0)
	if err != nil {
		logrus.Debugf("Probe of %s failed: %v", rawurl, err)
		return outcome{reason: fmt.Sprintf("Unaccessible www-site (%v)", err)}
	}

	return classify(status)
}

// classify follows the HTTP status taxonomy: a handful of 4xx codes are a
// definitive sign of a dead site, everything else outside 2xx is tentative.
func classify(status int) outcome {
	if status >= 200 && status <= 299 {
		return outcome{ok: true}
	}
	definitive := map[int]string{
		404: "Not found",
		410: "Gone",
		401: "Unauthorized",
		403: "Forbidden",
		451: "Unavailable for legal reasons",
	}
	if text, hard := definitive[status]; hard {
		return outcome{
			definitive: true,
			reason:     fmt.Sprintf("HTTP Error %d (%s) on www-site", status, text),
		}
	}
	return outcome{
		reason: fmt.Sprintf("HTTP Error %d (%s) on www-site", status, http.StatusText(status)),
	}
}

func (u *URL) breaker(host string) *circuit.Breaker {
	u.mu.Lock()
	defer u.mu.Unlock()
	if b, ok := u.breakers[host]; ok {
		return b
	}
	b := circuit.NewBreakerWithOptions(&circuit.Options{
		ShouldTrip: circuit.ThresholdTripFunc(breakerThreshold),
	})
	u.breakers[host] = b
	return b
}
