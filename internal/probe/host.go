// Package probe implements the opt-in network capabilities of the check
// battery: hostname resolution and URL reachability. Both are bounded by a
// per-probe timeout and cache their outcomes for the duration of a run.
package probe

import (
	"context"
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/dnscache"
	"github.com/sirupsen/logrus"
)

const defaultCacheSize = 4096

// Host resolves hostnames through a caching DNS resolver. A hostname is
// probed at most once per run; repeated lookups hit the outcome cache.
type Host struct {
	resolver *dnscache.Resolver
	cache    *lru.Cache[string, string]
	timeout  time.Duration
}

// NewHost creates a hostname prober with the given per-probe timeout.
func NewHost(timeout time.Duration) *Host {
	cache, _ := lru.New[string, string](defaultCacheSize)
	return &Host{
		resolver: &dnscache.Resolver{},
		cache:    cache,
		timeout:  timeout,
	}
}

// Resolve returns nil when the hostname resolves to at least one address.
func (h *Host) Resolve(ctx context.Context, hostname string) error {
	if hostname == "" {
		return errors.New("empty hostname")
	}
	if msg, ok := h.cache.Get(hostname); ok {
		if msg == "" {
			return nil
		}
		return errors.New(msg)
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	addrs, err := h.resolver.LookupHost(ctx, hostname)
	if err == nil && len(addrs) == 0 {
		err = errors.New("no addresses")
	}
	if err != nil {
		logrus.Debugf("Hostname %s does not resolve: %v", hostname, err)
		h.cache.Add(hostname, err.Error())
		return err
	}
	h.cache.Add(hostname, "")
	return nil
}
