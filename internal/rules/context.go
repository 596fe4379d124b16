package rules

import (
	"context"
	"time"

	"github.com/ptlint/ptlint/internal/advisory"
	"github.com/ptlint/ptlint/internal/ports"
)

// Limits holds the configurable thresholds of the check battery.
type Limits struct {
	CommentLength  int
	PlistAbuse     int
	BrokenDays     int
	DeprecatedDays int
	ForbiddenDays  int
	UnchangedDays  int
}

// DefaultLimits returns the stock thresholds.
func DefaultLimits() Limits {
	return Limits{
		CommentLength:  70,
		PlistAbuse:     7,
		BrokenDays:     365,
		DeprecatedDays: 180,
		ForbiddenDays:  90,
		UnchangedDays:  3 * 365,
	}
}

// HostProber resolves a hostname, returning an error when it does not
// resolve. Implementations are expected to cache outcomes per run.
type HostProber interface {
	Resolve(ctx context.Context, hostname string) error
}

// URLProber checks a URL for reachability. definitive reports whether a
// failure is a reliable sign of a dead site rather than a transient or
// ambiguous condition.
type URLProber interface {
	Check(ctx context.Context, url string) (ok bool, definitive bool, reason string)
}

// Context carries everything a check may consult: the full store for
// cross-record lookups, the limits, and the optional external capabilities.
// Probers and the advisory service are absent by default; checks needing
// them are skipped when they are nil.
type Context struct {
	Store  *ports.Store
	Limits Limits
	Now    time.Time

	CheckHost bool
	CheckURL  bool
	Hosts     HostProber
	URLs      URLProber

	Advisories advisory.Service

	// ProbeSeverity is the severity of definitive probe failures.
	ProbeSeverity ports.Severity

	// ExcludedVulns skips individual advisory IDs; ExcludedLicensePorts
	// skips the license family for the named PORTNAMEs.
	ExcludedVulns        map[string]bool
	ExcludedLicensePorts map[string]bool

	// Enabled restricts the battery to the named checks; nil runs all.
	Enabled map[string]bool
}

// NewContext returns a Context with defaults over the given store.
func NewContext(store *ports.Store) *Context {
	return &Context{
		Store:         store,
		Limits:        DefaultLimits(),
		Now:           time.Now().UTC(),
		ProbeSeverity: ports.SeverityError,
	}
}

func (c *Context) enabled(name string) bool {
	if c.Enabled == nil {
		return true
	}
	return c.Enabled[name]
}
