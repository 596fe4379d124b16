// Package report collects notifications into per-package and per-maintainer
// views and renders them for humans and for CSV consumers.
package report

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/ptlint/ptlint/internal/ports"
)

// Aggregator is the append-only notification sink of a run. It keeps the
// full ordered sequence plus per-port and per-maintainer groupings and
// severity/issue counters. Appends are mutex-guarded; reads are meant for
// after the engine finished.
type Aggregator struct {
	mu    sync.Mutex
	runID string

	all          []ports.Notification
	byPort       map[string][]ports.Notification
	byMaintainer map[string][]ports.Notification

	severities map[ports.Severity]int
	issues     map[string]int

	// grouped is the maintainer -> issue -> ports view used by the
	// renderers. A port appears once per (maintainer, issue) pair.
	grouped map[string]map[string][]string
}

// NewAggregator creates an empty aggregator stamped with a fresh run ID.
func NewAggregator() *Aggregator {
	return &Aggregator{
		runID:        uuid.New().String(),
		byPort:       make(map[string][]ports.Notification),
		byMaintainer: make(map[string][]ports.Notification),
		severities:   make(map[ports.Severity]int),
		issues:       make(map[string]int),
		grouped:      make(map[string]map[string][]string),
	}
}

// RunID returns the identifier stamped on this run's outputs.
func (a *Aggregator) RunID() string {
	return a.runID
}

// Add appends one notification.
func (a *Aggregator) Add(n ports.Notification) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.all = append(a.all, n)
	a.byPort[n.Port] = append(a.byPort[n.Port], n)
	a.byMaintainer[n.Maintainer] = append(a.byMaintainer[n.Maintainer], n)
	a.severities[n.Severity]++
	a.issues[n.Issue]++

	if n.Maintainer == "" {
		return
	}
	issues, ok := a.grouped[n.Maintainer]
	if !ok {
		issues = make(map[string][]string)
		a.grouped[n.Maintainer] = issues
	}
	for _, port := range issues[n.Issue] {
		if port == n.Port {
			return
		}
	}
	issues[n.Issue] = append(issues[n.Issue], n.Port)
}

// All returns the full notification sequence in insertion order.
func (a *Aggregator) All() []ports.Notification {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]ports.Notification(nil), a.all...)
}

// ForPort returns the notifications for one package in insertion order.
func (a *Aggregator) ForPort(name string) []ports.Notification {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]ports.Notification(nil), a.byPort[name]...)
}

// ForMaintainer returns the notifications for one maintainer address in
// insertion order. The address goes through the usual normalization.
func (a *Aggregator) ForMaintainer(addr string) []ports.Notification {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]ports.Notification(nil), a.byMaintainer[ports.NormalizeMaintainer(addr)]...)
}

// Maintainers returns the notified maintainer addresses in sorted order.
func (a *Aggregator) Maintainers() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.grouped))
	for addr := range a.grouped {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out
}

// Counter returns how many notifications carry the given issue key.
func (a *Aggregator) Counter(issue string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.issues[issue]
}

// SeverityCount returns how many notifications carry the given severity.
func (a *Aggregator) SeverityCount(s ports.Severity) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.severities[s]
}

// Total returns the number of collected notifications.
func (a *Aggregator) Total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.all)
}

// issuesFor returns one maintainer's issue -> ports map with sorted issue
// keys, for the renderers.
func (a *Aggregator) issuesFor(maintainer string) ([]string, map[string][]string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	issues := a.grouped[maintainer]
	keys := make([]string, 0, len(issues))
	for issue := range issues {
		keys = append(keys, issue)
	}
	sort.Strings(keys)
	return keys, issues
}
