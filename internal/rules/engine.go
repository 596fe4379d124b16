package rules

import (
	"context"
	"fmt"
	"sync"

	"github.com/ptlint/ptlint/internal/ports"
	"github.com/sirupsen/logrus"
)

// Check is one battery entry: a pure function over a completed record,
// yielding zero or more notifications. Checks never mutate the record and
// never depend on one another.
type Check struct {
	Name string
	Run  func(ctx context.Context, c *Context, rec *ports.Record) []ports.Notification
}

// Battery returns the ordered check battery. Comparison checks sit after
// the existence checks so the recipe-loaded/missing state is always decided
// before any field comparison runs.
func Battery() []Check {
	return []Check{
		{Name: "port-path", Run: checkOriginExists},
		{Name: "makefile", Run: checkRecipeExists},
		{Name: "installation-prefix", Run: checkInstallationPrefix},
		{Name: "comment", Run: checkComment},
		{Name: "description-file", Run: checkDescriptionFile},
		{Name: "plist", Run: checkPlist},
		{Name: "maintainer", Run: checkMaintainer},
		{Name: "categories", Run: checkCategories},
		{Name: "www-site", Run: checkWWWSite},
		{Name: "marks", Run: checkMarks},
		{Name: "unchanging-ports", Run: checkUnchanged},
		{Name: "versions", Run: checkVersions},
		{Name: "licenses", Run: checkLicenses},
		{Name: "dependencies", Run: checkDependencies},
		{Name: "vulnerabilities", Run: checkVulnerabilities},
	}
}

// Sink receives notifications as the engine produces them.
type Sink interface {
	Add(n ports.Notification)
}

// Engine runs the battery against every selected record.
type Engine struct {
	checks  []Check
	workers int
}

// NewEngine creates an engine over the default battery. workers bounds
// record-level parallelism; values below 1 run sequentially.
func NewEngine(workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{checks: Battery(), workers: workers}
}

// Run evaluates every selected record and feeds the sink in sorted record
// order regardless of worker completion order, so the emitted sequence is
// deterministic and a second run over an unchanged store reproduces it.
func (e *Engine) Run(ctx context.Context, c *Context, sink Sink) {
	names := c.Store.Selected()
	results := make([][]ports.Notification, len(names))

	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup
	for i, name := range names {
		rec, ok := c.Store.Get(name)
		if !ok {
			continue
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(i int, rec *ports.Record) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = e.evaluate(ctx, c, rec)
		}(i, rec)
	}
	wg.Wait()

	for _, notifications := range results {
		for _, n := range notifications {
			sink.Add(n)
		}
	}
}

// evaluate runs the battery for one record. A panicking check degrades to a
// single notification and never aborts the other checks.
func (e *Engine) evaluate(ctx context.Context, c *Context, rec *ports.Record) []ports.Notification {
	var out []ports.Notification
	for _, check := range e.checks {
		if !c.enabled(check.Name) {
			continue
		}
		out = append(out, e.runCheck(ctx, c, check, rec)...)
	}
	return out
}

func (e *Engine) runCheck(ctx context.Context, c *Context, check Check, rec *ports.Record) (out []ports.Notification) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Check %s failed for port %s: %v", check.Name, rec.Name, r)
			out = []ports.Notification{{
				Severity:   ports.SeverityError,
				Port:       rec.Name,
				Maintainer: rec.Maintainer,
				Issue:      "Check failure",
				Message:    fmt.Sprintf("check %s failed: %v", check.Name, r),
			}}
		}
	}()
	return check.Run(ctx, c, rec)
}
