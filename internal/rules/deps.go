package rules

import (
	"context"

	"github.com/ptlint/ptlint/internal/ports"
	"github.com/sirupsen/logrus"
)

// checkDependencies verifies every declared dependency name resolves to a
// record in the full index, selection notwithstanding.
func checkDependencies(_ context.Context, c *Context, rec *ports.Record) []ports.Notification {
	var out []ports.Notification
	for _, dep := range rec.Depends.All() {
		if _, ok := c.Store.Get(dep); ok {
			continue
		}
		logrus.Warningf("Unknown dependency '%s' for port %s", dep, rec.Name)
		out = append(out, notify(rec, ports.SeverityWarning, "Unknown dependency",
			"dependency '%s' is not in the index", dep))
	}
	return out
}
