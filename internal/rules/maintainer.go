package rules

import (
	"context"
	"strings"

	"github.com/ptlint/ptlint/internal/ports"
	"github.com/sirupsen/logrus"
)

// checkMaintainer cross-checks the index maintainer against the Makefile
// MAINTAINER. Both addresses go through the same normalization. On a
// divergence both parties get notified.
func checkMaintainer(_ context.Context, _ *Context, rec *ports.Record) []ports.Notification {
	if !rec.Recipe.Maintainer.Set || strings.Contains(rec.Recipe.Maintainer.Value, "$") {
		return nil
	}

	recipeMaintainer := ports.NormalizeMaintainer(rec.Recipe.Maintainer.Value)
	if rec.Maintainer == recipeMaintainer {
		return nil
	}

	logrus.Errorf("Diverging maintainers between index and Makefile for port %s", rec.Name)
	n := notify(rec, ports.SeverityError, "Diverging maintainers",
		"index maintainer '%s' differs from Makefile MAINTAINER '%s'", rec.Maintainer, recipeMaintainer)
	other := n
	other.Maintainer = recipeMaintainer
	return []ports.Notification{n, other}
}
