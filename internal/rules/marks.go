package rules

import (
	"context"
	"time"

	"github.com/ptlint/ptlint/internal/ports"
	"github.com/sirupsen/logrus"
)

// checkMarks reports lifecycle marks. A BROKEN, DEPRECATED or FORBIDDEN
// mark on a recipe untouched past the per-mark threshold escalates from
// info to a staleness warning.
func checkMarks(_ context.Context, c *Context, rec *ports.Record) []ports.Notification {
	if rec.Recipe.State != ports.RecipeLoaded {
		return nil
	}

	var out []ports.Notification
	aged := func(days int) bool {
		return rec.Recipe.Mtime.Before(c.Now.Add(-time.Duration(days) * 24 * time.Hour))
	}

	staleness := map[ports.Mark]int{
		ports.MarkBroken:     c.Limits.BrokenDays,
		ports.MarkDeprecated: c.Limits.DeprecatedDays,
		ports.MarkForbidden:  c.Limits.ForbiddenDays,
	}

	for _, mark := range ports.AllMarks {
		reason, ok := rec.HasMark(mark)
		if !ok {
			continue
		}
		if days, stale := staleness[mark]; stale && aged(days) {
			logrus.Warningf("%s mark '%s' for port %s", mark, reason, rec.Name)
			out = append(out, notify(rec, ports.SeverityWarning,
				"Marked as "+string(mark)+" for too long",
				"%s mark older than %d days: '%s'", mark, days, reason))
			continue
		}
		issue := "Marked as " + string(mark)
		if mark == ports.MarkIgnore {
			issue = "Containing an IGNORE mark"
		}
		logrus.Infof("%s mark '%s' for port %s", mark, reason, rec.Name)
		out = append(out, notify(rec, ports.SeverityInfo, issue, "%s mark: '%s'", mark, reason))
	}

	if rec.Recipe.Expiration.Set {
		logrus.Warningf("EXPIRATION_DATE mark '%s' for port %s", rec.Recipe.Expiration.Value, rec.Name)
		out = append(out, notify(rec, ports.SeverityWarning, "Marked with EXPIRATION_DATE",
			"EXPIRATION_DATE set to '%s'", rec.Recipe.Expiration.Value))
	}

	return out
}

// checkUnchanged reports recipes that predate the unchanged threshold.
func checkUnchanged(_ context.Context, c *Context, rec *ports.Record) []ports.Notification {
	if rec.Recipe.State != ports.RecipeLoaded {
		return nil
	}
	cutoff := c.Now.Add(-time.Duration(c.Limits.UnchangedDays) * 24 * time.Hour)
	if !rec.Recipe.Mtime.Before(cutoff) {
		return nil
	}
	logrus.Infof("No modification since more than %d days for port %s", c.Limits.UnchangedDays, rec.Name)
	return []ports.Notification{
		notify(rec, ports.SeverityInfo, "Unchanged for a long time",
			"recipe unmodified for more than %d days", c.Limits.UnchangedDays),
	}
}
