package rules

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/ptlint/ptlint/internal/advisory"
	"github.com/ptlint/ptlint/internal/ports"
	"github.com/sirupsen/logrus"
)

var (
	revisionRe    = regexp.MustCompile(`_[0-9]+$`)
	epochRe       = regexp.MustCompile(`,[0-9]+$`)
	nameVersionRe = regexp.MustCompile(`^(.*)-([^-]+)$`)
)

// effectiveVersion resolves the (name, version) pair used for the advisory
// lookup: PORTNAME/PORTVERSION when usable, otherwise a best-effort parse
// of the package name with epoch and revision suffixes stripped.
func effectiveVersion(rec *ports.Record) (name, version string, ok bool) {
	if rec.Recipe.PortName.Set {
		name = rec.Recipe.PortName.Value
	}
	if rec.Recipe.PortVersion.Set && !strings.Contains(rec.Recipe.PortVersion.Value, "$") {
		version = rec.Recipe.PortVersion.Value
	}
	if name != "" && version != "" {
		return name, version, true
	}

	candidate := rec.Name
	if rec.Recipe.PortEpoch.Set {
		candidate = strings.TrimSuffix(candidate, ","+rec.Recipe.PortEpoch.Value)
	} else {
		candidate = epochRe.ReplaceAllString(candidate, "")
	}
	if rec.Recipe.PortRevision.Set {
		candidate = strings.TrimSuffix(candidate, "_"+rec.Recipe.PortRevision.Value)
	} else {
		candidate = revisionRe.ReplaceAllString(candidate, "")
	}

	m := nameVersionRe.FindStringSubmatch(candidate)
	if m == nil {
		return "", "", false
	}
	if name == "" {
		name = m[1]
	}
	if version == "" {
		version = m[2]
	}
	return name, version, true
}

// checkVulnerabilities queries the advisory service for the record's
// effective version, reporting one warning per advisory ID. Versions the
// service cannot compare are skipped silently; the skip stays observable
// through its debug notification and the matching counter.
func checkVulnerabilities(ctx context.Context, c *Context, rec *ports.Record) []ports.Notification {
	if c.Advisories == nil {
		return nil
	}

	name, version, ok := effectiveVersion(rec)
	if !ok {
		logrus.Warningf("Unable to get version for port %s, skipping vulnerability check", rec.Name)
		return []ports.Notification{
			notify(rec, ports.SeverityDebug, "Skipped vulnerability check",
				"unable to determine a package version"),
		}
	}

	vids, err := c.Advisories.Lookup(ctx, name, version)
	if err != nil {
		if errors.Is(err, advisory.ErrUnsupportedVersion) {
			logrus.Debugf("Unsupported version scheme '%s' for port %s, skipping vulnerability check", version, rec.Name)
			return []ports.Notification{
				notify(rec, ports.SeverityDebug, "Skipped vulnerability check",
					"version scheme of '%s' is unsupported", version),
			}
		}
		logrus.Warningf("Vulnerability lookup failed for port %s: %v", rec.Name, err)
		return []ports.Notification{
			notify(rec, ports.SeverityWarning, "Vulnerability lookup failure",
				"advisory lookup failed: %v", err),
		}
	}

	var out []ports.Notification
	for _, vid := range vids {
		if c.ExcludedVulns[vid] {
			continue
		}
		logrus.Warningf("Found vulnerability '%s' for port %s", vid, rec.Name)
		out = append(out, notify(rec, ports.SeverityWarning, "Vulnerable port",
			"advisory '%s' matches version %s", vid, version))
	}
	return out
}
