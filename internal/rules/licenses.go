package rules

import (
	"context"
	"strings"

	"github.com/ptlint/ptlint/internal/ports"
	"github.com/sirupsen/logrus"
)

// checkVersions flags recipes declaring both version variables. Only one of
// PORTVERSION and DISTVERSION may be set.
func checkVersions(_ context.Context, _ *Context, rec *ports.Record) []ports.Notification {
	if !rec.Recipe.PortVersion.Set || !rec.Recipe.DistVersion.Set {
		return nil
	}
	logrus.Warningf("Both PORTVERSION and DISTVERSION for port %s", rec.Name)
	return []ports.Notification{
		notify(rec, ports.SeverityWarning, "Both PORTVERSION and DISTVERSION",
			"PORTVERSION '%s' and DISTVERSION '%s' are both set",
			rec.Recipe.PortVersion.Value, rec.Recipe.DistVersion.Value),
	}
}

// checkLicenses verifies the license declaration: presence, membership in
// the official list, and a LICENSE_COMB consistent with the number of
// licenses. Ports on the exclusion list skip the whole family.
func checkLicenses(_ context.Context, c *Context, rec *ports.Record) []ports.Notification {
	if rec.Recipe.State != ports.RecipeLoaded {
		return nil
	}
	if rec.Recipe.PortName.Set && c.ExcludedLicensePorts[rec.Recipe.PortName.Value] {
		return nil
	}

	if !rec.Recipe.License.Set {
		logrus.Errorf("Missing LICENSE in Makefile for port %s", rec.Name)
		return []ports.Notification{
			notify(rec, ports.SeverityError, "Missing LICENSE", "no LICENSE declared in Makefile"),
		}
	}

	var out []ports.Notification
	licenses := rec.Recipe.License.Words()
	for _, license := range licenses {
		if !officialLicenses[license] && !strings.Contains(license, "$") {
			logrus.Warningf("Unofficial license '%s' in Makefile for port %s", license, rec.Name)
			out = append(out, notify(rec, ports.SeverityWarning, "Unofficial license",
				"unofficial license '%s'", license))
		}
	}

	if rec.Recipe.LicenseComb.Set {
		switch comb := rec.Recipe.LicenseComb.Value; comb {
		case "single":
			if len(licenses) == 1 {
				logrus.Warningf("Unnecessary LICENSE_COMB=single in Makefile for port %s", rec.Name)
				out = append(out, notify(rec, ports.SeverityWarning, "Unnecessary LICENSE_COMB=single",
					"LICENSE_COMB=single is the default"))
			}
		case "multi", "dual":
			if len(licenses) == 1 {
				logrus.Warningf("Unnecessary LICENSE_COMB=%s in Makefile for port %s", comb, rec.Name)
				out = append(out, notify(rec, ports.SeverityWarning, "Unnecessary LICENSE_COMB=multi",
					"LICENSE_COMB=%s with a single license", comb))
			}
		default:
			logrus.Errorf("Unknown LICENSE_COMB value '%s' in Makefile for port %s", comb, rec.Name)
		}
	}

	return out
}
