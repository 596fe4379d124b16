package rules

import (
	"context"
	"regexp"
	"strings"

	"github.com/ptlint/ptlint/internal/ports"
	"github.com/sirupsen/logrus"
)

var (
	schemeRe = regexp.MustCompile(`^https?://`)
	portRe   = regexp.MustCompile(`:[0-9]+$`)
)

// hostnameOf extracts the bare hostname from a www-site URL.
func hostnameOf(url string) string {
	host := schemeRe.ReplaceAllString(url, "")
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	return portRe.ReplaceAllString(host, "")
}

// checkWWWSite verifies the www-site field: emptiness, opt-in hostname
// resolution and URL reachability, and membership in the Makefile WWW list.
// An empty field short-circuits the probes with its own notification.
func checkWWWSite(ctx context.Context, c *Context, rec *ports.Record) []ports.Notification {
	var out []ports.Notification

	if rec.WWW == "" {
		logrus.Errorf("Empty www-site for port %s", rec.Name)
		out = append(out, notify(rec, ports.SeverityError, "Empty www-site", "no www-site declared"))
	} else if c.CheckHost && c.Hosts != nil {
		hostname := hostnameOf(rec.WWW)
		if err := c.Hosts.Resolve(ctx, hostname); err != nil {
			logrus.Errorf("Unresolvable www-site '%s' for port %s", hostname, rec.Name)
			out = append(out, notify(rec, c.ProbeSeverity, "Unresolvable www-site",
				"hostname '%s' does not resolve: %v", hostname, err))
		} else if c.CheckURL && c.URLs != nil {
			out = append(out, probeURL(ctx, c, rec)...)
		}
	}

	if rec.WWW != "" && rec.Recipe.WWW.Set && !strings.Contains(rec.Recipe.WWW.Value, "$") {
		// WWW is a space-separated list, the index carries its first entry
		if !contains(rec.Recipe.WWW.Words(), rec.WWW) {
			logrus.Errorf("Diverging www-site between index and Makefile for port %s", rec.Name)
			out = append(out, notify(rec, ports.SeverityError, "Diverging www-site",
				"index www-site '%s' is not in Makefile WWW '%s'", rec.WWW, rec.Recipe.WWW.Value))
		}
	}

	return out
}

func probeURL(ctx context.Context, c *Context, rec *ports.Record) []ports.Notification {
	ok, definitive, reason := c.URLs.Check(ctx, rec.WWW)
	if ok {
		return nil
	}
	if definitive {
		logrus.Errorf("%s '%s' for port %s", reason, rec.WWW, rec.Name)
		return []ports.Notification{
			notify(rec, c.ProbeSeverity, "Unaccessible www-site", "%s '%s'", reason, rec.WWW),
		}
	}
	// 3xx, 5xx, timeouts and the remaining 4xx codes are not a reliable
	// sign of a dead site
	logrus.Debugf("%s '%s' for port %s", reason, rec.WWW, rec.Name)
	return []ports.Notification{
		notify(rec, ports.SeverityDebug, "Unaccessible www-site", "%s '%s'", reason, rec.WWW),
	}
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
