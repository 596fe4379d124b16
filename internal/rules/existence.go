package rules

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ptlint/ptlint/internal/ports"
	"github.com/sirupsen/logrus"
)

func notify(rec *ports.Record, sev ports.Severity, issue, format string, args ...interface{}) ports.Notification {
	return ports.Notification{
		Severity:   sev,
		Port:       rec.Name,
		Maintainer: rec.Maintainer,
		Issue:      issue,
		Message:    fmt.Sprintf(format, args...),
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// checkOriginExists verifies the port-path field points at an existing
// directory.
func checkOriginExists(_ context.Context, _ *Context, rec *ports.Record) []ports.Notification {
	if isDir(rec.Origin) {
		return nil
	}
	logrus.Errorf("Nonexistent port-path '%s' for port %s", rec.Origin, rec.Name)
	return []ports.Notification{
		notify(rec, ports.SeverityError, "Nonexistent port-path", "port-path '%s' does not exist", rec.Origin),
	}
}

// checkRecipeExists reports a missing Makefile. The RecipeMissing state also
// suppresses every recipe-comparison check for the record.
func checkRecipeExists(_ context.Context, _ *Context, rec *ports.Record) []ports.Notification {
	if rec.Recipe.State != ports.RecipeMissing {
		return nil
	}
	if !isDir(rec.Origin) {
		return nil // already reported
	}
	logrus.Errorf("Nonexistent Makefile for port %s", rec.Name)
	return []ports.Notification{
		notify(rec, ports.SeverityError, "Nonexistent Makefile", "no Makefile under %s", rec.Origin),
	}
}

// checkInstallationPrefix flags installation prefixes outside the
// conventional forms. A handful of port families legitimately install
// elsewhere and are special-cased.
func checkInstallationPrefix(_ context.Context, _ *Context, rec *ports.Record) []ports.Notification {
	name, prefix := rec.Name, rec.Prefix
	switch {
	case prefix == "/usr/local":
		return nil
	case prefix == "/compat/linux" && strings.HasPrefix(name, "linux"):
		return nil
	case prefix == "/usr/local/FreeBSD_ARM64" && strings.Contains(name, "-aarch64-"):
		return nil
	case strings.HasPrefix(prefix, "/usr/local/android") && strings.Contains(name, "droid"):
		return nil
	case prefix == "/var/qmail" && (strings.Contains(name, "qmail") || strings.HasPrefix(name, "queue-fix")):
		return nil
	case prefix == "/usr" && (strings.HasPrefix(name, "global-tz-") || strings.HasPrefix(name, "zoneinfo-")):
		return nil
	}
	logrus.Warningf("Unusual installation-prefix '%s' for port %s", prefix, name)
	return []ports.Notification{
		notify(rec, ports.SeverityWarning, "Unusual installation-prefix", "installation-prefix '%s'", prefix),
	}
}
