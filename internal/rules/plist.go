package rules

import (
	"context"
	"path/filepath"

	"github.com/ptlint/ptlint/internal/ports"
	"github.com/sirupsen/logrus"
)

// checkPlist verifies a packing list source exists: a pkg-plist file, or one
// of the PLIST_FILES/PLIST/PLIST_SUB variables. Neither is only a debug
// finding since auto-generated lists are a known exception. A PLIST_FILES
// list past the abuse limit belongs in a pkg-plist file instead.
func checkPlist(_ context.Context, c *Context, rec *ports.Record) []ports.Notification {
	if !isDir(rec.Origin) {
		return nil
	}

	if isFile(filepath.Join(rec.Origin, "pkg-plist")) {
		return nil
	}

	if !rec.Recipe.PlistFiles.Set {
		if rec.Recipe.Plist.Set || rec.Recipe.PlistSub.Set {
			return nil
		}
		logrus.Debugf("Nonexistent pkg-plist/PLIST_FILES/PLIST/PLIST_SUB for port %s", rec.Name)
		return []ports.Notification{
			notify(rec, ports.SeverityDebug, "Nonexistent pkg-plist",
				"no pkg-plist file and no PLIST_FILES/PLIST/PLIST_SUB variable"),
		}
	}

	entries := len(rec.Recipe.PlistFiles.Words())
	if entries >= c.Limits.PlistAbuse {
		logrus.Warningf("PLIST_FILES abuse at %d entries for port %s", entries, rec.Name)
		return []ports.Notification{
			notify(rec, ports.SeverityWarning, "PLIST_FILES abuse",
				"PLIST_FILES carries %d entries, limit is %d", entries, c.Limits.PlistAbuse),
		}
	}
	return nil
}
