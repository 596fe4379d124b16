package rules

import (
	"context"
	"os"
	"strings"

	"github.com/ptlint/ptlint/internal/ports"
	"github.com/sirupsen/logrus"
)

// checkDescriptionFile verifies the long-description file exists and that
// its content does meaningful work beyond the one-line comment.
func checkDescriptionFile(_ context.Context, _ *Context, rec *ports.Record) []ports.Notification {
	if !strings.HasPrefix(rec.DescrFile, rec.Origin) {
		// Shared description outside the port directory
		if !isFile(rec.DescrFile) {
			return descrMissing(rec)
		}
	} else if !isDir(rec.Origin) {
		return nil // already reported
	} else if !isFile(rec.DescrFile) {
		return descrMissing(rec)
	}

	data, err := os.ReadFile(rec.DescrFile)
	if err != nil {
		return nil
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 0 || (len(lines) == 1 && lines[0] == "") {
		return nil
	}

	var out []ports.Notification
	last := strings.TrimSpace(lines[len(lines)-1])
	if strings.HasPrefix(last, "https://") || strings.HasPrefix(last, "http://") {
		logrus.Errorf("URL '%s' ending description-file for port %s", last, rec.Name)
		out = append(out, notify(rec, ports.SeverityError, "URL ending description-file",
			"description-file ends with URL '%s'", last))
		lines = lines[:len(lines)-1]
	}

	text := strings.TrimSpace(strings.Join(lines, " "))
	if text == rec.Comment {
		logrus.Errorf("description-file content is identical to comment for port %s", rec.Name)
		out = append(out, notify(rec, ports.SeverityError, "description-file same as comment",
			"description-file content is identical to the comment"))
	} else if len(text) <= len(rec.Comment) {
		logrus.Errorf("description-file content is no longer than comment for port %s", rec.Name)
		out = append(out, notify(rec, ports.SeverityError, "Too short description-file",
			"description-file content is no longer than the comment"))
	}

	return out
}

func descrMissing(rec *ports.Record) []ports.Notification {
	logrus.Errorf("Nonexistent description-file '%s' for port %s", rec.DescrFile, rec.Name)
	return []ports.Notification{
		notify(rec, ports.SeverityError, "Nonexistent description-file",
			"description-file '%s' does not exist", rec.DescrFile),
	}
}
