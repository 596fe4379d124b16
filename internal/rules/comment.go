package rules

import (
	"context"
	"strings"

	"github.com/ptlint/ptlint/internal/ports"
	"github.com/sirupsen/logrus"
)

// checkComment enforces the one-line comment rules and cross-checks the
// index comment against the Makefile COMMENT.
func checkComment(_ context.Context, c *Context, rec *ports.Record) []ports.Notification {
	var out []ports.Notification

	if len(rec.Comment) > c.Limits.CommentLength {
		logrus.Warningf("Over %d characters comment for port %s", c.Limits.CommentLength, rec.Name)
		out = append(out, notify(rec, ports.SeverityWarning, "Too long comments",
			"comment is %d characters, limit is %d", len(rec.Comment), c.Limits.CommentLength))
	}

	if rec.Comment != "" && rec.Comment[0] >= 'a' && rec.Comment[0] <= 'z' {
		logrus.Errorf("Uncapitalized comment for port %s", rec.Name)
		out = append(out, notify(rec, ports.SeverityError, "Uncapitalized comments",
			"comment starts with a lowercase letter"))
	}

	if strings.HasSuffix(rec.Comment, ".") {
		logrus.Errorf("Dot-ended comment for port %s", rec.Name)
		out = append(out, notify(rec, ports.SeverityError, "Dot-ended comments",
			"comment ends with a dot"))
	}

	if rec.Recipe.Comment.Set && !strings.Contains(rec.Recipe.Comment.Value, "$") {
		// Backslash escaping is used inconsistently in both fields,
		// drop it before comparing
		indexComment := strings.ReplaceAll(rec.Comment, `\`, "")
		recipeComment := strings.ReplaceAll(rec.Recipe.Comment.Value, `\`, "")
		if indexComment != recipeComment {
			logrus.Errorf("Diverging comments between index and Makefile for port %s", rec.Name)
			out = append(out, notify(rec, ports.SeverityError, "Diverging comments",
				"index comment '%s' differs from Makefile COMMENT '%s'", rec.Comment, rec.Recipe.Comment.Value))
		}
	}

	return out
}
