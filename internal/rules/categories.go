package rules

import (
	"context"
	"strings"

	"github.com/ptlint/ptlint/internal/ports"
	"github.com/sirupsen/logrus"
)

// checkCategories flags categories absent from the official list, in the
// index and in the Makefile, and compares the two category sets. The
// comparison is unordered: the first category decides the port's physical
// location, but divergence here means a different membership, not a
// different order.
func checkCategories(_ context.Context, _ *Context, rec *ports.Record) []ports.Notification {
	var out []ports.Notification

	for _, category := range rec.Categories {
		if !officialCategories[category] {
			logrus.Warningf("Unofficial category '%s' in index for port %s", category, rec.Name)
			out = append(out, notify(rec, ports.SeverityWarning, "Unofficial category",
				"unofficial category '%s' in index", category))
		}
	}

	if !rec.Recipe.Categories.Set || strings.Contains(rec.Recipe.Categories.Value, "$") {
		return out
	}

	recipeCategories := rec.Recipe.Categories.Words()
	for _, category := range recipeCategories {
		if !officialCategories[category] {
			logrus.Warningf("Unofficial category '%s' in Makefile for port %s", category, rec.Name)
			out = append(out, notify(rec, ports.SeverityWarning, "Unofficial category",
				"unofficial category '%s' in Makefile", category))
		}
	}

	if !sameSet(rec.Categories, recipeCategories) {
		logrus.Errorf("Diverging categories between index and Makefile for port %s", rec.Name)
		out = append(out, notify(rec, ports.SeverityError, "Diverging categories",
			"index categories '%s' differ from Makefile CATEGORIES '%s'",
			strings.Join(rec.Categories, " "), rec.Recipe.Categories.Value))
	}

	return out
}

func sameSet(a, b []string) bool {
	seen := make(map[string]bool, len(a))
	for _, item := range a {
		seen[item] = true
	}
	matched := make(map[string]bool, len(b))
	for _, item := range b {
		if !seen[item] {
			return false
		}
		matched[item] = true
	}
	return len(matched) == len(seen)
}
