package recipe

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ptlint/ptlint/internal/ports"
	"github.com/sirupsen/logrus"
)

// maxIncludeDepth guards against include cycles.
const maxIncludeDepth = 8

var (
	assignRe  = regexp.MustCompile(`^([A-Z_]+)([+?]?=)[ \t]*(.*)$`)
	includeRe = regexp.MustCompile(`^\.include\s+"([^"]+)"`)
	commentRe = regexp.MustCompile(`[ \t]*#.*`)
)

// recognized is the fixed allow-list of Makefile variables the extractor
// records. Anything else is ignored.
var recognized = map[string]bool{
	"COMMENT":         true,
	"MAINTAINER":      true,
	"CATEGORIES":      true,
	"WWW":             true,
	"PORTNAME":        true,
	"PORTVERSION":     true,
	"DISTVERSION":     true,
	"PORTREVISION":    true,
	"PORTEPOCH":       true,
	"LICENSE":         true,
	"LICENSE_COMB":    true,
	"PLIST_FILES":     true,
	"PLIST":           true,
	"PLIST_SUB":       true,
	"BROKEN":          true,
	"DEPRECATED":      true,
	"FORBIDDEN":       true,
	"IGNORE":          true,
	"RESTRICTED":      true,
	"EXPIRATION_DATE": true,
}

// Extract scans the Makefile under a record's origin directory and fills in
// the recipe-derived fields. A missing Makefile puts the record in the
// terminal RecipeMissing state; recipe fields stay absent.
func Extract(rec *ports.Record) {
	makefile := filepath.Join(rec.Origin, "Makefile")
	info, err := os.Stat(makefile)
	if err != nil {
		rec.Recipe.State = ports.RecipeMissing
		return
	}

	vars := make(map[string]string)
	visited := make(map[string]bool)
	scanFile(makefile, 0, visited, vars)

	rec.Recipe.State = ports.RecipeLoaded
	rec.Recipe.Mtime = info.ModTime()
	rec.Recipe.Marks = make(map[ports.Mark]string)
	apply(vars, rec)
}

// scanFile folds one Makefile (and any textually included files) into the
// variable map. The first plain assignment of a variable wins; += appends
// with a single space.
func scanFile(path string, depth int, visited map[string]bool, vars map[string]string) {
	if depth > maxIncludeDepth || visited[path] {
		return
	}
	visited[path] = true

	f, err := os.Open(path)
	if err != nil {
		logrus.Debugf("Unreadable include file %s: %v", path, err)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	previous := ""
	for scanner.Scan() {
		line := stripComment(scanner.Text())
		line = previous + strings.TrimSpace(line)
		previous = ""

		if line == "" {
			continue
		}
		if strings.HasSuffix(line, "\\") {
			// Continued line, joined before matching
			previous = strings.TrimSuffix(line, "\\")
			continue
		}

		if m := includeRe.FindStringSubmatch(line); m != nil {
			included := m[1]
			if !filepath.IsAbs(included) {
				included = filepath.Join(filepath.Dir(path), included)
			}
			scanFile(included, depth+1, visited, vars)
			continue
		}

		m := assignRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key, op, value := m[1], m[2], m[3]
		if !recognized[key] {
			continue
		}
		existing, set := vars[key]
		switch {
		case op == "+=" && set:
			vars[key] = existing + " " + value
		case !set:
			vars[key] = value
		}
	}
}

// stripComment removes a trailing # comment, honoring the \# escape.
func stripComment(line string) string {
	if !strings.Contains(line, "#") {
		return line
	}
	if strings.Contains(line, `\#`) {
		// Protect escaped hashes before cutting the comment off
		const marker = "\x00"
		line = strings.ReplaceAll(line, `\#`, marker)
		line = commentRe.ReplaceAllString(line, "")
		return strings.ReplaceAll(line, marker, `\#`)
	}
	return commentRe.ReplaceAllString(line, "")
}

// apply maps the folded variables onto the record's recipe fields.
func apply(vars map[string]string, rec *ports.Record) {
	set := func(dst *ports.Var, key string) {
		if value, ok := vars[key]; ok {
			*dst = ports.Var{Value: value, Set: true}
		}
	}
	set(&rec.Recipe.Comment, "COMMENT")
	set(&rec.Recipe.Maintainer, "MAINTAINER")
	set(&rec.Recipe.Categories, "CATEGORIES")
	set(&rec.Recipe.WWW, "WWW")
	set(&rec.Recipe.PortName, "PORTNAME")
	set(&rec.Recipe.PortVersion, "PORTVERSION")
	set(&rec.Recipe.DistVersion, "DISTVERSION")
	set(&rec.Recipe.PortRevision, "PORTREVISION")
	set(&rec.Recipe.PortEpoch, "PORTEPOCH")
	set(&rec.Recipe.License, "LICENSE")
	set(&rec.Recipe.LicenseComb, "LICENSE_COMB")
	set(&rec.Recipe.PlistFiles, "PLIST_FILES")
	set(&rec.Recipe.Plist, "PLIST")
	set(&rec.Recipe.PlistSub, "PLIST_SUB")
	set(&rec.Recipe.Expiration, "EXPIRATION_DATE")

	for _, mark := range ports.AllMarks {
		if reason, ok := vars[string(mark)]; ok {
			rec.Recipe.Marks[mark] = reason
		}
	}
}

// ExtractAll runs extraction for every selected record on a bounded worker
// pool. Records are independent; the call returns only after every worker
// finished, so the engine always sees a fully populated store.
func ExtractAll(ctx context.Context, store *ports.Store, workers int) {
	if workers < 1 {
		workers = 1
	}

	names := store.Selected()
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for _, name := range names {
		rec, ok := store.Get(name)
		if !ok {
			continue
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(rec *ports.Record) {
			defer wg.Done()
			defer func() { <-sem }()
			Extract(rec)
		}(rec)
	}
	wg.Wait()

	missing := 0
	for _, name := range names {
		if rec, ok := store.Get(name); ok && rec.Recipe.State == ports.RecipeMissing {
			missing++
		}
	}
	logrus.Infof("Found %d ports with nonexistent Makefile", missing)
}
