package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ptlint/ptlint/internal/ports"
)

// csvSeparator is ';' rather than ',', which can appear in port names.
const csvSeparator = ";"

const wrapWidth = 74

// WriteText pretty-prints the per-maintainer findings.
func (a *Aggregator) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "\nIssues per maintainer:\n"); err != nil {
		return err
	}
	for _, maintainer := range a.Maintainers() {
		fmt.Fprintf(w, "  %s:\n", maintainer)
		keys, issues := a.issuesFor(maintainer)
		for _, issue := range keys {
			fmt.Fprintf(w, "    %s:\n", issue)
			for _, line := range wrap(strings.Join(issues[issue], " "), wrapWidth) {
				fmt.Fprintf(w, "      %s\n", line)
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}

// WriteCSV writes the per-maintainer findings as MAINTAINER;ISSUE;PORT
// rows. The header comment carries the run ID so a CSV can be correlated
// with its log.
func (a *Aggregator) WriteCSV(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# run %s\n", a.runID); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Join([]string{"MAINTAINER", "ISSUE", "PORT"}, csvSeparator)); err != nil {
		return err
	}
	for _, maintainer := range a.Maintainers() {
		keys, issues := a.issuesFor(maintainer)
		for _, issue := range keys {
			for _, port := range issues[issue] {
				if _, err := fmt.Fprintln(w, strings.Join([]string{maintainer, issue, port}, csvSeparator)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// summaryLines maps issue counters to summary phrasings, in print order.
var summaryLines = []struct {
	issue  string
	format string
}{
	{"Nonexistent port-path", "with nonexistent port-path"},
	{"Nonexistent Makefile", "without Makefile"},
	{"Unusual installation-prefix", "with unusual installation-prefix (warning)"},
	{"Too long comments", "with a comment string exceeding the length limit (warning)"},
	{"Uncapitalized comments", "with an uncapitalized comment"},
	{"Dot-ended comments", "with a comment ending with a dot"},
	{"Diverging comments", "with a comment different between the index and Makefile"},
	{"Nonexistent description-file", "with nonexistent description-file"},
	{"URL ending description-file", "with URL ending description-file"},
	{"description-file same as comment", "with description-file identical to comment"},
	{"Too short description-file", "with description-file no longer than comment"},
	{"Nonexistent pkg-plist", "without pkg-plist/PLIST_FILES/PLIST/PLIST_SUB (debug)"},
	{"PLIST_FILES abuse", "abusing PLIST_FILES (warning)"},
	{"Diverging maintainers", "with a maintainer different between the index and Makefile"},
	{"Unofficial category", "referring to unofficial categories (warning)"},
	{"Diverging categories", "with categories different between the index and Makefile"},
	{"Empty www-site", "with no www-site"},
	{"Unresolvable www-site", "with an unresolvable www-site hostname"},
	{"Unaccessible www-site", "with an unaccessible www-site"},
	{"Diverging www-site", "with a www-site different between the index and Makefile"},
	{"Marked as BROKEN", "with a BROKEN mark (info)"},
	{"Marked as BROKEN for too long", "with a stale BROKEN mark (warning)"},
	{"Marked as DEPRECATED", "with a DEPRECATED mark (info)"},
	{"Marked as DEPRECATED for too long", "with a stale DEPRECATED mark (warning)"},
	{"Marked as FORBIDDEN", "with a FORBIDDEN mark (info)"},
	{"Marked as FORBIDDEN for too long", "with a stale FORBIDDEN mark (warning)"},
	{"Containing an IGNORE mark", "with an IGNORE mark (info)"},
	{"Marked as RESTRICTED", "with a RESTRICTED mark (info)"},
	{"Marked with EXPIRATION_DATE", "with an EXPIRATION_DATE mark (warning)"},
	{"Unchanged for a long time", "with an old last modification (info)"},
	{"Both PORTVERSION and DISTVERSION", "with both PORTVERSION and DISTVERSION (warning)"},
	{"Missing LICENSE", "with a missing LICENSE"},
	{"Unofficial license", "with an unofficial license (warning)"},
	{"Unnecessary LICENSE_COMB=single", "with an unnecessary LICENSE_COMB=single (warning)"},
	{"Unnecessary LICENSE_COMB=multi", "with an unnecessary LICENSE_COMB=multi (warning)"},
	{"Unknown dependency", "with a dependency missing from the index (warning)"},
	{"Vulnerable port", "with a vulnerable version (warning)"},
	{"Skipped vulnerability check", "with a skipped vulnerability check (debug)"},
}

// WriteSummary prints the non-zero finding counters.
func (a *Aggregator) WriteSummary(w io.Writer, selected, total int) error {
	if _, err := fmt.Fprintf(w, "Selected %d ports out of %d in the ports tree, and found:\n", selected, total); err != nil {
		return err
	}
	for _, line := range summaryLines {
		count := a.Counter(line.issue)
		if count == 0 {
			continue
		}
		plural := "s"
		if count == 1 {
			plural = ""
		}
		fmt.Fprintf(w, "  %d port%s %s\n", count, plural, line.format)
	}
	return nil
}

// WriteCategories prints the selected categories with their port counts.
func WriteCategories(w io.Writer, store *ports.Store) error {
	byCategory := store.ByCategory()
	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]string, 0, len(names))
	for _, name := range names {
		items = append(items, fmt.Sprintf("%s(%d)", name, len(byCategory[name])))
	}

	if _, err := fmt.Fprintf(w, "Showing %d categories with ports counts:\n\n", len(names)); err != nil {
		return err
	}
	for _, line := range wrap(strings.Join(items, ", "), 80) {
		fmt.Fprintln(w, line)
	}
	return nil
}

// WriteMaintainers prints the selected maintainers with their port counts.
func WriteMaintainers(w io.Writer, store *ports.Store) error {
	byMaintainer := store.ByMaintainer()
	names := make([]string, 0, len(byMaintainer))
	for name := range byMaintainer {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]string, 0, len(names))
	for _, name := range names {
		items = append(items, fmt.Sprintf("%s(%d)", name, len(byMaintainer[name])))
	}

	if _, err := fmt.Fprintf(w, "Showing %d maintainers with ports counts:\n\n", len(names)); err != nil {
		return err
	}
	for _, line := range wrap(strings.Join(items, ", "), 80) {
		fmt.Fprintln(w, line)
	}
	return nil
}

// wrap breaks a space-separated string into lines no wider than width,
// never splitting inside an item.
func wrap(s string, width int) []string {
	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(s) {
		if current.Len() > 0 && current.Len()+1+len(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
