package rules

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ptlint/ptlint/internal/ports"
)

// testRecord builds a loaded record with sane index fields.
func testRecord(name string) *ports.Record {
	return &ports.Record{
		Name:       name,
		Origin:     "/usr/ports/misc/" + name,
		Prefix:     "/usr/local",
		Comment:    "A foo utility",
		Maintainer: "john@example.com",
		Categories: []string{"misc"},
		WWW:        "https://example.com/foo",
		Recipe: ports.Recipe{
			State: ports.RecipeLoaded,
			Mtime: time.Now(),
			Marks: map[ports.Mark]string{},
		},
	}
}

func testContext(recs ...*ports.Record) *Context {
	store := ports.NewStore()
	for _, rec := range recs {
		store.Add(rec)
	}
	return NewContext(store)
}

func issues(notifications []ports.Notification) []string {
	var out []string
	for _, n := range notifications {
		out = append(out, n.Issue)
	}
	return out
}

func countIssue(notifications []ports.Notification, issue string) int {
	count := 0
	for _, n := range notifications {
		if n.Issue == issue {
			count++
		}
	}
	return count
}

func TestCommentLengthBoundary(t *testing.T) {
	c := testContext()

	atLimit := testRecord("foo-1.0")
	atLimit.Comment = "Abcdefghij" // 10 characters
	c.Limits.CommentLength = 10
	if got := countIssue(checkComment(context.Background(), c, atLimit), "Too long comments"); got != 0 {
		t.Errorf("comment at the limit fired %d times, want 0", got)
	}

	over := testRecord("bar-1.0")
	over.Comment = "Abcdefghijk" // 11 characters
	if got := countIssue(checkComment(context.Background(), c, over), "Too long comments"); got != 1 {
		t.Errorf("comment over the limit fired %d times, want exactly 1", got)
	}
}

func TestCommentQuality(t *testing.T) {
	c := testContext()

	rec := testRecord("foo-1.0")
	rec.Comment = "a lowercase comment."
	got := checkComment(context.Background(), c, rec)
	if countIssue(got, "Uncapitalized comments") != 1 {
		t.Errorf("issues = %v, want an uncapitalized finding", issues(got))
	}
	if countIssue(got, "Dot-ended comments") != 1 {
		t.Errorf("issues = %v, want a dot-ended finding", issues(got))
	}
}

func TestCommentComparison(t *testing.T) {
	c := testContext()

	same := testRecord("foo-1.0")
	same.Recipe.Comment = ports.Var{Value: "A foo utility", Set: true}
	if got := checkComment(context.Background(), c, same); countIssue(got, "Diverging comments") != 0 {
		t.Errorf("issues = %v, want no divergence", issues(got))
	}

	diverging := testRecord("bar-1.0")
	diverging.Recipe.Comment = ports.Var{Value: "Something else", Set: true}
	if got := checkComment(context.Background(), c, diverging); countIssue(got, "Diverging comments") != 1 {
		t.Errorf("issues = %v, want one divergence", issues(got))
	}

	// Unexpanded references are tolerated, not resolved
	unexpanded := testRecord("baz-1.0")
	unexpanded.Recipe.Comment = ports.Var{Value: "${PORTNAME} utility", Set: true}
	if got := checkComment(context.Background(), c, unexpanded); countIssue(got, "Diverging comments") != 0 {
		t.Errorf("issues = %v, $-value must skip the comparison", issues(got))
	}

	// Backslashes are used inconsistently in both fields
	escaped := testRecord("qux-1.0")
	escaped.Comment = `A \"foo\" utility`
	escaped.Recipe.Comment = ports.Var{Value: `A "foo" utility`, Set: true}
	if got := checkComment(context.Background(), c, escaped); countIssue(got, "Diverging comments") != 0 {
		t.Errorf("issues = %v, backslashes must be stripped before comparing", issues(got))
	}
}

func TestRecipeMissingSuppressesComparisons(t *testing.T) {
	rec := testRecord("foo-1.0")
	rec.Recipe = ports.Recipe{State: ports.RecipeMissing}
	c := testContext(rec)

	var all []ports.Notification
	all = append(all, checkComment(context.Background(), c, rec)...)
	all = append(all, checkMaintainer(context.Background(), c, rec)...)
	all = append(all, checkCategories(context.Background(), c, rec)...)
	all = append(all, checkWWWSite(context.Background(), c, rec)...)
	all = append(all, checkLicenses(context.Background(), c, rec)...)
	all = append(all, checkMarks(context.Background(), c, rec)...)

	for _, issue := range []string{
		"Diverging comments", "Diverging maintainers", "Diverging categories",
		"Diverging www-site", "Missing LICENSE",
	} {
		if countIssue(all, issue) != 0 {
			t.Errorf("%q reported for a record without recipe", issue)
		}
	}
}

func TestMaintainerDivergenceNotifiesBothParties(t *testing.T) {
	c := testContext()
	rec := testRecord("foo-1.0")
	rec.Recipe.Maintainer = ports.Var{Value: "jane@example.com", Set: true}

	got := checkMaintainer(context.Background(), c, rec)
	if len(got) != 2 {
		t.Fatalf("got %d notifications, want both parties notified", len(got))
	}
	if got[0].Maintainer != "john@example.com" || got[1].Maintainer != "jane@example.com" {
		t.Errorf("notified %q and %q", got[0].Maintainer, got[1].Maintainer)
	}
}

func TestMaintainerComparisonNormalizes(t *testing.T) {
	c := testContext()
	rec := testRecord("foo-1.0")
	rec.Recipe.Maintainer = ports.Var{Value: "John@Example.COM", Set: true}

	if got := checkMaintainer(context.Background(), c, rec); len(got) != 0 {
		t.Errorf("issues = %v, case must not diverge", issues(got))
	}
}

func TestCategoriesUnofficialAndDiverging(t *testing.T) {
	c := testContext()

	rec := testRecord("foo-1.0")
	rec.Categories = []string{"misc", "not-a-category"}
	rec.Recipe.Categories = ports.Var{Value: "misc devel", Set: true}

	got := checkCategories(context.Background(), c, rec)
	if countIssue(got, "Unofficial category") != 1 {
		t.Errorf("issues = %v, want one unofficial category", issues(got))
	}
	if countIssue(got, "Diverging categories") != 1 {
		t.Errorf("issues = %v, want one divergence", issues(got))
	}
}

func TestCategoriesComparisonIsUnordered(t *testing.T) {
	c := testContext()
	rec := testRecord("foo-1.0")
	rec.Categories = []string{"misc", "devel"}
	rec.Recipe.Categories = ports.Var{Value: "devel misc", Set: true}

	if got := checkCategories(context.Background(), c, rec); countIssue(got, "Diverging categories") != 0 {
		t.Errorf("issues = %v, order must not matter", issues(got))
	}
}

func TestWWWSiteEmptyShortCircuitsProbes(t *testing.T) {
	c := testContext()
	c.CheckHost = true
	c.Hosts = hostProberFunc(func(ctx context.Context, hostname string) error {
		t.Error("probe must not run for an empty www-site")
		return nil
	})

	rec := testRecord("foo-1.0")
	rec.WWW = ""
	got := checkWWWSite(context.Background(), c, rec)
	if countIssue(got, "Empty www-site") != 1 {
		t.Errorf("issues = %v, want the empty finding", issues(got))
	}
}

func TestWWWSiteMembership(t *testing.T) {
	c := testContext()
	rec := testRecord("foo-1.0")
	rec.Recipe.WWW = ports.Var{Value: "https://mirror.example.org https://example.com/foo", Set: true}

	if got := checkWWWSite(context.Background(), c, rec); countIssue(got, "Diverging www-site") != 0 {
		t.Errorf("issues = %v, membership in the WWW list must pass", issues(got))
	}

	rec.Recipe.WWW = ports.Var{Value: "https://elsewhere.example.org", Set: true}
	if got := checkWWWSite(context.Background(), c, rec); countIssue(got, "Diverging www-site") != 1 {
		t.Errorf("issues = %v, want one divergence", issues(got))
	}
}

type hostProberFunc func(ctx context.Context, hostname string) error

func (f hostProberFunc) Resolve(ctx context.Context, hostname string) error {
	return f(ctx, hostname)
}

func TestMarksStaleness(t *testing.T) {
	c := testContext()
	c.Limits.BrokenDays = 365

	stale := testRecord("foo-1.0")
	stale.Recipe.Mtime = c.Now.Add(-400 * 24 * time.Hour)
	stale.Recipe.Marks[ports.MarkBroken] = "does not build"
	got := checkMarks(context.Background(), c, stale)
	if countIssue(got, "Marked as BROKEN for too long") != 1 {
		t.Errorf("issues = %v, want a staleness warning at 400 days", issues(got))
	}

	fresh := testRecord("bar-1.0")
	fresh.Recipe.Mtime = c.Now.Add(-300 * 24 * time.Hour)
	fresh.Recipe.Marks[ports.MarkBroken] = "does not build"
	got = checkMarks(context.Background(), c, fresh)
	if countIssue(got, "Marked as BROKEN for too long") != 0 {
		t.Errorf("issues = %v, 300 days is within the threshold", issues(got))
	}
	if countIssue(got, "Marked as BROKEN") != 1 {
		t.Errorf("issues = %v, want the info finding instead", issues(got))
	}
}

func TestMarksExpirationDate(t *testing.T) {
	c := testContext()
	rec := testRecord("foo-1.0")
	rec.Recipe.Expiration = ports.Var{Value: "2026-12-31", Set: true}

	got := checkMarks(context.Background(), c, rec)
	if countIssue(got, "Marked with EXPIRATION_DATE") != 1 {
		t.Errorf("issues = %v, want the expiration warning", issues(got))
	}
	if got[0].Severity != ports.SeverityWarning {
		t.Errorf("severity = %v, want warning", got[0].Severity)
	}
}

func TestUnchangedThreshold(t *testing.T) {
	c := testContext()
	c.Limits.UnchangedDays = 1095

	old := testRecord("foo-1.0")
	old.Recipe.Mtime = c.Now.Add(-1100 * 24 * time.Hour)
	if got := checkUnchanged(context.Background(), c, old); countIssue(got, "Unchanged for a long time") != 1 {
		t.Errorf("issues = %v, want the unchanged finding", issues(got))
	}

	recent := testRecord("bar-1.0")
	recent.Recipe.Mtime = c.Now.Add(-100 * 24 * time.Hour)
	if got := checkUnchanged(context.Background(), c, recent); len(got) != 0 {
		t.Errorf("issues = %v, want none", issues(got))
	}
}

func TestVersionsBothSet(t *testing.T) {
	c := testContext()
	rec := testRecord("foo-1.0")
	rec.Recipe.PortVersion = ports.Var{Value: "1.0", Set: true}
	rec.Recipe.DistVersion = ports.Var{Value: "1.0", Set: true}

	got := checkVersions(context.Background(), c, rec)
	if countIssue(got, "Both PORTVERSION and DISTVERSION") != 1 {
		t.Fatalf("issues = %v, want exactly one finding", issues(got))
	}

	single := testRecord("bar-1.0")
	single.Recipe.PortVersion = ports.Var{Value: "1.0", Set: true}
	if got := checkVersions(context.Background(), c, single); len(got) != 0 {
		t.Errorf("issues = %v, one version variable is fine", issues(got))
	}
}

func TestLicenses(t *testing.T) {
	c := testContext()

	missing := testRecord("foo-1.0")
	if got := checkLicenses(context.Background(), c, missing); countIssue(got, "Missing LICENSE") != 1 {
		t.Errorf("issues = %v, want the missing finding", issues(got))
	}

	unofficial := testRecord("bar-1.0")
	unofficial.Recipe.License = ports.Var{Value: "MYLICENSE", Set: true}
	if got := checkLicenses(context.Background(), c, unofficial); countIssue(got, "Unofficial license") != 1 {
		t.Errorf("issues = %v, want the unofficial finding", issues(got))
	}

	official := testRecord("baz-1.0")
	official.Recipe.License = ports.Var{Value: "MIT BSD2CLAUSE", Set: true}
	if got := checkLicenses(context.Background(), c, official); len(got) != 0 {
		t.Errorf("issues = %v, official licenses are fine", issues(got))
	}
}

func TestLicenseCombSingle(t *testing.T) {
	c := testContext()

	one := testRecord("foo-1.0")
	one.Recipe.License = ports.Var{Value: "MIT", Set: true}
	one.Recipe.LicenseComb = ports.Var{Value: "single", Set: true}
	if got := checkLicenses(context.Background(), c, one); countIssue(got, "Unnecessary LICENSE_COMB=single") != 1 {
		t.Errorf("issues = %v, want the unnecessary-single finding", issues(got))
	}

	two := testRecord("bar-1.0")
	two.Recipe.License = ports.Var{Value: "MIT GPLv2", Set: true}
	two.Recipe.LicenseComb = ports.Var{Value: "single", Set: true}
	if got := checkLicenses(context.Background(), c, two); countIssue(got, "Unnecessary LICENSE_COMB=single") != 0 {
		t.Errorf("issues = %v, two licenses make the mode meaningful", issues(got))
	}
}

func TestLicenseCombMulti(t *testing.T) {
	c := testContext()

	one := testRecord("foo-1.0")
	one.Recipe.License = ports.Var{Value: "MIT", Set: true}
	one.Recipe.LicenseComb = ports.Var{Value: "multi", Set: true}
	if got := checkLicenses(context.Background(), c, one); countIssue(got, "Unnecessary LICENSE_COMB=multi") != 1 {
		t.Errorf("issues = %v, want the unnecessary-multi finding", issues(got))
	}

	two := testRecord("bar-1.0")
	two.Recipe.License = ports.Var{Value: "MIT GPLv2", Set: true}
	two.Recipe.LicenseComb = ports.Var{Value: "multi", Set: true}
	if got := checkLicenses(context.Background(), c, two); countIssue(got, "Unnecessary LICENSE_COMB=multi") != 0 {
		t.Errorf("issues = %v, two licenses justify multi", issues(got))
	}
}

func TestLicensesExcludedPort(t *testing.T) {
	c := testContext()
	c.ExcludedLicensePorts = map[string]bool{"foo": true}

	rec := testRecord("foo-1.0")
	rec.Recipe.PortName = ports.Var{Value: "foo", Set: true}
	if got := checkLicenses(context.Background(), c, rec); len(got) != 0 {
		t.Errorf("issues = %v, excluded port must skip the family", issues(got))
	}
}

func TestDependenciesCrossRecord(t *testing.T) {
	dep := testRecord("dep-1.0")
	rec := testRecord("foo-1.0")
	rec.Depends.Run = []string{"dep-1.0", "ghost-1.0"}
	c := testContext(dep, rec)

	got := checkDependencies(context.Background(), c, rec)
	if countIssue(got, "Unknown dependency") != 1 {
		t.Fatalf("issues = %v, want one unknown dependency", issues(got))
	}
	if got[0].Severity != ports.SeverityWarning {
		t.Errorf("severity = %v, want warning", got[0].Severity)
	}
}

func TestInstallationPrefix(t *testing.T) {
	c := testContext()

	usual := testRecord("foo-1.0")
	if got := checkInstallationPrefix(context.Background(), c, usual); len(got) != 0 {
		t.Errorf("issues = %v, /usr/local is conventional", issues(got))
	}

	linux := testRecord("linux-bar-1.0")
	linux.Prefix = "/compat/linux"
	if got := checkInstallationPrefix(context.Background(), c, linux); len(got) != 0 {
		t.Errorf("issues = %v, /compat/linux is fine for linux ports", issues(got))
	}

	odd := testRecord("baz-1.0")
	odd.Prefix = "/opt/baz"
	got := checkInstallationPrefix(context.Background(), c, odd)
	if countIssue(got, "Unusual installation-prefix") != 1 {
		t.Errorf("issues = %v, want the unusual finding", issues(got))
	}
	if got[0].Severity != ports.SeverityWarning {
		t.Errorf("severity = %v, want warning", got[0].Severity)
	}
}

func TestDescriptionFile(t *testing.T) {
	dir := t.TempDir()
	descr := filepath.Join(dir, "pkg-descr")
	if err := os.WriteFile(descr, []byte("A much longer description of the foo utility and its many virtues.\nhttps://example.com/foo\n"), 0644); err != nil {
		t.Fatalf("Failed to write pkg-descr: %v", err)
	}

	c := testContext()
	rec := testRecord("foo-1.0")
	rec.Origin = dir
	rec.DescrFile = descr

	got := checkDescriptionFile(context.Background(), c, rec)
	if countIssue(got, "URL ending description-file") != 1 {
		t.Errorf("issues = %v, want the URL-ending finding", issues(got))
	}
	// The URL line is dropped before the length comparison; the remaining
	// text is longer than the comment, so no shortness finding
	if countIssue(got, "Too short description-file") != 0 {
		t.Errorf("issues = %v, remaining text is long enough", issues(got))
	}
}

func TestDescriptionFileSameAsComment(t *testing.T) {
	dir := t.TempDir()
	descr := filepath.Join(dir, "pkg-descr")
	if err := os.WriteFile(descr, []byte("A foo utility\n"), 0644); err != nil {
		t.Fatalf("Failed to write pkg-descr: %v", err)
	}

	c := testContext()
	rec := testRecord("foo-1.0")
	rec.Origin = dir
	rec.DescrFile = descr

	got := checkDescriptionFile(context.Background(), c, rec)
	if countIssue(got, "description-file same as comment") != 1 {
		t.Errorf("issues = %v, want the identical finding", issues(got))
	}
}

func TestDescriptionFileMissing(t *testing.T) {
	dir := t.TempDir()
	c := testContext()
	rec := testRecord("foo-1.0")
	rec.Origin = dir
	rec.DescrFile = filepath.Join(dir, "pkg-descr")

	got := checkDescriptionFile(context.Background(), c, rec)
	if countIssue(got, "Nonexistent description-file") != 1 {
		t.Errorf("issues = %v, want the nonexistent finding", issues(got))
	}
}

func TestPlist(t *testing.T) {
	dir := t.TempDir()
	c := testContext()

	none := testRecord("foo-1.0")
	none.Origin = dir
	got := checkPlist(context.Background(), c, none)
	if countIssue(got, "Nonexistent pkg-plist") != 1 {
		t.Fatalf("issues = %v, want the debug finding", issues(got))
	}
	if got[0].Severity != ports.SeverityDebug {
		t.Errorf("severity = %v, want debug", got[0].Severity)
	}

	abuse := testRecord("bar-1.0")
	abuse.Origin = dir
	abuse.Recipe.PlistFiles = ports.Var{Value: "a b c d e f g", Set: true}
	c.Limits.PlistAbuse = 7
	if got := checkPlist(context.Background(), c, abuse); countIssue(got, "PLIST_FILES abuse") != 1 {
		t.Errorf("issues = %v, want the abuse finding at 7 entries", issues(got))
	}

	modest := testRecord("baz-1.0")
	modest.Origin = dir
	modest.Recipe.PlistFiles = ports.Var{Value: "a b c", Set: true}
	if got := checkPlist(context.Background(), c, modest); len(got) != 0 {
		t.Errorf("issues = %v, 3 entries are fine", issues(got))
	}
}
