package ports

import (
	"strings"
	"time"
)

// DefaultMaintainerDomain is appended to maintainer addresses that lack a
// domain part. The same normalization is applied wherever addresses are
// parsed, compared or grouped.
const DefaultMaintainerDomain = "freebsd.org"

// NormalizeMaintainer lowercases an address and appends the default domain
// when the address has no domain part.
func NormalizeMaintainer(addr string) string {
	addr = strings.ToLower(strings.TrimSpace(addr))
	if addr == "" {
		return addr
	}
	if !strings.Contains(addr, "@") {
		addr += "@" + DefaultMaintainerDomain
	}
	return addr
}

// Var is a recipe variable value. Set distinguishes "assigned in the recipe"
// from "absent"; an absent variable is never compared against index fields.
type Var struct {
	Value string
	Set   bool
}

// Words splits the value on whitespace, dropping empty items.
func (v Var) Words() []string {
	if !v.Set {
		return nil
	}
	return strings.Fields(v.Value)
}

// Mark is a lifecycle mark set in a recipe, optionally carrying a reason.
type Mark string

const (
	MarkBroken     Mark = "BROKEN"
	MarkDeprecated Mark = "DEPRECATED"
	MarkForbidden  Mark = "FORBIDDEN"
	MarkIgnore     Mark = "IGNORE"
	MarkRestricted Mark = "RESTRICTED"
)

// AllMarks lists the lifecycle marks in a stable order.
var AllMarks = []Mark{MarkBroken, MarkDeprecated, MarkForbidden, MarkIgnore, MarkRestricted}

// RecipeState tracks whether a record's recipe was found and scanned.
type RecipeState int

const (
	RecipeUnknown RecipeState = iota
	RecipeLoaded
	RecipeMissing
)

// String returns the string representation of RecipeState.
func (s RecipeState) String() string {
	switch s {
	case RecipeLoaded:
		return "loaded"
	case RecipeMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Depends holds the five dependency lists of an index entry. All of them are
// retained so a record can be re-serialized into its source line.
type Depends struct {
	Extract []string
	Patch   []string
	Fetch   []string
	Build   []string
	Run     []string
}

// All returns the union of all dependency lists, deduplicated, in
// declaration order.
func (d Depends) All() []string {
	var out []string
	seen := make(map[string]bool)
	for _, list := range [][]string{d.Extract, d.Patch, d.Fetch, d.Build, d.Run} {
		for _, dep := range list {
			if !seen[dep] {
				seen[dep] = true
				out = append(out, dep)
			}
		}
	}
	return out
}

// Recipe holds the fields extracted from a port's Makefile. Fields are
// populated exactly once during extraction; a field the recipe never assigns
// stays absent rather than defaulting to an index value.
type Recipe struct {
	State RecipeState
	Mtime time.Time

	Comment    Var
	Maintainer Var
	Categories Var
	WWW        Var

	PortName     Var
	PortVersion  Var
	DistVersion  Var
	PortRevision Var
	PortEpoch    Var

	License     Var
	LicenseComb Var

	PlistFiles Var
	Plist      Var
	PlistSub   Var

	Marks      map[Mark]string
	Expiration Var
}

// Record is the normalized, merged view of one port's index and recipe data.
// Index-derived fields are immutable once parsed.
type Record struct {
	Name       string
	Origin     string
	Prefix     string
	Comment    string
	DescrFile  string
	Maintainer string
	Categories []string
	WWW        string
	Depends    Depends

	Recipe Recipe
}

// HasMark reports whether a lifecycle mark is set and returns its reason.
func (r *Record) HasMark(m Mark) (string, bool) {
	reason, ok := r.Recipe.Marks[m]
	return reason, ok
}

// IndexLine re-serializes the index-derived fields into the pipe-delimited
// form they were parsed from.
func (r *Record) IndexLine() string {
	fields := []string{
		r.Name,
		r.Origin,
		r.Prefix,
		r.Comment,
		r.DescrFile,
		r.Maintainer,
		strings.Join(r.Categories, " "),
		strings.Join(r.Depends.Extract, " "),
		strings.Join(r.Depends.Patch, " "),
		r.WWW,
		strings.Join(r.Depends.Fetch, " "),
		strings.Join(r.Depends.Build, " "),
		strings.Join(r.Depends.Run, " "),
	}
	return strings.Join(fields, "|")
}
