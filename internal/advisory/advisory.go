// Package advisory provides the vulnerability lookup service: given a
// package name and version, it returns the matching advisory identifiers.
package advisory

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsupportedVersion signals a version string the naive comparator
// cannot order. Callers skip the lookup rather than treating this as a
// failure.
var ErrUnsupportedVersion = errors.New("version scheme unsupported")

// Service looks up advisories for a package version.
type Service interface {
	Lookup(ctx context.Context, name, version string) ([]string, error)
}

// compareVersions orders two dotted-numeric versions. Any non-numeric
// segment makes the version unsupported.
func compareVersions(a, b string) (int, error) {
	as, err := versionSegments(a)
	if err != nil {
		return 0, err
	}
	bs, err := versionSegments(b)
	if err != nil {
		return 0, err
	}
	for i := 0; i < len(as) || i < len(bs); i++ {
		av, bv := 0, 0
		if i < len(as) {
			av = as[i]
		}
		if i < len(bs) {
			bv = bs[i]
		}
		if av != bv {
			if av < bv {
				return -1, nil
			}
			return 1, nil
		}
	}
	return 0, nil
}

func versionSegments(v string) ([]int, error) {
	if v == "" {
		return nil, fmt.Errorf("empty version: %w", ErrUnsupportedVersion)
	}
	parts := strings.Split(v, ".")
	out := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("version %q: %w", v, ErrUnsupportedVersion)
		}
		out[i] = n
	}
	return out, nil
}
