// Package version implements the dotted numeric version grammar used by the
// update wire protocol: one to four non-negative integer components, compared
// component-wise with missing trailing components treated as zero.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxComponents is the maximum number of dotted components a version may carry
// (MAJOR.MINOR.PATCH.BUILD).
const MaxComponents = 4

// Version represents a parsed numeric version.
type Version struct {
	Major int
	Minor int
	Patch int
	Build int
	Raw   string
}

// Parse parses a version string such as "1.2", "1.2.3" or "1.2.3.4".
// Missing trailing components default to zero. Pre-release or build-metadata
// suffixes are not part of the grammar and are rejected.
func Parse(s string) (Version, error) {
	raw := s
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, fmt.Errorf("parsing version: empty version string")
	}

	parts := strings.Split(s, ".")
	if len(parts) > MaxComponents {
		return Version{}, fmt.Errorf("parsing version %q: more than %d components", raw, MaxComponents)
	}

	nums := make([]int, MaxComponents)
	for i, part := range parts {
		n, err := parseComponent(part)
		if err != nil {
			return Version{}, fmt.Errorf("parsing version %q: %w", raw, err)
		}
		nums[i] = n
	}

	return Version{
		Major: nums[0],
		Minor: nums[1],
		Patch: nums[2],
		Build: nums[3],
		Raw:   raw,
	}, nil
}

// parseComponent parses a single dotted component as a non-negative integer.
// strconv.Atoi alone would accept "+1" and "-1", so digits are checked first.
func parseComponent(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty component")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-numeric component %q", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("component %q out of range", s)
	}
	return n, nil
}

// String returns the version in full MAJOR.MINOR.PATCH.BUILD form, with the
// build component omitted when zero.
func (v Version) String() string {
	if v.Build != 0 {
		return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Patch, v.Build)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare compares two versions and returns:
//   - -1 if v < other
//   - 0 if v == other
//   - 1 if v > other
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return compareInts(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return compareInts(v.Minor, other.Minor)
	}
	if v.Patch != other.Patch {
		return compareInts(v.Patch, other.Patch)
	}
	return compareInts(v.Build, other.Build)
}

// IsNewerThan returns true if v is strictly newer than other.
func (v Version) IsNewerThan(other Version) bool {
	return v.Compare(other) > 0
}

// Equal returns true if all components match. "1.0" equals "1.0.0.0".
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// compareInts compares two integers and returns -1, 0, or 1.
func compareInts(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
