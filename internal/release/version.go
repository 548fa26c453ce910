// Package release derives the next package version from a conventional
// commit message and records it in package.json.
package release

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Bump is the size of a version increment.
type Bump string

const (
	BumpMajor Bump = "major"
	BumpMinor Bump = "minor"
	BumpPatch Bump = "patch"
)

var (
	// ErrNonConventionalCommit is returned when the latest commit is not a
	// feat, feat! or fix commit.
	ErrNonConventionalCommit = errors.New("commit message does not follow conventional commit style")
	// ErrInvalidVersion is returned for versions that are not major.minor.patch.
	ErrInvalidVersion = errors.New("invalid version")
)

var (
	breakingFeat = regexp.MustCompile(`^feat(\(.*\))?!`)
	feat         = regexp.MustCompile(`^feat`)
	fix          = regexp.MustCompile(`^fix`)
)

// Classify maps a commit message to a bump.
func Classify(message string) (Bump, error) {
	switch {
	case breakingFeat.MatchString(message):
		return BumpMajor, nil
	case feat.MatchString(message):
		return BumpMinor, nil
	case fix.MatchString(message):
		return BumpPatch, nil
	}
	return "", fmt.Errorf("%w: %q", ErrNonConventionalCommit, firstLine(message))
}

// Next returns the version that follows current for the given bump.
func Next(current string, bump Bump) (string, error) {
	major, minor, patch, err := parse(current)
	if err != nil {
		return "", err
	}

	switch bump {
	case BumpMajor:
		return fmt.Sprintf("%d.0.0", major+1), nil
	case BumpMinor:
		return fmt.Sprintf("%d.%d.0", major, minor+1), nil
	case BumpPatch:
		return fmt.Sprintf("%d.%d.%d", major, minor, patch+1), nil
	}
	return "", fmt.Errorf("unknown bump %q", bump)
}

// TagName returns the git tag for a version.
func TagName(version string) string {
	return "v" + version
}

// parse accepts exactly three numeric fields; pre-release and build
// metadata are rejected.
func parse(version string) (major, minor, patch int, err error) {
	v := "v" + version
	if !semver.IsValid(v) || semver.Canonical(v) != v || semver.Prerelease(v) != "" {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}

	parts := strings.Split(version, ".")
	nums := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidVersion, version)
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
