package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Version of hinagata
const (
	Major = 0
	Minor = 1
	Patch = 0
)

var (
	ErrInvalidVersion = errors.New("invalid version")
	ErrTooOld         = errors.New("hinagata is too old")
)

type Version struct {
	Major int
	Minor int
	Patch int
}

func Current() Version {
	return Version{
		Major: Major,
		Minor: Minor,
		Patch: Patch,
	}
}

func String() string {
	return Current().String()
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Parse accepts x.y.z with an optional leading v. Missing minor or patch
// components count as zero, so "1" and "1.2" are valid.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "v")

	parts := strings.Split(s, ".")
	if len(parts) == 0 || len(parts) > 3 {
		return Version{}, fmt.Errorf("%w: %q (expected x.y.z)", ErrInvalidVersion, s)
	}

	nums := [3]int{}
	names := [3]string{"major", "minor", "patch"}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("%w: %q (invalid %s)", ErrInvalidVersion, s, names[i])
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return cmpInt(v.Major, other.Major)
	case v.Minor != other.Minor:
		return cmpInt(v.Minor, other.Minor)
	default:
		return cmpInt(v.Patch, other.Patch)
	}
}

func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Require fails with ErrTooOld when the running version is older than min.
// An empty min always passes.
func Require(min string) error {
	if strings.TrimSpace(min) == "" {
		return nil
	}

	want, err := Parse(min)
	if err != nil {
		return err
	}

	if Current().Less(want) {
		return fmt.Errorf("%w: need %s, have %s", ErrTooOld, want, Current())
	}

	return nil
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
