package updater

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// canonical turns "1.2.3" into "v1.2.3" for the semver package.
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// IsNewer reports whether latest is a newer version than current.
// An unparsable current version (a dev build) is treated as older than
// any release.
func IsNewer(current, latest string) (bool, error) {
	l := canonical(latest)
	if !semver.IsValid(l) {
		return false, fmt.Errorf("invalid release version %q", latest)
	}
	c := canonical(current)
	if !semver.IsValid(c) {
		return true, nil
	}
	return semver.Compare(c, l) < 0, nil
}
