package commerce

import (
	"strconv"
	"strings"
)

// LegacySortings reports whether an API version still returns sortings as an
// object keyed by sort key. That shape was replaced by the availableSortings
// array in 6.3. Unparseable versions are treated as current.
func LegacySortings(version string) bool {
	major, minor, ok := parseVersion(version)
	if !ok {
		return false
	}
	return major < 6 || (major == 6 && minor < 3)
}

func parseVersion(v string) (major, minor int, ok bool) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	parts := strings.Split(v, ".")
	if len(parts) < 2 {
		return 0, 0, false
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return major, minor, true
}
