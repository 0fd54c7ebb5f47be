package auth

import "strings"

// PermissionMap maps a route path prefix to the actions allowed under it.
// A missing key and a key with an empty slice both mean "no access".
type PermissionMap map[string][]string

// Match is the permission entry a request path resolved to.
type Match struct {
	Key     string
	Actions []string
}

// Resolve finds the most specific key covering path. A key covers path when it is
// equal to it or is followed by "/" in it; the root key "/" covers every path.
// Trailing slashes on keys are ignored.
func (m PermissionMap) Resolve(path string) (Match, bool) {
	var (
		best      Match
		bestExact bool
		found     bool
	)
	for raw, actions := range m {
		key := normalizeKey(raw)
		if !covers(key, path) {
			continue
		}
		exact := raw == key
		switch {
		case !found, len(key) > len(best.Key):
		case len(key) == len(best.Key) && exact && !bestExact:
			// "/projects" and "/projects/" collide; the canonical spelling wins.
		default:
			continue
		}
		best = Match{Key: key, Actions: actions}
		bestExact = exact
		found = true
	}
	return best, found
}

// Permits reports whether path resolves to a key with at least one action.
func (m PermissionMap) Permits(path string) bool {
	match, ok := m.Resolve(path)
	return ok && len(match.Actions) > 0
}

// Empty reports whether the map carries no entries at all.
func (m PermissionMap) Empty() bool { return len(m) == 0 }

func normalizeKey(key string) string {
	key = strings.TrimRight(strings.TrimSpace(key), "/")
	if key == "" {
		return "/"
	}
	if !strings.HasPrefix(key, "/") {
		key = "/" + key
	}
	return key
}

func covers(key, path string) bool {
	if key == "/" {
		return true
	}
	return path == key || strings.HasPrefix(path, key+"/")
}
