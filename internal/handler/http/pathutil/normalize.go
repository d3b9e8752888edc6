package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

const uuidExpr = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/notes/` + uuidExpr + `/summary$`), Template: "/notes/:id/summary"},
	{Pattern: regexp.MustCompile(`^/notes/` + uuidExpr + `$`), Template: "/notes/:id"},

	// malformed ids still collapse to one label each
	{Pattern: regexp.MustCompile(`^/notes/[^/]+/summary$`), Template: "/notes/:invalid/summary"},
	{Pattern: regexp.MustCompile(`^/notes/[^/]+$`), Template: "/notes/:invalid"},
}

// knownStatic are the routes reported under their own path.
var knownStatic = map[string]bool{
	"/":            true,
	"/health":      true,
	"/ready":       true,
	"/live":        true,
	"/metrics":     true,
	"/auth/signup": true,
	"/auth/login":  true,
	"/notes":       true,
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// Note IDs collapse to a template, swagger assets share one label, and
// any other unknown path is reported as "other".
//
// Examples:
//
//	NormalizePath("/notes/7f0c7a43-4a3e-4a4e-9f6d-2a1b2c3d4e5f")          // "/notes/:id"
//	NormalizePath("/notes/7f0c7a43-4a3e-4a4e-9f6d-2a1b2c3d4e5f/summary")  // "/notes/:id/summary"
//	NormalizePath("/notes/abc")                                          // "/notes/:invalid"
//	NormalizePath("/swagger/index.html")                                 // "/swagger/*"
//	NormalizePath("/wp-admin.php")                                       // "other"
//
// Query parameters and trailing slashes are ignored.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if knownStatic[path] {
		return path
	}
	if path == "/swagger" || strings.HasPrefix(path, "/swagger/") {
		return "/swagger/*"
	}
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return "other"
}

// GetExpectedCardinality returns the number of distinct path labels NormalizePath can produce.
func GetExpectedCardinality() int {
	// static routes, templates, swagger and "other"
	return len(knownStatic) + len(pathPatterns) + 2
}
