package auth

import "strings"

// PublicEndpoints is the set of paths reachable without a bearer token.
//
// Matching rules:
//   - entries ending with '/' match by prefix (/swagger/ matches /swagger/index.html)
//   - other entries match exactly, with an optional trailing slash or query string
//
// Example:
//
//	p := NewPublicEndpoints([]string{"/auth/login", "/swagger/"})
//	p.IsPublic("/auth/login")         // true
//	p.IsPublic("/auth/login?next=/")  // true
//	p.IsPublic("/auth/login/extra")   // false
//	p.IsPublic("/swagger/index.html") // true
//	p.IsPublic("/notes")              // false
type PublicEndpoints struct {
	exact  []string
	prefix []string
}

// NewPublicEndpoints builds the matcher from configured paths. Blank entries and
// a bare "/" are ignored, since "/" would make every path public.
func NewPublicEndpoints(paths []string) *PublicEndpoints {
	p := &PublicEndpoints{}
	for _, path := range paths {
		path = strings.TrimSpace(path)
		switch {
		case path == "" || path == "/":
			continue
		case strings.HasSuffix(path, "/"):
			p.prefix = append(p.prefix, path)
		default:
			p.exact = append(p.exact, path)
		}
	}
	return p
}

// IsPublic reports whether path can be accessed without authentication.
// A nil matcher treats every path as protected.
func (p *PublicEndpoints) IsPublic(path string) bool {
	if p == nil {
		return false
	}
	for _, endpoint := range p.prefix {
		if strings.HasPrefix(path, endpoint) {
			return true
		}
	}
	for _, endpoint := range p.exact {
		if path == endpoint || path == endpoint+"/" || strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}
