package upstream

import (
	"net/http"
	"strings"
)

// Exemption rules mark booking API calls that are public regardless of
// credential presence. An exempt request must never carry a bearer header,
// even when one is available, so tokens cannot leak to endpoints that may be
// proxied or cached publicly.
//
// The room rule is deliberately narrow: GET on the exact collection path and
// GET on /rooms/{id} with exactly one non-empty segment. Deeper paths and
// every other method require a credential.

type exemption struct {
	method string
	path   string
}

var exactExemptions = []exemption{
	{http.MethodPost, "/auth/login"},
	{http.MethodPost, "/auth/register"},
	{http.MethodPost, "/customer-auth/login"},
	{http.MethodPost, "/customer-auth/register"},
	{http.MethodGet, "/rooms"},
	{http.MethodGet, "/bookings/available-rooms"},
}

// Exempt reports whether (method, path) matches a public rule. The path is
// relative to the API base, without query string.
func Exempt(method, path string) bool {
	path = strings.TrimSuffix(path, "/")
	for _, rule := range exactExemptions {
		if method == rule.method && path == rule.path {
			return true
		}
	}
	if method == http.MethodGet {
		if rest, ok := strings.CutPrefix(path, "/rooms/"); ok {
			return rest != "" && !strings.Contains(rest, "/")
		}
	}
	return false
}
