// Package cors decides which browser origins may call the relay and builds
// the matching response headers.
//
// A single Policy type covers every deployment: an exact allow-list, with an
// optional wildcard override that only configuration can switch on. A
// single-origin site is an allow-list with one entry.
package cors

import "strconv"

const (
	HeaderAllowOrigin      = "Access-Control-Allow-Origin"
	HeaderAllowCredentials = "Access-Control-Allow-Credentials"
	HeaderAllowMethods     = "Access-Control-Allow-Methods"
	HeaderAllowHeaders     = "Access-Control-Allow-Headers"
	HeaderMaxAge           = "Access-Control-Max-Age"
	HeaderVary             = "Vary"

	AllowedMethods = "POST,OPTIONS"
	AllowedHeaders = "Content-Type"

	DefaultMaxAge = 86400
)

// Policy is immutable after construction and safe for concurrent use.
type Policy struct {
	allowed  map[string]struct{}
	allowAll bool
	maxAge   int
}

// NewPolicy builds a policy from an exact origin list. When allowAll is set
// every origin is accepted and "*" is echoed instead of the origin.
// A non-positive maxAge falls back to DefaultMaxAge.
func NewPolicy(origins []string, allowAll bool, maxAge int) *Policy {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o != "" {
			allowed[o] = struct{}{}
		}
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Policy{allowed: allowed, allowAll: allowAll, maxAge: maxAge}
}

// IsOriginAllowed reports whether origin may receive CORS headers.
// Matching is verbatim: scheme, host and port must all be identical.
func (p *Policy) IsOriginAllowed(origin string) bool {
	if p.allowAll {
		return true
	}
	if origin == "" {
		return false
	}
	_, ok := p.allowed[origin]
	return ok
}

// HeadersFor returns the CORS headers for a non-preflight response, or nil
// when the origin is not allowed.
func (p *Policy) HeadersFor(origin string) map[string]string {
	if !p.IsOriginAllowed(origin) {
		return nil
	}
	allow := origin
	if p.allowAll {
		allow = "*"
	}
	return map[string]string{
		HeaderAllowOrigin:      allow,
		HeaderAllowCredentials: "false",
		HeaderVary:             "Origin",
	}
}

// PreflightHeadersFor extends HeadersFor with the method, header and cache
// directives a preflight answer needs. Returns nil for disallowed origins.
func (p *Policy) PreflightHeadersFor(origin string) map[string]string {
	h := p.HeadersFor(origin)
	if h == nil {
		return nil
	}
	h[HeaderAllowMethods] = AllowedMethods
	h[HeaderAllowHeaders] = AllowedHeaders
	h[HeaderMaxAge] = strconv.Itoa(p.maxAge)
	return h
}
