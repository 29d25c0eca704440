package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// DefaultHeaders are consulted, in order, when proxy headers are trusted.
var DefaultHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHeaders replaces the list of proxy headers to consult.
func WithHeaders(headers ...string) Option {
	return func(r *Resolver) {
		r.headers = headers
	}
}

// WithoutProxyHeaders makes the Resolver use RemoteAddr only. Use it when
// the collector is exposed directly and headers are client controlled.
func WithoutProxyHeaders() Option {
	return func(r *Resolver) {
		r.headers = nil
	}
}

// Resolver extracts the originating client address from a request.
type Resolver struct {
	headers []string
}

// New returns a Resolver that trusts DefaultHeaders.
func New(opts ...Option) *Resolver {
	r := &Resolver{headers: DefaultHeaders}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IP returns the first valid address found in the configured headers,
// falling back to RemoteAddr. X-Forwarded-For style lists yield their first
// valid entry. An empty string means no valid address was found.
func (res *Resolver) IP(r *http.Request) string {
	for _, h := range res.headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		for candidate := range strings.SplitSeq(v, ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// GetIP resolves the client address with the default Resolver.
func GetIP(r *http.Request) string {
	return New().IP(r)
}

func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}
