package window

import (
	"fmt"
	"net/url"
	"strings"
)

// origin is one allowed navigation target. A zero port matches any port.
type origin struct {
	scheme string
	host   string
	port   string
}

// Policy decides which navigation targets stay inside the main window.
type Policy struct {
	origins []origin
}

// NewPolicy allows the origin of serverURL plus plain-HTTP localhost on any
// port, which is where the development server runs.
func NewPolicy(serverURL string) (*Policy, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server url %q is not absolute", serverURL)
	}

	return &Policy{origins: []origin{
		{scheme: strings.ToLower(u.Scheme), host: strings.ToLower(u.Hostname()), port: effectivePort(u)},
		{scheme: "http", host: "localhost"},
	}}, nil
}

// Allowed reports whether raw may be loaded in the main window.
func (p *Policy) Allowed(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	port := effectivePort(u)

	for _, o := range p.origins {
		if o.scheme != scheme || o.host != host {
			continue
		}
		if o.port == "" || o.port == port {
			return true
		}
	}
	return false
}

// externalSchemes are the schemes handed to the OS default handler.
var externalSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
}

// OpenableExternally reports whether raw may be passed to the OS handler.
// Anything else (file:, custom protocol handlers) is dropped.
func OpenableExternally(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return externalSchemes[strings.ToLower(u.Scheme)]
}

func effectivePort(u *url.URL) string {
	if p := u.Port(); p != "" {
		return p
	}
	switch strings.ToLower(u.Scheme) {
	case "https":
		return "443"
	case "http":
		return "80"
	}
	return ""
}
