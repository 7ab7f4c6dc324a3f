package updater

import (
	"crypto/tls"
	"net/http"
	"time"
)

// NewHTTPClient returns the client used for manifests and downloads.
// skipVerify disables certificate checks and must only be set in
// development mode.
func NewHTTPClient(skipVerify bool) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.ResponseHeaderTimeout = 30 * time.Second
	if skipVerify {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // development only
	}
	return &http.Client{Transport: tr}
}
