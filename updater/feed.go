package updater

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFeedURL hosts the release manifests.
const DefaultFeedURL = "https://figochat.manus.space/desktop/releases"

// maxManifestSize bounds the manifest download.
const maxManifestSize = 1 << 20

// File is one downloadable artifact listed in a manifest.
type File struct {
	URL    string `yaml:"url"`
	SHA512 string `yaml:"sha512"`
	Size   int64  `yaml:"size"`
}

// Release is the manifest published for the newest version.
type Release struct {
	Version      string `yaml:"version"`
	Files        []File `yaml:"files"`
	Path         string `yaml:"path"`
	SHA512       string `yaml:"sha512"`
	ReleaseDate  string `yaml:"releaseDate"`
	ReleaseNotes string `yaml:"releaseNotes"`
}

// ErrNoArtifact is returned when a manifest lists no executable for the
// running platform.
var ErrNoArtifact = errors.New("release has no artifact")

// ArtifactSuffix is how the raw executable for goos/goarch is named, e.g.
// FigoChat-2.1.0-windows-amd64.exe. Installers and archives never match.
func ArtifactSuffix(goos, goarch string) string {
	suffix := "-" + goos + "-" + goarch
	if goos == "windows" {
		suffix += ".exe"
	}
	return suffix
}

// Artifact picks the executable built for goos/goarch. Only file names
// ending in ArtifactSuffix qualify; the legacy top-level path is held to
// the same rule.
func (r *Release) Artifact(goos, goarch string) (File, error) {
	candidates := slices.Clone(r.Files)
	if r.Path != "" {
		candidates = append(candidates, File{URL: r.Path, SHA512: r.SHA512})
	}

	suffix := ArtifactSuffix(goos, goarch)
	for _, f := range candidates {
		if strings.HasSuffix(artifactName(f.URL), suffix) {
			return f, nil
		}
	}
	return File{}, fmt.Errorf("%w for %s/%s", ErrNoArtifact, goos, goarch)
}

// artifactName returns the lower-cased last path segment of raw, without
// any query or fragment.
func artifactName(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}
	return strings.ToLower(path.Base(p))
}

// ManifestName returns the manifest file published for goos.
func ManifestName(goos string) string {
	switch goos {
	case "darwin":
		return "latest-mac.yml"
	case "linux":
		return "latest-linux.yml"
	}
	return "latest.yml"
}

// HTTPFeed fetches the manifest for one platform.
type HTTPFeed struct {
	BaseURL   string
	GOOS      string
	UserAgent string
	Client    *http.Client
}

// ManifestURL returns the absolute manifest location.
func (f *HTTPFeed) ManifestURL() string {
	return strings.TrimRight(f.BaseURL, "/") + "/" + ManifestName(f.GOOS)
}

// Latest downloads and parses the manifest. Relative artifact URLs are
// resolved against the manifest URL.
func (f *HTTPFeed) Latest(ctx context.Context) (*Release, error) {
	manifestURL := f.ManifestURL()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, manifestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch manifest: %s returned %d", manifestURL, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestSize))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	rel, err := ParseRelease(data)
	if err != nil {
		return nil, err
	}
	if err := rel.resolve(manifestURL); err != nil {
		return nil, err
	}
	return rel, nil
}

func (f *HTTPFeed) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}

// ParseRelease decodes a YAML manifest.
func ParseRelease(data []byte) (*Release, error) {
	var rel Release
	if err := yaml.Unmarshal(data, &rel); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if rel.Version == "" {
		return nil, fmt.Errorf("decode manifest: missing version")
	}
	return &rel, nil
}

func (r *Release) resolve(base string) error {
	b, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("parse manifest url: %w", err)
	}

	abs := func(s string) (string, error) {
		if s == "" {
			return "", nil
		}
		u, err := url.Parse(s)
		if err != nil {
			return "", fmt.Errorf("parse artifact url %q: %w", s, err)
		}
		return b.ResolveReference(u).String(), nil
	}

	for i := range r.Files {
		if r.Files[i].URL, err = abs(r.Files[i].URL); err != nil {
			return err
		}
	}
	r.Path, err = abs(r.Path)
	return err
}

// DecodeChecksum accepts the base64 digests manifests carry, and hex as a
// fallback. An empty string yields a nil checksum.
func DecodeChecksum(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	if len(s) == hex.EncodedLen(64) {
		if b, err := hex.DecodeString(s); err == nil {
			return b, nil
		}
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode checksum: %w", err)
	}
	if len(b) != 64 {
		return nil, fmt.Errorf("decode checksum: got %d bytes, want 64", len(b))
	}
	return b, nil
}
