// Package types provides shared type definitions for the application.
package types

// Bounds is the persisted geometry of the main window.
// X and Y are nil until the window has been placed once.
type Bounds struct {
	Width  int  `json:"width"`
	Height int  `json:"height"`
	X      *int `json:"x,omitempty"`
	Y      *int `json:"y,omitempty"`
}

// Minimum window size.
const (
	MinWidth  = 800
	MinHeight = 600
)

// DefaultBounds is the window size used when nothing is persisted.
func DefaultBounds() Bounds {
	return Bounds{Width: 1200, Height: 800}
}

// Clamp returns b with its size raised to the window minimum.
func (b Bounds) Clamp() Bounds {
	if b.Width < MinWidth {
		b.Width = MinWidth
	}
	if b.Height < MinHeight {
		b.Height = MinHeight
	}
	return b
}

// NotificationRequest is the payload of the show-notification channel.
type NotificationRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Update Types
// ─────────────────────────────────────────────────────────────────────────────

// UpdateState names a step of an update session.
type UpdateState string

const (
	UpdateIdle         UpdateState = "idle"
	UpdateChecking     UpdateState = "checking"
	UpdateAvailable    UpdateState = "update-available"
	UpdateNotAvailable UpdateState = "update-not-available"
	UpdateDownloading  UpdateState = "downloading"
	UpdateDownloaded   UpdateState = "downloaded"
	UpdateInstalling   UpdateState = "installing"
	UpdateError        UpdateState = "error"
)

// UpdateStatus is emitted to the page on every state change.
type UpdateStatus struct {
	State          UpdateState `json:"state"`
	CurrentVersion string      `json:"currentVersion"`
	Version        string      `json:"version,omitempty"`
	Error          string      `json:"error,omitempty"`
}

// DownloadProgress mirrors the progress payload the page already understands.
type DownloadProgress struct {
	Total          int64   `json:"total"`
	Delta          int64   `json:"delta"`
	Transferred    int64   `json:"transferred"`
	Percent        float64 `json:"percent"`
	BytesPerSecond int64   `json:"bytesPerSecond"`
}
