package updater

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/figochat/desktop/internal/types"
)

// HTTPDownloader streams artifacts into a staging directory.
type HTTPDownloader struct {
	Client    *http.Client
	Dir       string
	UserAgent string
}

// Download fetches f into a new file under Dir and returns its path.
// progress is called at 0% once the response headers are in, as the
// transfer advances, and once more at completion.
// The partial file is removed on any error.
func (d *HTTPDownloader) Download(ctx context.Context, f File, progress func(types.DownloadProgress)) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if d.UserAgent != "" {
		req.Header.Set("User-Agent", d.UserAgent)
	}

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download artifact: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download artifact: %s returned %d", f.URL, resp.StatusCode)
	}

	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	out, err := os.CreateTemp(d.Dir, "figochat-update-*")
	if err != nil {
		return "", fmt.Errorf("create staging file: %w", err)
	}
	path := out.Name()

	total := resp.ContentLength
	if total <= 0 {
		total = f.Size
	}
	pw := &progressWriter{total: total, start: time.Now(), report: progress}
	pw.emit(0)

	_, copyErr := io.Copy(io.MultiWriter(out, pw), resp.Body)
	closeErr := out.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		if err := os.Remove(path); err != nil {
			slog.Warn("remove partial download", "path", path, "error", err)
		}
		return "", fmt.Errorf("download artifact: %w", copyErr)
	}

	pw.finish()
	return path, nil
}

// progressWriter counts bytes and reports whole-percent steps.
type progressWriter struct {
	total       int64
	transferred int64
	reported    int64
	lastPercent int
	start       time.Time
	report      func(types.DownloadProgress)
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.transferred += int64(len(p))
	if w.total > 0 {
		pct := int(w.transferred * 100 / w.total)
		if pct > w.lastPercent && pct < 100 {
			w.lastPercent = pct
			w.emit(float64(pct))
		}
	}
	return len(p), nil
}

func (w *progressWriter) finish() {
	if w.total <= 0 || w.transferred > w.total {
		w.total = w.transferred
	}
	w.lastPercent = 100
	w.emit(100)
}

func (w *progressWriter) emit(percent float64) {
	if w.report == nil {
		return
	}
	var bps int64
	if elapsed := time.Since(w.start).Seconds(); elapsed > 0 {
		bps = int64(float64(w.transferred) / elapsed)
	}
	w.report(types.DownloadProgress{
		Total:          w.total,
		Delta:          w.transferred - w.reported,
		Transferred:    w.transferred,
		Percent:        percent,
		BytesPerSecond: bps,
	})
	w.reported = w.transferred
}
