package updater

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/figochat/desktop/internal/types"
)

func TestHTTPDownloaderProgress(t *testing.T) {
	payload := bytes.Repeat([]byte("figochat"), 4096)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := &HTTPDownloader{Client: srv.Client(), Dir: dir}

	var events []types.DownloadProgress
	path, err := d.Download(context.Background(), File{URL: srv.URL + "/app"}, func(p types.DownloadProgress) {
		events = append(events, p)
	})
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read download: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Error("downloaded content differs")
	}

	if len(events) == 0 {
		t.Fatal("no progress reported")
	}
	var delta int64
	last := -1.0
	for _, e := range events {
		if e.Percent < last {
			t.Errorf("percent went backwards: %v after %v", e.Percent, last)
		}
		last = e.Percent
		delta += e.Delta
	}
	if first := events[0]; first.Percent != 0 || first.Transferred != 0 || first.Total != int64(len(payload)) {
		t.Errorf("first event = %+v, want 0%% of %d bytes", first, len(payload))
	}
	final := events[len(events)-1]
	if final.Percent != 100 {
		t.Errorf("final percent = %v, want 100", final.Percent)
	}
	if final.Transferred != int64(len(payload)) || final.Total != int64(len(payload)) {
		t.Errorf("final = %+v, want %d bytes", final, len(payload))
	}
	if delta != int64(len(payload)) {
		t.Errorf("sum of deltas = %d, want %d", delta, len(payload))
	}
}

func TestHTTPDownloaderReportsStartBeforeBody(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "4")
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		select {
		case <-started:
		case <-time.After(5 * time.Second):
		}
		_, _ = w.Write([]byte("body"))
	}))
	defer srv.Close()

	var first *types.DownloadProgress
	d := &HTTPDownloader{Client: srv.Client(), Dir: t.TempDir()}
	_, err := d.Download(context.Background(), File{URL: srv.URL}, func(p types.DownloadProgress) {
		if first == nil {
			first = &p
			close(started)
		}
	})
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if first == nil || first.Percent != 0 || first.Transferred != 0 || first.Total != 4 {
		t.Errorf("first event = %+v, want 0%% before any byte", first)
	}
}

func TestHTTPDownloaderRemovesPartial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, buf, err := w.(http.Hijacker).Hijack()
		if err != nil {
			t.Errorf("hijack: %v", err)
			return
		}
		defer conn.Close()
		_, _ = buf.WriteString("HTTP/1.1 200 OK\r\nContent-Length: 1000\r\n\r\npartial")
		_ = buf.Flush()
		if tc, ok := conn.(*net.TCPConn); ok {
			_ = tc.CloseWrite()
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := &HTTPDownloader{Client: srv.Client(), Dir: dir}
	if _, err := d.Download(context.Background(), File{URL: srv.URL}, nil); err == nil {
		t.Fatal("Download() error = nil, want truncated body error")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("staging dir has %d entries, want 0", len(entries))
	}
}

func TestHTTPDownloaderStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	d := &HTTPDownloader{Client: srv.Client(), Dir: t.TempDir()}
	if _, err := d.Download(context.Background(), File{URL: srv.URL}, nil); err == nil {
		t.Fatal("Download() error = nil, want status error")
	}
}
