package updater

import (
	"crypto/sha512"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatal(err)
	}
}

func TestExecutableInstaller(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "figochat")
	staged := filepath.Join(dir, "staged")
	writeFile(t, target, "old build")
	writeFile(t, staged, "new build")

	sum := sha512.Sum512([]byte("new build"))
	if err := (ExecutableInstaller{TargetPath: target}).Install(staged, sum[:]); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new build" {
		t.Errorf("target = %q, want new build", got)
	}
}

func TestExecutableInstallerChecksumMismatch(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "figochat")
	staged := filepath.Join(dir, "staged")
	writeFile(t, target, "old build")
	writeFile(t, staged, "tampered build")

	sum := sha512.Sum512([]byte("new build"))
	if err := (ExecutableInstaller{TargetPath: target}).Install(staged, sum[:]); err == nil {
		t.Fatal("Install() error = nil, want checksum error")
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "old build" {
		t.Errorf("target = %q, want untouched", got)
	}
}
