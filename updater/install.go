package updater

import (
	"crypto"
	_ "crypto/sha512" // registers crypto.SHA512
	"fmt"
	"os"

	update "github.com/inconshreveable/go-update"
)

// ExecutableInstaller swaps the running executable for a downloaded one.
type ExecutableInstaller struct {
	// TargetPath overrides the executable to replace. Empty means the
	// running binary.
	TargetPath string
}

// Install verifies path against checksum (SHA-512) and replaces the
// target with it. A failed swap is rolled back by the update library.
func (i ExecutableInstaller) Install(path string, checksum []byte) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open update: %w", err)
	}
	defer f.Close()

	opts := update.Options{TargetPath: i.TargetPath}
	if len(checksum) > 0 {
		opts.Hash = crypto.SHA512
		opts.Checksum = checksum
	}
	if err := opts.CheckPermissions(); err != nil {
		return fmt.Errorf("check permissions: %w", err)
	}

	if err := update.Apply(f, opts); err != nil {
		if rerr := update.RollbackError(err); rerr != nil {
			return fmt.Errorf("apply update: %w (rollback failed: %v)", err, rerr)
		}
		return fmt.Errorf("apply update: %w", err)
	}
	return nil
}
