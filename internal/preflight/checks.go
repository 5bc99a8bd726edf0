package preflight

import (
	"fmt"

	"golang.org/x/sys/unix"

	"voicegate/internal/config"
	"voicegate/internal/deps"
)

// Run verifies the daemon can operate before it begins accepting uploads:
// required directories exist and are writable, and every required external
// dependency resolves.
func Run(cfg *config.Config) error {
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	for _, dir := range []string{cfg.Paths.UploadDir, cfg.Paths.LogDir} {
		if err := unix.Access(dir, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
			return fmt.Errorf("directory %q is not writable: %w", dir, err)
		}
	}

	for _, status := range deps.Check(cfg) {
		if !status.Available {
			return fmt.Errorf("dependency %s unavailable: %s", status.Name, status.Detail)
		}
	}
	return nil
}
