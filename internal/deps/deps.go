package deps

import (
	"fmt"
	"os/exec"

	"voicegate/internal/config"
)

// Status describes the availability of one external dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Detail      string
}

// CheckFFmpeg resolves the configured ffmpeg binary from PATH.
func CheckFFmpeg(binary string) Status {
	result := Status{
		Name:        "FFmpeg",
		Description: "Strips video and produces canonical wav audio",
		Command:     binary,
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		result.Detail = fmt.Sprintf("binary %q not found", binary)
		return result
	}
	result.Command = path
	result.Available = true
	return result
}

// Check reports the status of every external dependency the daemon uses.
func Check(cfg *config.Config) []Status {
	return []Status{CheckFFmpeg(cfg.FFmpegBinary())}
}
