package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// FFprobeEnv names the environment variable consulted for the ffprobe
// executable when no explicit override is given.
const FFprobeEnv = "FFPROBE_PATH"

const defaultFFprobe = "ffprobe"

// Requirement defines an external dependency mediaprobe relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// ResolveFFprobePath returns the ffprobe executable to run: the override when
// set, then FFPROBE_PATH, then "ffprobe" resolved from PATH at exec time.
func ResolveFFprobePath(override string) string {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		return trimmed
	}
	if value, ok := os.LookupEnv(FFprobeEnv); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultFFprobe
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Command = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}
