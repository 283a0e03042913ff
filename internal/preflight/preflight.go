package preflight

import (
	"context"
	"path/filepath"
	"strings"

	"mediaprobe/internal/config"
	"mediaprobe/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every readiness check for the given config: the ffprobe
// executable, the catalog directory, and the log directory when configured.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckFFprobe(ctx, deps.ResolveFFprobePath(cfg.FFprobeBinary()))}
	results = append(results, CheckDirectoryAccess("Catalog directory", filepath.Dir(cfg.Catalog.Path)))
	if strings.TrimSpace(cfg.Logging.Dir) != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Logging.Dir))
	}
	return results
}

// Failed returns the subset of results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	return failed
}
