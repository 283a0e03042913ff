package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mediaprobe/internal/catalog"
	"mediaprobe/internal/deps"
	"mediaprobe/internal/media/metadata"
	"mediaprobe/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration, dependency and catalog status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			var lines []string
			lines = append(lines, renderSectionHeader("Configuration", colorize)...)
			configDetail := ctx.configPath
			if !ctx.configSeen {
				configDetail += " (not found, using defaults)"
			}
			lines = append(lines, renderStatusLine("Config file", statusInfo, configDetail, colorize))
			lines = append(lines, renderStatusLine("Catalog", statusInfo, cfg.Catalog.Path, colorize))
			lines = append(lines, renderStatusLine("Scan workers", statusInfo, fmt.Sprintf("%d", cfg.Scan.Workers), colorize))

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			lines = append(lines, dependencyLines(preflight.CheckSystemDeps(cfg), colorize)...)

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Preflight", colorize)...)
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				lines = append(lines, renderStatusLine(result.Name, passFail(result.Passed), result.Detail, colorize))
			}

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Catalog", colorize)...)
			catalogLines, err := catalogStatusLines(cmd, cfg.Catalog.Path, colorize)
			if err != nil {
				return err
			}
			lines = append(lines, catalogLines...)

			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func dependencyLines(statuses []deps.Status, colorize bool) []string {
	lines := make([]string, 0, len(statuses)+1)
	missing := make([]string, 0)
	for _, dep := range statuses {
		if dep.Available {
			message := "Ready"
			if dep.Command != "" {
				message = fmt.Sprintf("Ready (command: %s)", dep.Command)
			}
			lines = append(lines, renderStatusLine(dep.Name, statusOK, message, colorize))
			continue
		}

		detail := strings.TrimSpace(dep.Detail)
		if detail == "" {
			detail = "not available"
		}
		kind := statusError
		if dep.Optional {
			kind = statusWarn
		}
		lines = append(lines, renderStatusLine(dep.Name, kind, detail, colorize))
		missing = append(missing, dep.Name)
	}
	if len(missing) > 0 {
		lines = append(lines, renderStatusLine("Missing dependencies", statusWarn, fmt.Sprintf("%s (set [ffprobe].binary or %s)", strings.Join(missing, ", "), deps.FFprobeEnv), colorize))
	}
	return lines
}

// catalogStatusLines reports entry counts without creating the catalog when
// it does not exist yet.
func catalogStatusLines(cmd *cobra.Command, path string, colorize bool) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{renderStatusLine("Entries", statusInfo, "catalog not created yet (run `mediaprobe scan --record`)", colorize)}, nil
		}
		return nil, fmt.Errorf("stat catalog: %w", err)
	}

	store, err := catalog.Open(path)
	if err != nil {
		return []string{renderStatusLine("Entries", statusError, err.Error(), colorize)}, nil
	}
	defer store.Close()

	counts, err := store.Count(cmd.Context())
	if err != nil {
		return nil, err
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	lines := []string{renderStatusLine("Entries", statusInfo, fmt.Sprintf("%d", total), colorize)}
	for _, kind := range []string{string(metadata.KindImage), string(metadata.KindAudio), string(metadata.KindVideo)} {
		lines = append(lines, renderStatusLine(kind, statusInfo, fmt.Sprintf("%d", counts[kind]), colorize))
	}
	failedKind := statusOK
	if counts[catalog.KindError] > 0 {
		failedKind = statusWarn
	}
	lines = append(lines, renderStatusLine("failed", failedKind, fmt.Sprintf("%d", counts[catalog.KindError]), colorize))
	return lines, nil
}
