package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mediaprobe/internal/catalog"
	"mediaprobe/internal/logging"
	"mediaprobe/internal/media/metadata"
	"mediaprobe/internal/preflight"
	"mediaprobe/internal/scan"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var workers int
	var record bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Probe every media file under a directory",
		Long: `Walk a directory tree and probe each file whose extension is listed in
[scan].extensions, running up to --workers ffprobe processes at once.

With --record every outcome, including failures, is written to the catalog.
Only one recording scan may run against a catalog at a time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			root, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve scan root: %w", err)
			}

			if record {
				if err := cfg.EnsureDirectories(); err != nil {
					return err
				}
				if err := requirePreflight(preflight.RunAll(cmd.Context(), cfg)); err != nil {
					return err
				}
			} else if err := requirePreflight([]preflight.Result{preflight.CheckFFprobe(cmd.Context(), cfg.FFprobeBinary())}); err != nil {
				return err
			}

			var store *catalog.Store
			if record {
				store, err = catalog.Open(cfg.Catalog.Path)
				if err != nil {
					return fmt.Errorf("open catalog: %w", err)
				}
				defer store.Close()
				lock, err := store.AcquireWriter()
				if err != nil {
					return err
				}
				defer lock.Release()
			}

			if workers <= 0 {
				workers = cfg.Scan.Workers
			}
			opts := []metadata.Option{
				metadata.WithFFprobePath(cfg.FFprobeBinary()),
				metadata.WithLogger(logger),
			}
			scanner := &scan.Scanner{
				Probe: func(probeCtx context.Context, path string) (metadata.Metadata, error) {
					return metadata.Probe(probeCtx, path, opts...)
				},
				Workers:    workers,
				Extensions: cfg.Scan.Extensions,
				Logger:     logger,
			}

			outcomes, summary, err := scanner.Run(cmd.Context(), root)
			if err != nil {
				return err
			}

			if store != nil {
				if err := recordOutcomes(cmd.Context(), store, outcomes); err != nil {
					return err
				}
				logger.Info("scan recorded",
					logging.String("catalog", store.Path()),
					logging.Int("entries", len(outcomes)),
					logging.String(logging.FieldSessionID, summary.SessionID),
				)
			}

			if wantJSON(cmd, jsonOutput) {
				return writeJSON(cmd, scanReport(outcomes, summary))
			}
			out := cmd.OutOrStdout()
			if len(outcomes) > 0 {
				fmt.Fprintln(out, renderScanTable(root, outcomes))
			}
			fmt.Fprintln(out, summaryLine(summary))
			if store != nil {
				fmt.Fprintf(out, "Recorded %d entries in %s\n", len(outcomes), store.Path())
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent ffprobe processes (defaults to [scan].workers)")
	cmd.Flags().BoolVar(&record, "record", false, "Record outcomes in the catalog")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON even on a terminal")
	return cmd
}

func requirePreflight(results []preflight.Result) error {
	failed := preflight.Failed(results)
	if len(failed) == 0 {
		return nil
	}
	parts := make([]string, 0, len(failed))
	for _, result := range failed {
		parts = append(parts, fmt.Sprintf("%s: %s", result.Name, result.Detail))
	}
	return fmt.Errorf("preflight failed: %s", strings.Join(parts, "; "))
}

func recordOutcomes(ctx context.Context, store *catalog.Store, outcomes []scan.Outcome) error {
	for _, outcome := range outcomes {
		var entry catalog.Entry
		if outcome.Err != nil {
			entry = catalog.EntryFromError(outcome.Path, outcome.Err, outcome.RequestID)
		} else {
			var err error
			entry, err = catalog.EntryFromMetadata(outcome.Meta, outcome.RequestID)
			if err != nil {
				return fmt.Errorf("record %s: %w", outcome.Path, err)
			}
		}
		if err := store.Record(ctx, entry); err != nil {
			return fmt.Errorf("record %s: %w", outcome.Path, err)
		}
	}
	return nil
}

type scanFileJSON struct {
	Path      string `json:"path"`
	Type      string `json:"type"`
	Codec     string `json:"codec,omitempty"`
	RequestID string `json:"requestId"`
	Error     string `json:"error,omitempty"`
}

type scanReportJSON struct {
	SessionID string         `json:"sessionId"`
	Total     int            `json:"total"`
	Failed    int            `json:"failed"`
	ByType    map[string]int `json:"byType"`
	ElapsedMs int64          `json:"elapsedMs"`
	Files     []scanFileJSON `json:"files"`
}

func scanReport(outcomes []scan.Outcome, summary scan.Summary) scanReportJSON {
	report := scanReportJSON{
		SessionID: summary.SessionID,
		Total:     summary.Total,
		Failed:    summary.Failed,
		ByType:    make(map[string]int, len(summary.ByKind)),
		ElapsedMs: summary.Elapsed.Milliseconds(),
		Files:     make([]scanFileJSON, 0, len(outcomes)),
	}
	for kind, count := range summary.ByKind {
		report.ByType[string(kind)] = count
	}
	for _, outcome := range outcomes {
		file := scanFileJSON{Path: outcome.Path, RequestID: outcome.RequestID}
		if outcome.Err != nil {
			file.Type = catalog.KindError
			file.Error = outcome.Err.Error()
		} else {
			file.Type = string(outcome.Meta.Kind())
			file.Codec = outcome.Meta.CommonFields().Codec
		}
		report.Files = append(report.Files, file)
	}
	return report
}

func renderScanTable(root string, outcomes []scan.Outcome) string {
	rows := make([][]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		display := outcome.Path
		if rel, err := filepath.Rel(root, outcome.Path); err == nil {
			display = rel
		}
		if outcome.Err != nil {
			rows = append(rows, []string{display, catalog.KindError, "", "", firstErrorLine(outcome.Err)})
			continue
		}
		common := outcome.Meta.CommonFields()
		rows = append(rows, []string{display, string(outcome.Meta.Kind()), common.Codec, outcomeDuration(outcome.Meta), humanBytes(common.Size)})
	}
	return renderTable(
		[]string{"File", "Type", "Codec", "Duration", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	)
}

func outcomeDuration(meta metadata.Metadata) string {
	switch m := meta.(type) {
	case *metadata.AudioMetadata:
		return formatMillis(m.DurationMs)
	case *metadata.VideoMetadata:
		return formatMillis(m.DurationMs)
	default:
		return ""
	}
}

func summaryLine(summary scan.Summary) string {
	kinds := make([]string, 0, len(summary.ByKind))
	for kind, count := range summary.ByKind {
		kinds = append(kinds, fmt.Sprintf("%d %s", count, kind))
	}
	sort.Strings(kinds)
	detail := strings.Join(kinds, ", ")
	if detail == "" {
		detail = "none classified"
	}
	return fmt.Sprintf("Scanned %d files (%s), %d failed in %s",
		summary.Total, detail, summary.Failed, summary.Elapsed.Round(time.Millisecond))
}

func firstErrorLine(err error) string {
	if err == nil {
		return ""
	}
	return firstLine(err.Error())
}
