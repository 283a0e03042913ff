package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mediaprobe/internal/catalog"
	"mediaprobe/internal/media/metadata"
)

var errNoEntry = errors.New("no catalog entry")

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect recorded scan results",
	}

	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))
	catalogCmd.AddCommand(newCatalogRemoveCommand(ctx))

	return catalogCmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	var types []string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := parseEntryKinds(types)
			if err != nil {
				return err
			}
			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), kinds...)
			if err != nil {
				return err
			}

			if wantJSON(cmd, jsonOutput) {
				views := make([]entryJSON, 0, len(entries))
				for _, entry := range entries {
					views = append(views, newEntryJSON(entry))
				}
				return writeJSON(cmd, views)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Catalog is empty")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				detail := formatDimensions(entry.Width, entry.Height)
				if entry.Failed() {
					detail = firstLine(entry.Error)
				}
				rows = append(rows, []string{
					entry.Path,
					entry.Kind,
					entry.Codec,
					formatMillis(entry.DurationMs),
					humanBytes(entry.Size),
					detail,
					entry.ProbedAt.Local().Format(time.DateTime),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Path", "Type", "Codec", "Duration", "Size", "Detail", "Probed"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&types, "type", "t", nil, "Filter by type (image, audio, video, error)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON even on a terminal")
	return cmd
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <path>",
		Short: "Show the recorded metadata for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			entry, err := store.Get(cmd.Context(), path)
			if err != nil {
				return err
			}
			if entry == nil {
				return fmt.Errorf("%w for %s", errNoEntry, path)
			}

			if wantJSON(cmd, jsonOutput) {
				return writeJSON(cmd, newEntryJSON(entry))
			}

			out := cmd.OutOrStdout()
			for _, line := range renderSectionHeader(entry.Path, shouldColorize(out)) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderFields([][2]string{
				{"Type", entry.Kind},
				{"Request", entry.RequestID},
				{"Probed", entry.ProbedAt.Local().Format(time.RFC3339)},
			}))
			if entry.Failed() {
				fmt.Fprintf(out, "Error: %s\n", entry.Error)
				return nil
			}
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, []byte(entry.Payload), "", "  "); err != nil {
				return fmt.Errorf("decode recorded metadata: %w", err)
			}
			fmt.Fprintln(out, pretty.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON even on a terminal")
	return cmd
}

func newCatalogRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <path>...",
		Short: "Remove files from the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return ctx.withWriter(func(store *catalog.Store) error {
				var missing []string
				for _, arg := range args {
					path, err := filepath.Abs(arg)
					if err != nil {
						return fmt.Errorf("resolve path: %w", err)
					}
					removed, err := store.Remove(cmd.Context(), path)
					if err != nil {
						return err
					}
					if !removed {
						missing = append(missing, path)
						continue
					}
					fmt.Fprintf(out, "Removed %s\n", path)
				}
				if len(missing) > 0 {
					return fmt.Errorf("%w for %s", errNoEntry, strings.Join(missing, ", "))
				}
				return nil
			})
		},
	}
}

func parseEntryKinds(values []string) ([]string, error) {
	kinds := make([]string, 0, len(values))
	for _, value := range values {
		kind := strings.ToLower(strings.TrimSpace(value))
		switch kind {
		case string(metadata.KindImage), string(metadata.KindAudio), string(metadata.KindVideo), catalog.KindError:
			kinds = append(kinds, kind)
		case "":
		default:
			return nil, fmt.Errorf("unknown type %q (expected image, audio, video or error)", value)
		}
	}
	return kinds, nil
}

type entryJSON struct {
	Path      string          `json:"path"`
	Type      string          `json:"type"`
	RequestID string          `json:"requestId,omitempty"`
	ProbedAt  time.Time       `json:"probedAt"`
	Error     string          `json:"error,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}

func newEntryJSON(entry *catalog.Entry) entryJSON {
	view := entryJSON{
		Path:      entry.Path,
		Type:      entry.Kind,
		RequestID: entry.RequestID,
		ProbedAt:  entry.ProbedAt,
		Error:     entry.Error,
	}
	if entry.Payload != "" {
		view.Metadata = json.RawMessage(entry.Payload)
	}
	return view
}

func firstLine(value string) string {
	line, _, _ := strings.Cut(value, "\n")
	return line
}
