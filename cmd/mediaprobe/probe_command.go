package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mediaprobe/internal/media/metadata"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var ffprobePath string

	cmd := &cobra.Command{
		Use:   "probe <file>...",
		Short: "Inspect media files and print their classification",
		Long: `Run ffprobe against each file and classify it as image, audio or video.

Output is a table per file on a terminal and JSON otherwise. A single file
prints one JSON object; several files print an array of the files that
could be probed. Failures are reported on stderr.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			binary := cfg.FFprobeBinary()
			if override := strings.TrimSpace(ffprobePath); override != "" {
				binary = override
			}
			opts := []metadata.Option{
				metadata.WithFFprobePath(binary),
				metadata.WithLogger(logger),
			}

			asJSON := wantJSON(cmd, jsonOutput)
			colorize := shouldColorize(cmd.OutOrStdout())
			out := cmd.OutOrStdout()
			probed := make([]metadata.Metadata, 0, len(args))
			failed := 0

			for i, path := range args {
				meta, err := metadata.Probe(cmd.Context(), path, opts...)
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return err
					}
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					continue
				}
				if asJSON {
					probed = append(probed, meta)
					continue
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				for _, line := range renderMetadata(meta, colorize) {
					fmt.Fprintln(out, line)
				}
			}

			if asJSON {
				switch {
				case len(args) > 1:
					if err := writeJSON(cmd, probed); err != nil {
						return err
					}
				case len(probed) == 1:
					if err := writeJSON(cmd, probed[0]); err != nil {
						return err
					}
				}
			}

			if failed > 0 {
				if len(args) == 1 {
					return fmt.Errorf("probe failed for %s", args[0])
				}
				return fmt.Errorf("%d of %d files could not be probed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON even on a terminal")
	cmd.Flags().StringVar(&ffprobePath, "ffprobe", "", "ffprobe executable to use for this run")
	return cmd
}
