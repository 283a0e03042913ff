package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"mediaprobe/internal/logging"
	"mediaprobe/internal/media/metadata"
)

const defaultWorkers = 4

// ProbeFunc probes a single file. metadata.Probe with bound options is the
// production implementation.
type ProbeFunc func(ctx context.Context, path string) (metadata.Metadata, error)

// Scanner walks a directory and probes matching files.
type Scanner struct {
	Probe ProbeFunc
	// Workers bounds concurrent probes; values below one use the default.
	Workers int
	// Extensions lists lower-case extensions without the dot. An empty list
	// matches every regular file.
	Extensions []string
	Logger     *slog.Logger
}

// Outcome is the result of probing one file. Exactly one of Meta and Err is set.
type Outcome struct {
	Path      string
	Meta      metadata.Metadata
	Err       error
	RequestID string
}

// Summary aggregates a scan.
type Summary struct {
	SessionID string
	Total     int
	Failed    int
	ByKind    map[metadata.Kind]int
	Elapsed   time.Duration
}

// Run probes every matching file under root and returns the outcomes sorted
// by path. It fails only when root cannot be walked or ctx is cancelled.
func (s *Scanner) Run(ctx context.Context, root string) ([]Outcome, Summary, error) {
	if s.Probe == nil {
		return nil, Summary{}, errors.New("scan: probe function is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sessionID := uuid.NewString()
	ctx = logging.WithSessionID(ctx, sessionID)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(s.Logger, "scan"))
	start := time.Now()

	paths, err := s.collect(root, logger)
	if err != nil {
		return nil, Summary{SessionID: sessionID}, err
	}

	workers := s.Workers
	if workers < 1 {
		workers = defaultWorkers
	}
	logger.Info("scan started",
		logging.String("root", root),
		logging.Int("files", len(paths)),
		logging.Int("workers", workers),
	)

	outcomes := make([]Outcome, len(paths))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, path := range paths {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			requestID := uuid.NewString()
			meta, err := s.Probe(logging.WithRequestID(groupCtx, requestID), path)
			if err == nil && meta == nil {
				err = errors.New("probe returned no metadata")
			}
			outcomes[i] = Outcome{Path: path, Meta: meta, Err: err, RequestID: requestID}
			if err != nil {
				logger.Warn("probe failed",
					logging.String("path", path),
					logging.String(logging.FieldCorrelationID, requestID),
					logging.Error(err),
				)
			}
			return nil
		})
	}
	_ = group.Wait()
	if err := ctx.Err(); err != nil {
		return nil, Summary{SessionID: sessionID}, fmt.Errorf("scan %s: %w", root, err)
	}

	summary := summarize(outcomes)
	summary.SessionID = sessionID
	summary.Elapsed = time.Since(start)
	logger.Info("scan complete",
		logging.Int("files", summary.Total),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.Elapsed),
	)
	return outcomes, summary, nil
}

// collect returns matching regular files under root in lexical order.
// Hidden entries are skipped, as are subdirectories that cannot be read.
func (s *Scanner) collect(root string, logger *slog.Logger) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve scan root: %w", err)
	}

	var paths []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == abs {
				return err
			}
			logger.Warn("skipping unreadable path", logging.String("path", path), logging.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path != abs && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !s.matches(d.Name()) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return paths, nil
}

func (s *Scanner) matches(name string) bool {
	if len(s.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	return ext != "" && slices.Contains(s.Extensions, ext)
}

func summarize(outcomes []Outcome) Summary {
	summary := Summary{Total: len(outcomes), ByKind: make(map[metadata.Kind]int)}
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			summary.Failed++
			continue
		}
		summary.ByKind[outcome.Meta.Kind()]++
	}
	return summary
}
