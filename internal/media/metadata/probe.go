package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"mediaprobe/internal/deps"
	"mediaprobe/internal/logging"
	"mediaprobe/internal/media/ffprobe"
)

// Option customizes a single Probe call.
type Option func(*options)

type options struct {
	ffprobePath string
	logger      *slog.Logger
}

// WithFFprobePath overrides the ffprobe executable. An empty value falls back
// to FFPROBE_PATH and then to "ffprobe" on PATH.
func WithFFprobePath(path string) Option {
	return func(o *options) {
		o.ffprobePath = path
	}
}

// WithLogger routes probe diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Probe runs ffprobe once against path and returns the classified metadata.
// Calls share no state and may run concurrently. No timeout is applied; bound
// ctx to limit how long the ffprobe process may run.
func Probe(ctx context.Context, path string, opts ...Option) (Metadata, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := logging.RequestIDFromContext(ctx); !ok {
		ctx = logging.WithRequestID(ctx, uuid.NewString())
	}
	logger := logging.WithContext(ctx, logging.NewComponentLogger(o.logger, "metadata"))

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve path %q: %w", ErrUnsupportedFormat, path, err)
	}
	binary := deps.ResolveFFprobePath(o.ffprobePath)

	start := time.Now()
	result, err := ffprobe.Inspect(ctx, binary, abs)
	if err != nil {
		logger.Debug("ffprobe failed",
			logging.String("path", abs),
			logging.String("ffprobe", binary),
			logging.Error(err),
		)
		return nil, fmt.Errorf("probe %s: %w", abs, err)
	}

	meta, err := Assemble(result, abs)
	if err != nil {
		logger.Debug("probe record rejected",
			logging.String("path", abs),
			logging.Error(err),
		)
		return nil, fmt.Errorf("probe %s: %w", abs, err)
	}

	common := meta.CommonFields()
	logger.Debug("probe complete",
		logging.String("path", abs),
		logging.String("type", string(meta.Kind())),
		logging.String("codec", common.Codec),
		logging.String("container", common.Container),
		logging.Int("streams", len(result.Streams)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return meta, nil
}
