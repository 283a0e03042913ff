package metadata

import (
	"errors"
	"fmt"

	"mediaprobe/internal/media/ffprobe"
)

var (
	// ErrUnsupportedFormat marks acquisition and normalization failures. It is
	// the same marker ffprobe.Inspect uses so callers only need one check.
	ErrUnsupportedFormat = ffprobe.ErrUnsupportedFormat
	// ErrStreamExtraction marks a stream missing a field its type requires.
	ErrStreamExtraction = errors.New("stream extraction failed")
	// ErrInvalidDuration marks audio or video files without a positive duration.
	ErrInvalidDuration = errors.New("invalid format duration")
	// ErrUncategorized marks probe records with no image, audio or video stream.
	ErrUncategorized = errors.New("unable to categorize probe data")
)

func extractError(field string, raw ffprobe.Stream) error {
	return fmt.Errorf("%w: %w: couldn't extract %s out of %s stream: %s",
		ErrUnsupportedFormat, ErrStreamExtraction, field, raw.CodecType, raw.Dump())
}

func durationError(result ffprobe.Result) error {
	return fmt.Errorf("%w: %w: %s", ErrUnsupportedFormat, ErrInvalidDuration, result.Dump())
}

func uncategorizedError(result ffprobe.Result) error {
	return fmt.Errorf("unknown file, %w: %s", ErrUncategorized, result.Dump())
}
