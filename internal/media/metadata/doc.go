// Package metadata turns raw ffprobe output into typed media metadata.
//
// Probe is the single entry point: it runs ffprobe once, normalizes every
// stream into an ImageStream, VideoStream, AudioStream or SubtitlesStream,
// and classifies the file as video, audio or image, in that order of
// precedence. Video streams that span a single frame, or that carry an
// attached-picture or thumbnail disposition, are treated as images, which is
// how cover art on audio files ends up as AudioMetadata.Cover.
//
// Failures carry one of the exported markers (ErrUnsupportedFormat,
// ErrStreamExtraction, ErrInvalidDuration, ErrUncategorized) and embed the
// offending probe JSON for diagnosis.
package metadata
