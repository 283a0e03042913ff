// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no mediaprobe-specific dependencies and could be
// extracted as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video/subtitle stream properties
//   - Disposition: per-stream role flags (default, attached_pic, ...)
//   - Format: container-level metadata (duration, size, bitrate, tags)
//
// Primary entry points:
//   - Inspect: executes ffprobe once and returns the validated Result
//   - Parse: validates JSON already captured from ffprobe
//
// Every failure is tagged with ErrUnsupportedFormat. The file size is taken
// from a fresh stat rather than from the probe output, and the container
// duration is exposed in milliseconds through Format.DurationMs.
package ffprobe
