package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// ErrUnsupportedFormat marks every failure to obtain a usable probe record.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
	raw     []byte
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index              int            `json:"index"`
	CodecName          string         `json:"codec_name"`
	CodecLongName      string         `json:"codec_long_name,omitempty"`
	CodecType          string         `json:"codec_type"`
	CodecTag           string         `json:"codec_tag_string,omitempty"`
	Profile            string         `json:"profile,omitempty"`
	Width              *float64       `json:"width,omitempty"`
	Height             *float64       `json:"height,omitempty"`
	PixFmt             string         `json:"pix_fmt,omitempty"`
	SampleAspectRatio  *string        `json:"sample_aspect_ratio,omitempty"`
	DisplayAspectRatio *string        `json:"display_aspect_ratio,omitempty"`
	RFrameRate         string         `json:"r_frame_rate,omitempty"`
	AvgFrameRate       string         `json:"avg_frame_rate,omitempty"`
	Duration           string         `json:"duration,omitempty"`
	BitRate            string         `json:"bit_rate,omitempty"`
	SampleRate         string         `json:"sample_rate,omitempty"`
	Channels           *int           `json:"channels,omitempty"`
	ChannelLayout      string         `json:"channel_layout,omitempty"`
	Disposition        Disposition    `json:"disposition"`
	Tags               map[string]any `json:"tags,omitempty"`

	raw      json.RawMessage
	tagOrder []string
}

// Disposition holds ffprobe's per-stream role flags, each 0 or 1.
type Disposition struct {
	Default         int `json:"default"`
	Dub             int `json:"dub"`
	Original        int `json:"original"`
	Comment         int `json:"comment"`
	Lyrics          int `json:"lyrics"`
	Karaoke         int `json:"karaoke"`
	Forced          int `json:"forced"`
	HearingImpaired int `json:"hearing_impaired"`
	VisualImpaired  int `json:"visual_impaired"`
	CleanEffects    int `json:"clean_effects"`
	AttachedPic     int `json:"attached_pic"`
	TimedThumbnails int `json:"timed_thumbnails"`
}

// Format captures container-level metadata extracted by ffprobe.
//
// Size and DurationMs are derived rather than decoded: Inspect fills Size
// from a fresh stat (ReportedSize keeps ffprobe's value) and Parse derives
// DurationMs from Duration.
type Format struct {
	Filename       string         `json:"filename"`
	NBStreams      int            `json:"nb_streams"`
	FormatName     string         `json:"format_name"`
	FormatLongName string         `json:"format_long_name,omitempty"`
	Duration       NumericString  `json:"duration,omitempty"`
	BitRate        NumericString  `json:"bit_rate,omitempty"`
	ProbeScore     int            `json:"probe_score,omitempty"`
	ReportedSize   NumericString  `json:"size,omitempty"`
	Tags           map[string]any `json:"tags,omitempty"`
	Size           int64          `json:"stat_size"`
	DurationMs     float64        `json:"duration_ms"`

	tagOrder []string
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	if strings.TrimSpace(path) == "" {
		return Result{}, fmt.Errorf("%w: empty path", ErrUnsupportedFormat)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: resolve path: %w", ErrUnsupportedFormat, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	if info.IsDir() {
		return Result{}, fmt.Errorf("%w: %s is a directory", ErrUnsupportedFormat, abs)
	}

	cmd := exec.CommandContext(ctx, binary,
		"-hide_banner",
		"-v", "error",
		"-show_streams",
		"-show_format",
		"-print_format", "json",
		"--", abs,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return Result{}, fmt.Errorf("%w: ffprobe: %s", ErrUnsupportedFormat, msg)
	}
	if runErr != nil {
		return Result{}, fmt.Errorf("%w: ffprobe: %w", ErrUnsupportedFormat, runErr)
	}

	result, err := Parse(stdout.Bytes())
	if err != nil {
		return Result{}, err
	}
	result.Format.Size = info.Size()
	return result, nil
}

// Parse decodes and validates raw ffprobe JSON. Callers that stat the file
// themselves should overwrite Format.Size afterwards.
func Parse(data []byte) (Result, error) {
	var shape struct {
		Streams json.RawMessage `json:"streams"`
		Format  json.RawMessage `json:"format"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return Result{}, fmt.Errorf("%w: ffprobe parse: %w", ErrUnsupportedFormat, err)
	}
	if !isJSONKind(shape.Streams, '[') || !isJSONKind(shape.Format, '{') {
		return Result{}, fmt.Errorf("%w: invalid probe output: %s", ErrUnsupportedFormat, strings.TrimSpace(string(data)))
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("%w: ffprobe parse: %w", ErrUnsupportedFormat, err)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(shape.Streams, &entries); err != nil {
		return Result{}, fmt.Errorf("%w: ffprobe parse: %w", ErrUnsupportedFormat, err)
	}
	for i := range result.Streams {
		if i >= len(entries) {
			break
		}
		entry := entries[i]
		result.Streams[i].raw = entry
		result.Streams[i].tagOrder = tagOrder(entry)
	}
	result.Format.tagOrder = tagOrder(shape.Format)
	result.Format.DurationMs = result.Format.Duration.Float() * 1000
	result.raw = append([]byte(nil), data...)
	return result, nil
}

// tagOrder returns the keys of obj's "tags" object in document order. A key
// repeated in the document takes the position of its last occurrence, the
// one encoding/json keeps.
func tagOrder(obj json.RawMessage) []string {
	var holder struct {
		Tags json.RawMessage `json:"tags"`
	}
	if err := json.Unmarshal(obj, &holder); err != nil || !isJSONKind(holder.Tags, '{') {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(holder.Tags))
	if _, err := dec.Token(); err != nil {
		return nil
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil
		}
		keys = slices.DeleteFunc(keys, func(k string) bool { return k == key })
		keys = append(keys, key)
	}
	return keys
}

// orderedKeys returns order when it names exactly the keys of tags, and the
// sorted keys otherwise.
func orderedKeys(tags map[string]any, order []string) []string {
	if len(order) == len(tags) && !slices.ContainsFunc(order, func(k string) bool {
		_, ok := tags[k]
		return !ok
	}) {
		return slices.Clone(order)
	}
	return slices.Sorted(maps.Keys(tags))
}

// TagKeys returns the stream's tag keys in the order ffprobe printed them.
// Streams not produced by Parse report their keys sorted.
func (s Stream) TagKeys() []string {
	return orderedKeys(s.Tags, s.tagOrder)
}

// TagKeys returns the container's tag keys in the order ffprobe printed them.
func (f Format) TagKeys() []string {
	return orderedKeys(f.Tags, f.tagOrder)
}

func isJSONKind(raw json.RawMessage, open byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == open
}

// RawJSON returns the raw ffprobe JSON payload.
func (r Result) RawJSON() []byte {
	return append([]byte(nil), r.raw...)
}

// Dump renders the ffprobe record as indented JSON for diagnostics. Every
// field ffprobe printed is kept; format size is replaced by the stat size
// and format duration by milliseconds.
func (r Result) Dump() string {
	if len(r.raw) == 0 {
		return r.structDump()
	}
	dec := json.NewDecoder(bytes.NewReader(r.raw))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return r.structDump()
	}
	format, ok := doc["format"].(map[string]any)
	if !ok {
		format = map[string]any{}
		doc["format"] = format
	}
	format["size"] = r.Format.Size
	format["duration"] = r.Format.DurationMs
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return string(r.raw)
	}
	return string(data)
}

func (r Result) structDump() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", r)
	}
	return string(data)
}

// Dump renders a single stream as indented JSON for diagnostics, using the
// stream exactly as ffprobe printed it when available.
func (s Stream) Dump() string {
	if len(s.raw) > 0 {
		var out bytes.Buffer
		if err := json.Indent(&out, s.raw, "", "  "); err == nil {
			return out.String()
		}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", s)
	}
	return string(data)
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	return r.Format.DurationMs / 1000
}

// BitRate returns the container bitrate in bits per second, or 0 when unavailable.
func (r Result) BitRate() int64 {
	rate := r.Format.BitRate.Float()
	if rate < 0 {
		return 0
	}
	return int64(rate)
}

// NumericString accepts ffprobe's stringly-typed numbers as well as plain
// JSON numbers and null.
type NumericString string

func (n *NumericString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*n = ""
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*n = NumericString(s)
	default:
		*n = NumericString(trimmed)
	}
	return nil
}

// Float parses the value, returning 0 when it is absent or not a finite number.
func (n NumericString) Float() float64 {
	cleaned := strings.TrimSpace(string(n))
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}
	return parsed
}
