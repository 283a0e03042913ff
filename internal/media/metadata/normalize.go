package metadata

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"mediaprobe/internal/media/ffprobe"
)

// singleFrameTolerance is how close, in seconds, the container duration must
// be to one frame's duration for a video stream to count as a still image.
const singleFrameTolerance = 0.02

var codecNameSubstitutes = map[string]string{
	"mjpeg": "jpeg",
}

// NormalizeStreams converts raw ffprobe streams into typed streams, in input
// order. seconds is the container duration used to tell single-frame images
// apart from video. Streams of unknown type are dropped; a stream missing a
// required field fails the whole call.
func NormalizeStreams(raw []ffprobe.Stream, seconds float64) ([]Stream, error) {
	streams := make([]Stream, 0, len(raw))
	for _, rs := range raw {
		codec := normalizeCodecName(rs.CodecName)
		tags := normalizeTags(rs.Tags, rs.TagKeys())
		if comments, ok := tags["comments"]; ok {
			if _, exists := tags["comment"]; !exists {
				tags["comment"] = comments
			}
		}

		switch rs.CodecType {
		case "subtitle":
			streams = append(streams, &SubtitlesStream{
				Codec:       codec,
				Language:    tags["language"],
				Title:       tags["title"],
				Disposition: rs.Disposition,
				Tags:        tags,
			})

		case "audio":
			if rs.Channels == nil {
				return nil, extractError("channels", rs)
			}
			streams = append(streams, &AudioStream{
				Codec:       codec,
				Channels:    *rs.Channels,
				Language:    tags["language"],
				Title:       tags["title"],
				Disposition: rs.Disposition,
				Tags:        tags,
			})

		case "video":
			stream, err := normalizeVisual(rs, codec, tags, seconds)
			if err != nil {
				return nil, err
			}
			streams = append(streams, stream)
		}
	}
	return streams, nil
}

func normalizeVisual(rs ffprobe.Stream, codec string, tags Tags, seconds float64) (Stream, error) {
	framerate, ok := parseFrameRate(rs.RFrameRate)
	if !ok {
		return nil, extractError("framerate", rs)
	}
	width, ok := positiveInt(rs.Width)
	if !ok {
		return nil, extractError("width", rs)
	}
	height, ok := positiveInt(rs.Height)
	if !ok {
		return nil, extractError("height", rs)
	}

	sar, ok := parseOptionalAspect(rs.SampleAspectRatio)
	if !ok {
		sar = 1
	}
	dar, ok := parseOptionalAspect(rs.DisplayAspectRatio)
	if !ok {
		dar = float64(width) / float64(height)
	}
	displayWidth, displayHeight := displaySize(width, height, sar)

	if isSingleFrame(seconds, framerate, rs.Disposition) {
		return &ImageStream{
			Codec:         codec,
			Width:         width,
			Height:        height,
			SAR:           sar,
			DAR:           dar,
			DisplayWidth:  displayWidth,
			DisplayHeight: displayHeight,
			PixelFormat:   rs.PixFmt,
			Title:         tags["title"],
			Disposition:   rs.Disposition,
			Tags:          tags,
		}, nil
	}
	return &VideoStream{
		Codec:         codec,
		Width:         width,
		Height:        height,
		Framerate:     framerate,
		SAR:           sar,
		DAR:           dar,
		DisplayWidth:  displayWidth,
		DisplayHeight: displayHeight,
		PixelFormat:   rs.PixFmt,
		Title:         tags["title"],
		Disposition:   rs.Disposition,
		Tags:          tags,
	}, nil
}

// isSingleFrame reports whether a video stream is really a still picture:
// no container duration, a duration spanning one frame, or a cover-art or
// thumbnail disposition.
func isSingleFrame(seconds, framerate float64, d ffprobe.Disposition) bool {
	if seconds == 0 {
		return true
	}
	if math.Abs(seconds-1/framerate) < singleFrameTolerance {
		return true
	}
	return d.AttachedPic != 0 || d.TimedThumbnails != 0
}

func normalizeCodecName(name string) string {
	if substitute, ok := codecNameSubstitutes[name]; ok {
		return substitute
	}
	return name
}

// normalizeTags lower-cases keys and drops null values, visiting keys in
// order so the last of several keys that differ only in case wins. Non-string
// values are rendered in their JSON form.
func normalizeTags(raw map[string]any, order []string) Tags {
	tags := make(Tags, len(raw))
	for _, key := range order {
		value := raw[key]
		if value == nil {
			continue
		}
		tags[strings.ToLower(key)] = tagString(value)
	}
	return tags
}

func tagString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}

// parseFrameRate parses ffprobe's "num/den" frame rate. Only finite, positive
// results are accepted.
func parseFrameRate(value string) (float64, bool) {
	num, den, found := strings.Cut(strings.TrimSpace(value), "/")
	if !found {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
	if err != nil || d == 0 {
		return 0, false
	}
	rate := n / d
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return 0, false
	}
	return rate, true
}

func positiveInt(value *float64) (int, bool) {
	if value == nil {
		return 0, false
	}
	v := *value
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 1 || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}

var aspectRatioPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)(?:[:/](\d+(?:\.\d+)?))?$`)

// ParseAspectRatio parses "num", "num:den" or "num/den" where both parts
// are non-negative decimals. ok is false when the value does not match or
// does not produce a positive, finite ratio (ffprobe reports "0:1" for
// unknown ratios), so the caller can substitute its default.
func ParseAspectRatio(value string) (float64, bool) {
	m := aspectRatioPattern.FindStringSubmatch(value)
	if m == nil {
		return 0, false
	}
	numerator, err := strconv.ParseFloat(m[1], 64)
	if err != nil || math.IsInf(numerator, 0) {
		return 0, false
	}
	ratio := numerator
	if m[2] != "" {
		denominator, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, false
		}
		ratio = numerator / denominator
	}
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio <= 0 {
		return 0, false
	}
	return ratio, true
}

func parseOptionalAspect(value *string) (float64, bool) {
	if value == nil {
		return 0, false
	}
	return ParseAspectRatio(*value)
}

// displaySize applies the sample aspect ratio to the coded size, widening
// for SAR > 1 and heightening for SAR < 1.
func displaySize(width, height int, sar float64) (int, int) {
	switch {
	case sar > 1:
		return int(math.Round(float64(width) * sar)), height
	case sar < 1:
		return width, int(math.Round(float64(height) / sar))
	default:
		return width, height
	}
}
