package main

import (
	"fmt"
	"strconv"
	"strings"

	"mediaprobe/internal/language"
	"mediaprobe/internal/media/ffprobe"
	"mediaprobe/internal/media/metadata"
)

// renderMetadata renders a probe result as a section header, a field table
// and, for video, a per-stream table.
func renderMetadata(meta metadata.Metadata, colorize bool) []string {
	common := meta.CommonFields()
	lines := renderSectionHeader(common.Path, colorize)

	fields := [][2]string{
		{"Type", string(meta.Kind())},
		{"Codec", common.Codec},
		{"Container", common.Container},
		{"Size", humanBytes(common.Size)},
	}

	var streams string
	switch m := meta.(type) {
	case *metadata.ImageMetadata:
		fields = append(fields,
			[2]string{"Dimensions", formatDimensions(m.Width, m.Height)},
			[2]string{"Display size", formatDimensions(m.DisplayWidth, m.DisplayHeight)},
			[2]string{"SAR", formatRatio(m.SAR)},
			[2]string{"DAR", formatRatio(m.DAR)},
			[2]string{"Pixel format", m.PixelFormat},
		)
	case *metadata.AudioMetadata:
		fields = append(fields,
			[2]string{"Duration", formatMillis(m.DurationMs)},
			[2]string{"Channels", formatCount(m.Channels)},
			[2]string{"Language", languageLabel(m.Language)},
			[2]string{"Title", m.Title},
			[2]string{"Artist", m.Artist},
			[2]string{"Album", m.Album},
			[2]string{"Album artist", m.AlbumArtist},
			[2]string{"Genre", m.Genre},
			[2]string{"Track", m.Track},
			[2]string{"Date", m.Date},
			[2]string{"Cover", coverLabel(m.Cover)},
		)
	case *metadata.VideoMetadata:
		fields = append(fields,
			[2]string{"Duration", formatMillis(m.DurationMs)},
			[2]string{"Frame rate", formatFloat(m.Framerate)},
			[2]string{"Dimensions", formatDimensions(m.Width, m.Height)},
			[2]string{"Display size", formatDimensions(m.DisplayWidth, m.DisplayHeight)},
			[2]string{"SAR", formatRatio(m.SAR)},
			[2]string{"DAR", formatRatio(m.DAR)},
			[2]string{"Pixel format", m.PixelFormat},
			[2]string{"Title", m.Title},
		)
		streams = renderStreams(m.Streams)
	}

	lines = append(lines, renderFields(fields))
	if streams != "" {
		lines = append(lines, streams)
	}
	return lines
}

func renderStreams(streams []metadata.Stream) string {
	if len(streams) == 0 {
		return ""
	}
	rows := make([][]string, 0, len(streams))
	for i, stream := range streams {
		row := []string{strconv.Itoa(i), string(stream.Kind()), "", "", ""}
		switch s := stream.(type) {
		case *metadata.ImageStream:
			row[2] = s.Codec
			row[4] = joinDetails(formatDimensions(s.Width, s.Height), s.Title, dispositionLabel(s.Disposition))
		case *metadata.VideoStream:
			row[2] = s.Codec
			rate := ""
			if s.Framerate > 0 {
				rate = formatFloat(s.Framerate) + " fps"
			}
			row[4] = joinDetails(formatDimensions(s.Width, s.Height), rate, s.Title, dispositionLabel(s.Disposition))
		case *metadata.AudioStream:
			row[2] = s.Codec
			row[3] = languageLabel(s.Language)
			row[4] = joinDetails(fmt.Sprintf("%d ch", s.Channels), s.Title, dispositionLabel(s.Disposition))
		case *metadata.SubtitlesStream:
			row[2] = s.Codec
			row[3] = languageLabel(s.Language)
			row[4] = joinDetails(s.Title, dispositionLabel(s.Disposition))
		}
		rows = append(rows, row)
	}
	return renderTable(
		[]string{"#", "Type", "Codec", "Language", "Details"},
		rows,
		[]columnAlignment{alignRight},
	)
}

// languageLabel renders a tag language code as "French (fre)", falling back
// to the bare code when it is not recognized.
func languageLabel(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	name := language.DisplayName(code)
	if name == "" {
		return code
	}
	return fmt.Sprintf("%s (%s)", name, code)
}

func coverLabel(cover *metadata.Cover) string {
	if cover == nil {
		return ""
	}
	return joinDetails(cover.Codec, formatDimensions(cover.Width, cover.Height))
}

func dispositionLabel(d ffprobe.Disposition) string {
	var flags []string
	if d.Default != 0 {
		flags = append(flags, "default")
	}
	if d.Forced != 0 {
		flags = append(flags, "forced")
	}
	if d.HearingImpaired != 0 {
		flags = append(flags, "sdh")
	}
	if d.Comment != 0 {
		flags = append(flags, "commentary")
	}
	if d.AttachedPic != 0 {
		flags = append(flags, "attached")
	}
	return strings.Join(flags, "/")
}

func joinDetails(parts ...string) string {
	kept := parts[:0]
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, ", ")
}
