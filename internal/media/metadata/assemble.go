package metadata

import (
	"path/filepath"
	"strings"

	"mediaprobe/internal/media/ffprobe"
)

var extensionToFormat = map[string]string{
	"jpeg":  "jpg",
	"pjpeg": "jpg",
}

// Assemble normalizes the streams of a probe result and classifies the file
// at path. Video wins over audio, which wins over image.
func Assemble(result ffprobe.Result, path string) (Metadata, error) {
	streams, err := NormalizeStreams(result.Streams, result.DurationSeconds())
	if err != nil {
		return nil, err
	}
	return classify(result, path, streams)
}

func classify(result ffprobe.Result, path string, streams []Stream) (Metadata, error) {
	var (
		firstVideo *VideoStream
		firstAudio *AudioStream
		firstImage *ImageStream
	)
	for _, stream := range streams {
		switch s := stream.(type) {
		case *VideoStream:
			if firstVideo == nil {
				firstVideo = s
			}
		case *AudioStream:
			if firstAudio == nil {
				firstAudio = s
			}
		case *ImageStream:
			if firstImage == nil {
				firstImage = s
			}
		}
	}

	formatTags := normalizeTags(result.Format.Tags, result.Format.TagKeys())
	durationMs := result.Format.DurationMs

	switch {
	case firstVideo != nil:
		if !(durationMs > 0) {
			return nil, durationError(result)
		}
		tags := MergeTags(firstVideo.Tags, formatTags)
		meta := &VideoMetadata{
			Common: Common{
				Path:      path,
				Size:      result.Format.Size,
				Codec:     firstVideo.Codec,
				Container: result.Format.FormatName,
				Tags:      tags,
			},
			DurationMs:    durationMs,
			Framerate:     firstVideo.Framerate,
			Width:         firstVideo.Width,
			Height:        firstVideo.Height,
			SAR:           firstVideo.SAR,
			DAR:           firstVideo.DAR,
			DisplayWidth:  firstVideo.DisplayWidth,
			DisplayHeight: firstVideo.DisplayHeight,
			PixelFormat:   firstVideo.PixelFormat,
			Title:         tags["title"],
			Streams:       streams,
		}
		for _, stream := range streams {
			switch s := stream.(type) {
			case *VideoStream:
				meta.VideoStreams = append(meta.VideoStreams, s)
			case *AudioStream:
				meta.AudioStreams = append(meta.AudioStreams, s)
			case *SubtitlesStream:
				meta.SubtitlesStreams = append(meta.SubtitlesStreams, s)
			}
		}
		return meta, nil

	case firstAudio != nil:
		if !(durationMs > 0) {
			return nil, durationError(result)
		}
		tags := MergeTags(firstAudio.Tags, formatTags)
		return &AudioMetadata{
			Common: Common{
				Path:      path,
				Size:      result.Format.Size,
				Codec:     firstAudio.Codec,
				Container: result.Format.FormatName,
				Tags:      tags,
			},
			Channels:    firstAudio.Channels,
			DurationMs:  durationMs,
			Cover:       coverFromImage(firstImage),
			Language:    tags["language"],
			Title:       tags["title"],
			Artist:      tags["artist"],
			Album:       tags["album"],
			AlbumArtist: tags["album_artist"],
			Genre:       tags["genre"],
			Track:       tags["track"],
			Date:        tags["date"],
		}, nil

	case firstImage != nil:
		return &ImageMetadata{
			Common: Common{
				Path:      path,
				Size:      result.Format.Size,
				Codec:     firstImage.Codec,
				Container: containerFromExtension(path),
				Tags:      MergeTags(firstImage.Tags, formatTags),
			},
			Width:         firstImage.Width,
			Height:        firstImage.Height,
			SAR:           firstImage.SAR,
			DAR:           firstImage.DAR,
			DisplayWidth:  firstImage.DisplayWidth,
			DisplayHeight: firstImage.DisplayHeight,
			PixelFormat:   firstImage.PixelFormat,
		}, nil
	}

	return nil, uncategorizedError(result)
}

// MergeTags overlays tag sets in order: sources later in the list win on
// key collision. The result never aliases any source.
func MergeTags(sources ...Tags) Tags {
	merged := make(Tags)
	for _, source := range sources {
		for key, value := range source {
			merged[key] = value
		}
	}
	return merged
}

// containerFromExtension derives an image container from the file
// extension. ffprobe reports generic demuxers such as image2 for stills.
func containerFromExtension(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format, ok := extensionToFormat[ext]; ok {
		return format
	}
	return ext
}
