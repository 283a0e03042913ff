package metadata

import (
	"maps"

	"mediaprobe/internal/media/ffprobe"
)

// Kind identifies both stream variants and the overall file classification.
type Kind string

const (
	KindImage     Kind = "image"
	KindVideo     Kind = "video"
	KindAudio     Kind = "audio"
	KindSubtitles Kind = "subtitles"
)

// Tags holds free-form tag values with lower-cased keys.
type Tags map[string]string

// Clone returns an independent copy; a nil receiver yields an empty map.
func (t Tags) Clone() Tags {
	out := make(Tags, len(t))
	maps.Copy(out, t)
	return out
}

// Stream is a normalized stream: one of *ImageStream, *VideoStream,
// *AudioStream or *SubtitlesStream.
type Stream interface {
	Kind() Kind
	isStream()
}

// ImageStream is a single-frame picture, including cover art and
// thumbnails that ffprobe reports as video.
type ImageStream struct {
	Codec         string              `json:"codec"`
	Width         int                 `json:"width"`
	Height        int                 `json:"height"`
	SAR           float64             `json:"sar"`
	DAR           float64             `json:"dar"`
	DisplayWidth  int                 `json:"displayWidth"`
	DisplayHeight int                 `json:"displayHeight"`
	PixelFormat   string              `json:"pixelFormat,omitempty"`
	Title         string              `json:"title,omitempty"`
	Disposition   ffprobe.Disposition `json:"disposition"`
	Tags          Tags                `json:"tags"`
}

// VideoStream is a moving-picture stream.
type VideoStream struct {
	Codec         string              `json:"codec"`
	Width         int                 `json:"width"`
	Height        int                 `json:"height"`
	Framerate     float64             `json:"framerate"`
	SAR           float64             `json:"sar"`
	DAR           float64             `json:"dar"`
	DisplayWidth  int                 `json:"displayWidth"`
	DisplayHeight int                 `json:"displayHeight"`
	PixelFormat   string              `json:"pixelFormat,omitempty"`
	Title         string              `json:"title,omitempty"`
	Disposition   ffprobe.Disposition `json:"disposition"`
	Tags          Tags                `json:"tags"`
}

// AudioStream is an audio track.
type AudioStream struct {
	Codec       string              `json:"codec"`
	Channels    int                 `json:"channels"`
	Language    string              `json:"language,omitempty"`
	Title       string              `json:"title,omitempty"`
	Disposition ffprobe.Disposition `json:"disposition"`
	Tags        Tags                `json:"tags"`
}

// SubtitlesStream is a subtitle track.
type SubtitlesStream struct {
	Codec       string              `json:"codec"`
	Language    string              `json:"language,omitempty"`
	Title       string              `json:"title,omitempty"`
	Disposition ffprobe.Disposition `json:"disposition"`
	Tags        Tags                `json:"tags"`
}

func (*ImageStream) Kind() Kind     { return KindImage }
func (*VideoStream) Kind() Kind     { return KindVideo }
func (*AudioStream) Kind() Kind     { return KindAudio }
func (*SubtitlesStream) Kind() Kind { return KindSubtitles }

func (*ImageStream) isStream()     {}
func (*VideoStream) isStream()     {}
func (*AudioStream) isStream()     {}
func (*SubtitlesStream) isStream() {}

// Cover is an image stream embedded in an audio file, without its disposition.
type Cover struct {
	Codec         string  `json:"codec"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	SAR           float64 `json:"sar"`
	DAR           float64 `json:"dar"`
	DisplayWidth  int     `json:"displayWidth"`
	DisplayHeight int     `json:"displayHeight"`
	PixelFormat   string  `json:"pixelFormat,omitempty"`
	Title         string  `json:"title,omitempty"`
	Tags          Tags    `json:"tags"`
}

func coverFromImage(img *ImageStream) *Cover {
	if img == nil {
		return nil
	}
	return &Cover{
		Codec:         img.Codec,
		Width:         img.Width,
		Height:        img.Height,
		SAR:           img.SAR,
		DAR:           img.DAR,
		DisplayWidth:  img.DisplayWidth,
		DisplayHeight: img.DisplayHeight,
		PixelFormat:   img.PixelFormat,
		Title:         img.Title,
		Tags:          img.Tags.Clone(),
	}
}

// Metadata is the classified result of a probe: one of *ImageMetadata,
// *AudioMetadata or *VideoMetadata.
type Metadata interface {
	Kind() Kind
	CommonFields() Common
	isMetadata()
}

// Common holds the fields shared by every metadata variant. Tags is the
// merged tag set: the winning stream's tags overlaid by the container's.
type Common struct {
	Path      string
	Size      int64
	Codec     string
	Container string
	Tags      Tags
}

// CommonFields returns the shared fields.
func (c Common) CommonFields() Common { return c }

// ImageMetadata describes a still image file.
type ImageMetadata struct {
	Common
	Width         int
	Height        int
	SAR           float64
	DAR           float64
	DisplayWidth  int
	DisplayHeight int
	PixelFormat   string
}

// AudioMetadata describes an audio file. The optional descriptive fields are
// read from the merged tags and are empty when untagged.
type AudioMetadata struct {
	Common
	Channels    int
	DurationMs  float64
	Cover       *Cover
	Language    string
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	Genre       string
	Track       string
	Date        string
}

// VideoMetadata describes a video file and all of its streams.
type VideoMetadata struct {
	Common
	DurationMs       float64
	Framerate        float64
	Width            int
	Height           int
	SAR              float64
	DAR              float64
	DisplayWidth     int
	DisplayHeight    int
	PixelFormat      string
	Title            string
	Streams          []Stream
	VideoStreams     []*VideoStream
	AudioStreams     []*AudioStream
	SubtitlesStreams []*SubtitlesStream
}

func (*ImageMetadata) Kind() Kind { return KindImage }
func (*AudioMetadata) Kind() Kind { return KindAudio }
func (*VideoMetadata) Kind() Kind { return KindVideo }

func (*ImageMetadata) isMetadata() {}
func (*AudioMetadata) isMetadata() {}
func (*VideoMetadata) isMetadata() {}
