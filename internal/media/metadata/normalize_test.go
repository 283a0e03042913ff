package metadata_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"mediaprobe/internal/media/ffprobe"
	"mediaprobe/internal/media/metadata"
)

func ptr[T any](v T) *T { return &v }

func videoStream(codec string, width, height float64, rate string) ffprobe.Stream {
	return ffprobe.Stream{
		CodecName:  codec,
		CodecType:  "video",
		Width:      ptr(width),
		Height:     ptr(height),
		RFrameRate: rate,
	}
}

func TestParseAspectRatio(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1:1", 1, true},
		{"60:71", 60.0 / 71, true},
		{"16/9", 16.0 / 9, true},
		{"2", 2, true},
		{"1.5:1", 1.5, true},
		{"0:1", 0, false},
		{"1:0", 0, false},
		{"", 0, false},
		{"N/A", 0, false},
		{"-4:3", 0, false},
		{"4:3:2", 0, false},
		{" 4:3", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := metadata.ParseAspectRatio(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseAspectRatio(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Fatalf("ParseAspectRatio(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeStreamsAspectDefaults(t *testing.T) {
	raw := videoStream("h264", 720, 480, "24000/1001")
	raw.SampleAspectRatio = ptr("garbage")

	streams, err := metadata.NormalizeStreams([]ffprobe.Stream{raw}, 60)
	if err != nil {
		t.Fatalf("NormalizeStreams: %v", err)
	}
	video, ok := streams[0].(*metadata.VideoStream)
	if !ok {
		t.Fatalf("expected video stream, got %T", streams[0])
	}
	if video.SAR != 1 {
		t.Fatalf("expected default sar 1, got %v", video.SAR)
	}
	if video.DAR != 720.0/480 {
		t.Fatalf("expected default dar width/height, got %v", video.DAR)
	}
	if math.Abs(video.Framerate-23.976) > 0.001 {
		t.Fatalf("framerate = %v", video.Framerate)
	}
}

func TestNormalizeStreamsDisplaySize(t *testing.T) {
	wide := videoStream("mpeg2video", 720, 480, "30000/1001")
	wide.SampleAspectRatio = ptr("32:27")
	tall := videoStream("mpeg2video", 720, 576, "25/1")
	tall.SampleAspectRatio = ptr("1:2")

	streams, err := metadata.NormalizeStreams([]ffprobe.Stream{wide, tall}, 60)
	if err != nil {
		t.Fatalf("NormalizeStreams: %v", err)
	}
	first := streams[0].(*metadata.VideoStream)
	if first.DisplayWidth != 853 || first.DisplayHeight != 480 {
		t.Fatalf("wide display size = %dx%d", first.DisplayWidth, first.DisplayHeight)
	}
	second := streams[1].(*metadata.VideoStream)
	if second.DisplayWidth != 720 || second.DisplayHeight != 1152 {
		t.Fatalf("tall display size = %dx%d", second.DisplayWidth, second.DisplayHeight)
	}
}

func TestNormalizeStreamsCodecSubstitution(t *testing.T) {
	channels := 2
	raw := []ffprobe.Stream{
		videoStream("mjpeg", 10, 10, "25/1"),
		{CodecName: "aac", CodecType: "audio", Channels: &channels},
	}
	streams, err := metadata.NormalizeStreams(raw, 0.04)
	if err != nil {
		t.Fatalf("NormalizeStreams: %v", err)
	}
	if got := streams[0].(*metadata.ImageStream).Codec; got != "jpeg" {
		t.Fatalf("mjpeg normalized to %q", got)
	}
	if got := streams[1].(*metadata.AudioStream).Codec; got != "aac" {
		t.Fatalf("aac normalized to %q", got)
	}
}

func TestNormalizeStreamsSingleFrameDetection(t *testing.T) {
	tests := []struct {
		name    string
		stream  ffprobe.Stream
		seconds float64
		want    metadata.Kind
	}{
		{"no duration", videoStream("png", 64, 64, "25/1"), 0, metadata.KindImage},
		{"one frame", videoStream("mjpeg", 64, 64, "25/1"), 0.04, metadata.KindImage},
		{"within tolerance", videoStream("mjpeg", 64, 64, "25/1"), 0.055, metadata.KindImage},
		{"two seconds", videoStream("h264", 64, 64, "25/1"), 2, metadata.KindVideo},
		{"attached picture", func() ffprobe.Stream {
			s := videoStream("mjpeg", 64, 64, "90000/1")
			s.Disposition.AttachedPic = 1
			return s
		}(), 180, metadata.KindImage},
		{"timed thumbnails", func() ffprobe.Stream {
			s := videoStream("mjpeg", 64, 64, "90000/1")
			s.Disposition.TimedThumbnails = 1
			return s
		}(), 180, metadata.KindImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streams, err := metadata.NormalizeStreams([]ffprobe.Stream{tt.stream}, tt.seconds)
			if err != nil {
				t.Fatalf("NormalizeStreams: %v", err)
			}
			if got := streams[0].Kind(); got != tt.want {
				t.Fatalf("kind = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNormalizeStreamsTags(t *testing.T) {
	raw := ffprobe.Stream{
		CodecName: "subrip",
		CodecType: "subtitle",
		Tags: map[string]any{
			"LANGUAGE": "eng",
			"Title":    "SDH",
			"COMMENTS": "from disc",
			"missing":  nil,
			"NUMBER":   float64(3),
		},
		Disposition: ffprobe.Disposition{HearingImpaired: 1},
	}
	streams, err := metadata.NormalizeStreams([]ffprobe.Stream{raw}, 10)
	if err != nil {
		t.Fatalf("NormalizeStreams: %v", err)
	}
	sub := streams[0].(*metadata.SubtitlesStream)
	if sub.Language != "eng" || sub.Title != "SDH" {
		t.Fatalf("unexpected language/title: %+v", sub)
	}
	if sub.Tags["comment"] != "from disc" || sub.Tags["comments"] != "from disc" {
		t.Fatalf("expected comments alias, got %v", sub.Tags)
	}
	if _, ok := sub.Tags["missing"]; ok {
		t.Fatalf("expected null tag dropped, got %v", sub.Tags)
	}
	if sub.Tags["number"] != "3" {
		t.Fatalf("expected numeric tag stringified, got %q", sub.Tags["number"])
	}
	if sub.Disposition.HearingImpaired != 1 {
		t.Fatal("expected disposition carried through")
	}
}

func TestNormalizeStreamsKeepsExistingComment(t *testing.T) {
	channels := 1
	raw := ffprobe.Stream{
		CodecName: "flac",
		CodecType: "audio",
		Channels:  &channels,
		Tags:      map[string]any{"comment": "primary", "comments": "secondary"},
	}
	streams, err := metadata.NormalizeStreams([]ffprobe.Stream{raw}, 10)
	if err != nil {
		t.Fatalf("NormalizeStreams: %v", err)
	}
	if got := streams[0].(*metadata.AudioStream).Tags["comment"]; got != "primary" {
		t.Fatalf("comment = %q", got)
	}
}

func TestNormalizeStreamsDropsUnknownTypes(t *testing.T) {
	channels := 2
	raw := []ffprobe.Stream{
		{CodecName: "bin_data", CodecType: "data"},
		{CodecName: "ttf", CodecType: "attachment"},
		{CodecName: "opus", CodecType: "audio", Channels: &channels},
	}
	streams, err := metadata.NormalizeStreams(raw, 10)
	if err != nil {
		t.Fatalf("NormalizeStreams: %v", err)
	}
	if len(streams) != 1 || streams[0].Kind() != metadata.KindAudio {
		t.Fatalf("expected only the audio stream, got %+v", streams)
	}
}

func TestNormalizeStreamsExtractionFailures(t *testing.T) {
	tests := []struct {
		name   string
		stream ffprobe.Stream
		field  string
	}{
		{"audio without channels", ffprobe.Stream{CodecName: "mp3", CodecType: "audio"}, "channels"},
		{"zero frame rate", videoStream("h264", 10, 10, "0/0"), "framerate"},
		{"missing frame rate", videoStream("h264", 10, 10, ""), "framerate"},
		{"bare frame rate", videoStream("h264", 10, 10, "25"), "framerate"},
		{"missing width", ffprobe.Stream{CodecName: "h264", CodecType: "video", RFrameRate: "25/1", Height: ptr(10.0)}, "width"},
		{"zero width", videoStream("h264", 0, 10, "25/1"), "width"},
		{"fractional height", videoStream("h264", 10, 10.5, "25/1"), "height"},
		{"missing both dimensions", ffprobe.Stream{CodecName: "h264", CodecType: "video", RFrameRate: "25/1"}, "width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := metadata.NormalizeStreams([]ffprobe.Stream{tt.stream}, 10)
			if !errors.Is(err, metadata.ErrStreamExtraction) || !errors.Is(err, metadata.ErrUnsupportedFormat) {
				t.Fatalf("expected stream extraction error, got %v", err)
			}
			if !strings.Contains(err.Error(), "couldn't extract "+tt.field) {
				t.Fatalf("expected field %q in error, got %v", tt.field, err)
			}
			if !strings.Contains(err.Error(), `"codec_name": "`+tt.stream.CodecName+`"`) {
				t.Fatalf("expected raw stream dump in error, got %v", err)
			}
		})
	}
}

func TestNormalizeStreamsCaseCollisionLastWins(t *testing.T) {
	payloads := map[string]string{
		"upper last": `{"streams": [{"codec_name": "subrip", "codec_type": "subtitle", "tags": {"title": "lower", "TITLE": "upper"}}], "format": {}}`,
		"lower last": `{"streams": [{"codec_name": "subrip", "codec_type": "subtitle", "tags": {"TITLE": "upper", "title": "lower"}}], "format": {}}`,
	}
	want := map[string]string{"upper last": "upper", "lower last": "lower"}
	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			result, err := ffprobe.Parse([]byte(payload))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			for range 20 {
				streams, err := metadata.NormalizeStreams(result.Streams, 10)
				if err != nil {
					t.Fatalf("NormalizeStreams: %v", err)
				}
				if got := streams[0].(*metadata.SubtitlesStream).Title; got != want[name] {
					t.Fatalf("title = %q, want %q", got, want[name])
				}
			}
		})
	}
}

func TestExtractionErrorCarriesFullStream(t *testing.T) {
	result, err := ffprobe.Parse([]byte(`{"streams": [{"codec_name": "mp3", "codec_type": "audio", "time_base": "1/44100", "nb_frames": "812"}], "format": {"duration": "1"}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = metadata.NormalizeStreams(result.Streams, 1)
	if !errors.Is(err, metadata.ErrStreamExtraction) {
		t.Fatalf("expected stream extraction error, got %v", err)
	}
	for _, want := range []string{`"time_base": "1/44100"`, `"nb_frames": "812"`} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %s in error, got %v", want, err)
		}
	}
}
