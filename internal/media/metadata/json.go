package metadata

import "encoding/json"

// Flatten renders a metadata record as a single flat object. Tags are
// written first and the structural fields last, so a tag never shadows a
// structural field of the same name.
func Flatten(m Metadata) map[string]any {
	common := m.CommonFields()
	record := make(map[string]any, len(common.Tags)+16)
	for key, value := range common.Tags {
		record[key] = value
	}

	record["path"] = common.Path
	record["type"] = string(m.Kind())
	record["size"] = common.Size
	record["codec"] = common.Codec
	record["container"] = common.Container

	switch meta := m.(type) {
	case *ImageMetadata:
		record["width"] = meta.Width
		record["height"] = meta.Height
		record["sar"] = meta.SAR
		record["dar"] = meta.DAR
		record["displayWidth"] = meta.DisplayWidth
		record["displayHeight"] = meta.DisplayHeight
		if meta.PixelFormat != "" {
			record["pixelFormat"] = meta.PixelFormat
		}
	case *AudioMetadata:
		record["channels"] = meta.Channels
		record["duration"] = meta.DurationMs
		if meta.Cover != nil {
			record["cover"] = meta.Cover
		}
	case *VideoMetadata:
		record["duration"] = meta.DurationMs
		record["framerate"] = meta.Framerate
		record["width"] = meta.Width
		record["height"] = meta.Height
		record["sar"] = meta.SAR
		record["dar"] = meta.DAR
		record["displayWidth"] = meta.DisplayWidth
		record["displayHeight"] = meta.DisplayHeight
		if meta.PixelFormat != "" {
			record["pixelFormat"] = meta.PixelFormat
		}
		record["streams"] = nonNil(meta.Streams)
		record["videoStreams"] = nonNil(meta.VideoStreams)
		record["audioStreams"] = nonNil(meta.AudioStreams)
		record["subtitlesStreams"] = nonNil(meta.SubtitlesStreams)
	}
	return record
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func (m *ImageMetadata) MarshalJSON() ([]byte, error) { return json.Marshal(Flatten(m)) }
func (m *AudioMetadata) MarshalJSON() ([]byte, error) { return json.Marshal(Flatten(m)) }
func (m *VideoMetadata) MarshalJSON() ([]byte, error) { return json.Marshal(Flatten(m)) }

func (s *ImageStream) MarshalJSON() ([]byte, error) {
	type plain ImageStream
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*plain
	}{KindImage, (*plain)(s)})
}

func (s *VideoStream) MarshalJSON() ([]byte, error) {
	type plain VideoStream
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*plain
	}{KindVideo, (*plain)(s)})
}

func (s *AudioStream) MarshalJSON() ([]byte, error) {
	type plain AudioStream
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*plain
	}{KindAudio, (*plain)(s)})
}

func (s *SubtitlesStream) MarshalJSON() ([]byte, error) {
	type plain SubtitlesStream
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*plain
	}{KindSubtitles, (*plain)(s)})
}

func (c *Cover) MarshalJSON() ([]byte, error) {
	type plain Cover
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*plain
	}{KindImage, (*plain)(c)})
}
