package metadata_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"mediaprobe/internal/deps"
	"mediaprobe/internal/logging"
	"mediaprobe/internal/media/metadata"
	"mediaprobe/internal/testsupport"
)

func TestProbeEndToEnd(t *testing.T) {
	tests := []struct {
		name    string
		fixture string
		file    string
		want    metadata.Kind
	}{
		{"image", testsupport.ImageJPEGProbe, "image.jpg", metadata.KindImage},
		{"mp3", testsupport.AudioMP3Probe, "audio.mp3", metadata.KindAudio},
		{"ogg", testsupport.AudioOggProbe, "audio.ogg", metadata.KindAudio},
		{"webm", testsupport.VideoWebMProbe, "video.webm", metadata.KindVideo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			binary := testsupport.WriteFakeFFprobe(t, testsupport.FakeFFprobe{Stdout: tt.fixture})
			path := filepath.Join(t.TempDir(), tt.file)
			testsupport.WriteMedia(t, path, 2048)

			meta, err := metadata.Probe(context.Background(), path, metadata.WithFFprobePath(binary))
			if err != nil {
				t.Fatalf("Probe: %v", err)
			}
			if meta.Kind() != tt.want {
				t.Fatalf("kind = %s, want %s", meta.Kind(), tt.want)
			}
			common := meta.CommonFields()
			if common.Path != path {
				t.Fatalf("path = %q, want %q", common.Path, path)
			}
			if common.Size != 2048 {
				t.Fatalf("size = %d, want on-disk size 2048", common.Size)
			}
		})
	}
}

func TestProbeUsesEnvironmentBinary(t *testing.T) {
	binary := testsupport.WriteFakeFFprobe(t, testsupport.FakeFFprobe{Stdout: testsupport.ImageJPEGProbe})
	t.Setenv(deps.FFprobeEnv, binary)
	path := filepath.Join(t.TempDir(), "image.jpg")
	testsupport.WriteMedia(t, path, 10)

	meta, err := metadata.Probe(context.Background(), path)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if meta.Kind() != metadata.KindImage {
		t.Fatalf("kind = %s", meta.Kind())
	}
	args := testsupport.ReadArgs(t, binary)
	if args[len(args)-1] != path {
		t.Fatalf("expected absolute path as last argument, got %q", args)
	}
}

func TestProbeRelativePathIsResolved(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	binary := testsupport.WriteFakeFFprobe(t, testsupport.FakeFFprobe{Stdout: testsupport.ImageJPEGProbe})
	testsupport.WriteMedia(t, filepath.Join(dir, "image.jpg"), 10)

	meta, err := metadata.Probe(context.Background(), "image.jpg", metadata.WithFFprobePath(binary))
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if !filepath.IsAbs(meta.CommonFields().Path) {
		t.Fatalf("expected absolute path, got %q", meta.CommonFields().Path)
	}
}

func TestProbeFailures(t *testing.T) {
	media := filepath.Join(t.TempDir(), "clip.mp4")
	testsupport.WriteMedia(t, media, 10)

	tests := []struct {
		name   string
		fake   testsupport.FakeFFprobe
		path   string
		target error
	}{
		{"stderr", testsupport.FakeFFprobe{Stderr: "Invalid data found when processing input"}, media, metadata.ErrUnsupportedFormat},
		{"missing file", testsupport.FakeFFprobe{Stdout: testsupport.ImageJPEGProbe}, filepath.Join(t.TempDir(), "gone.mp4"), metadata.ErrUnsupportedFormat},
		{"invalid shape", testsupport.FakeFFprobe{Stdout: `{"streams": 3, "format": {}}`}, media, metadata.ErrUnsupportedFormat},
		{"missing channels", testsupport.FakeFFprobe{Stdout: `{"streams": [{"codec_type": "audio", "codec_name": "mp3"}], "format": {"duration": "1"}}`}, media, metadata.ErrStreamExtraction},
		{"zero duration audio", testsupport.FakeFFprobe{Stdout: `{"streams": [{"codec_type": "audio", "codec_name": "mp3", "channels": 2}], "format": {"duration": "0"}}`}, media, metadata.ErrInvalidDuration},
		{"uncategorized", testsupport.FakeFFprobe{Stdout: `{"streams": [], "format": {"duration": "1"}}`}, media, metadata.ErrUncategorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			binary := testsupport.WriteFakeFFprobe(t, tt.fake)
			meta, err := metadata.Probe(context.Background(), tt.path, metadata.WithFFprobePath(binary))
			if meta != nil {
				t.Fatalf("expected no metadata on failure, got %+v", meta)
			}
			if !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}
			if !strings.Contains(err.Error(), "probe ") {
				t.Fatalf("expected path context in error, got %v", err)
			}
		})
	}
}

func TestProbeKeepsCallerRequestID(t *testing.T) {
	binary := testsupport.WriteFakeFFprobe(t, testsupport.FakeFFprobe{Stdout: testsupport.ImageJPEGProbe})
	path := filepath.Join(t.TempDir(), "image.jpg")
	testsupport.WriteMedia(t, path, 10)

	logPath := filepath.Join(t.TempDir(), "probe.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	ctx := logging.WithRequestID(context.Background(), "caller-request")
	if _, err := metadata.Probe(ctx, path, metadata.WithFFprobePath(binary), metadata.WithLogger(logger)); err != nil {
		t.Fatalf("Probe: %v", err)
	}

	content := readLog(t, logPath)
	if !strings.Contains(content, `"correlation_id":"caller-request"`) || !strings.Contains(content, `"component":"metadata"`) {
		t.Fatalf("expected correlated debug log, got %s", content)
	}
}

func TestProbeConcurrentCalls(t *testing.T) {
	binary := testsupport.WriteFakeFFprobe(t, testsupport.FakeFFprobe{Stdout: testsupport.VideoWebMProbe})
	dir := t.TempDir()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		path := filepath.Join(dir, string(rune('a'+i))+".webm")
		testsupport.WriteMedia(t, path, int64(100+i))
		wg.Add(1)
		go func() {
			defer wg.Done()
			meta, err := metadata.Probe(context.Background(), path, metadata.WithFFprobePath(binary))
			if err == nil && meta.CommonFields().Path != path {
				err = errors.New("result path mismatch")
			}
			errs[i] = err
		}()
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(data)
}
