package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"mediaprobe/internal/testsupport"
)

func TestProbeJSON(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.VideoWebMProbe)
	path := env.media(t, "clip.webm", 4096)

	out, _, err := runCLI(t, []string{"probe", "--json", path}, env.configPath)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(out), &record); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if record["type"] != "video" || record["path"] != path {
		t.Fatalf("unexpected record: %v", record)
	}
	if record["duration"] != 10875.0 || record["size"] != 4096.0 {
		t.Fatalf("unexpected duration/size: %v %v", record["duration"], record["size"])
	}
	if record["title"] != "test title" {
		t.Fatalf("expected container title tag, got %v", record["title"])
	}
	streams, ok := record["streams"].([]any)
	if !ok || len(streams) != 3 {
		t.Fatalf("expected 3 streams, got %v", record["streams"])
	}
}

func TestProbeUsesFFprobeFlag(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.VideoWebMProbe)
	path := env.media(t, "cover.jpg", 10)
	image := testsupport.WriteFakeFFprobe(t, testsupport.FakeFFprobe{Stdout: testsupport.ImageJPEGProbe})

	out, _, err := runCLI(t, []string{"probe", "--ffprobe", image, path}, env.configPath)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	requireContains(t, out, `"type": "image"`)
	if args := testsupport.ReadArgs(t, image); args[len(args)-1] != path {
		t.Fatalf("expected override binary to receive the path, got %q", args)
	}
}

func TestProbeMultipleFilesReportsFailures(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.AudioMP3Probe)
	song := env.media(t, "song.mp3", 100)
	missing := filepath.Join(env.mediaDir, "missing.mp3")

	out, stderr, err := runCLI(t, []string{"probe", song, missing}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 files") {
		t.Fatalf("expected partial failure, got %v", err)
	}
	requireContains(t, stderr, missing)

	var records []map[string]any
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(records) != 1 || records[0]["type"] != "audio" || records[0]["artist"] != "test artist" {
		t.Fatalf("unexpected records: %v", records)
	}
}

func TestProbeSingleFailure(t *testing.T) {
	env := setupCLITestEnv(t, `{"streams": [], "format": {"duration": "1"}}`)
	path := env.media(t, "notes.bin", 10)

	out, stderr, err := runCLI(t, []string{"probe", path}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "probe failed for "+path) {
		t.Fatalf("expected probe failure, got %v", err)
	}
	if out != "" {
		t.Fatalf("expected no stdout, got %q", out)
	}
	requireContains(t, stderr, "unable to categorize")
}

func TestProbeRequiresArgs(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.ImageJPEGProbe)
	if _, _, err := runCLI(t, []string{"probe"}, env.configPath); err == nil {
		t.Fatal("expected error without file arguments")
	}
}
