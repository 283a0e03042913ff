package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mediaprobe/internal/catalog"
	"mediaprobe/internal/testsupport"
)

func TestScanRecordsOutcomesInCatalog(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.VideoWebMProbe)
	first := env.media(t, "a/clip.mkv", 100)
	second := env.media(t, "b/other.webm", 200)
	env.media(t, "b/readme.txt", 5)
	env.media(t, ".cache/hidden.mkv", 5)

	out, _, err := runCLI(t, []string{"scan", "--record", "--json", env.mediaDir}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	var report scanReportJSON
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if report.Total != 2 || report.Failed != 0 || report.ByType["video"] != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.SessionID == "" || report.Files[0].Path != first || report.Files[1].Path != second {
		t.Fatalf("unexpected files: %+v", report.Files)
	}

	out, _, err = runCLI(t, []string{"catalog", "list", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	var entries []entryJSON
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode entries: %v\n%s", err, out)
	}
	if len(entries) != 2 || entries[0].Path != first || entries[0].Type != "video" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if entries[0].RequestID != report.Files[0].RequestID {
		t.Fatalf("expected request id %q to be recorded, got %q", report.Files[0].RequestID, entries[0].RequestID)
	}

	out, _, err = runCLI(t, []string{"catalog", "show", "--json", first}, env.configPath)
	if err != nil {
		t.Fatalf("catalog show: %v", err)
	}
	var shown struct {
		Metadata map[string]any `json:"metadata"`
	}
	if err := json.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("decode show: %v\n%s", err, out)
	}
	if shown.Metadata["path"] != first || shown.Metadata["type"] != "video" {
		t.Fatalf("unexpected recorded metadata: %v", shown.Metadata)
	}
	if shown.Metadata["container"] != "matroska,webm" {
		t.Fatalf("expected verbatim format name as container, got %v", shown.Metadata["container"])
	}

	out, _, err = runCLI(t, []string{"catalog", "remove", first}, env.configPath)
	if err != nil {
		t.Fatalf("catalog remove: %v", err)
	}
	requireContains(t, out, "Removed "+first)

	_, _, err = runCLI(t, []string{"catalog", "show", first}, env.configPath)
	if !errors.Is(err, errNoEntry) {
		t.Fatalf("expected missing entry after removal, got %v", err)
	}
	_, _, err = runCLI(t, []string{"catalog", "remove", first}, env.configPath)
	if !errors.Is(err, errNoEntry) {
		t.Fatalf("expected missing entry on second removal, got %v", err)
	}
}

func TestScanRecordsFailures(t *testing.T) {
	env := setupCLITestEnv(t, `{"streams": [], "format": {"duration": "1"}}`)
	path := env.media(t, "broken.mkv", 10)

	out, _, err := runCLI(t, []string{"scan", "--record", env.mediaDir}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, `"failed": 1`)

	out, _, err = runCLI(t, []string{"catalog", "list", "--type", "error"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	var entries []entryJSON
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode entries: %v\n%s", err, out)
	}
	if len(entries) != 1 || entries[0].Path != path || !strings.Contains(entries[0].Error, "unable to categorize") {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if entries[0].Metadata != nil {
		t.Fatalf("expected no payload for failed probe, got %s", entries[0].Metadata)
	}
}

func TestScanWithoutRecordLeavesCatalogUntouched(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.ImageJPEGProbe)
	env.media(t, "cover.jpg", 10)

	if _, _, err := runCLI(t, []string{"scan", "--workers", "1", env.mediaDir}, env.configPath); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if _, err := os.Stat(env.cfg.Catalog.Path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no catalog file, stat returned %v", err)
	}
}

func TestScanRecordRefusesConcurrentWriter(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.ImageJPEGProbe)
	env.media(t, "cover.jpg", 10)

	store := testsupport.MustOpenCatalog(t, env.cfg)
	lock, err := store.AcquireWriter()
	if err != nil {
		t.Fatalf("AcquireWriter: %v", err)
	}
	defer lock.Release()

	_, _, err = runCLI(t, []string{"scan", "--record", env.mediaDir}, env.configPath)
	if !errors.Is(err, catalog.ErrWriterBusy) {
		t.Fatalf("expected writer busy error, got %v", err)
	}
}

func TestScanFailsPreflightWithoutFFprobe(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.ImageJPEGProbe)
	env.cfg.FFprobe.Binary = filepath.Join(t.TempDir(), "missing-ffprobe")
	writeTestConfig(t, env.configPath, env.cfg)

	_, _, err := runCLI(t, []string{"scan", env.mediaDir}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "preflight failed: FFprobe") {
		t.Fatalf("expected preflight failure, got %v", err)
	}
}
