package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// mediaSignatures holds the leading bytes real files of each extension start
// with, so stub media looks plausible to tools that sniff content.
var mediaSignatures = map[string][]byte{
	".mkv":  {0x1a, 0x45, 0xdf, 0xa3},
	".webm": {0x1a, 0x45, 0xdf, 0xa3},
	".mp4":  []byte("\x00\x00\x00\x18ftypisom"),
	".m4a":  []byte("\x00\x00\x00\x18ftypM4A "),
	".mp3":  []byte("ID3\x04\x00"),
	".flac": []byte("fLaC"),
	".ogg":  []byte("OggS"),
	".wav":  []byte("RIFF\x00\x00\x00\x00WAVE"),
	".jpg":  {0xff, 0xd8, 0xff, 0xe0},
	".jpeg": {0xff, 0xd8, 0xff, 0xe0},
	".png":  []byte("\x89PNG\r\n\x1a\n"),
	".gif":  []byte("GIF89a"),
}

// MediaSignature returns the stub header written for path's extension, or
// nil when the extension is not a known media type.
func MediaSignature(path string) []byte {
	return mediaSignatures[strings.ToLower(filepath.Ext(path))]
}

// WriteMedia creates a stub media file of exactly size bytes: the container
// signature for the extension, zero padded. A size <= 0 writes a single byte.
// The signature is cut short when size is smaller than it.
func WriteMedia(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	header := MediaSignature(path)
	if int64(len(header)) > size {
		header = header[:size]
	}
	if err := os.WriteFile(path, header, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if err := os.Truncate(path, size); err != nil {
		t.Fatalf("pad %s: %v", path, err)
	}
}
