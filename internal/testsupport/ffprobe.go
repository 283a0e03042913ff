package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FakeFFprobe describes the behaviour of a stub ffprobe executable.
type FakeFFprobe struct {
	// Version, when set, is printed instead of Stdout for "-version" calls.
	Version  string
	Stdout   string
	Stderr   string
	ExitCode int
}

// WriteFakeFFprobe writes a shell script that mimics ffprobe and returns its
// path. Every invocation appends its arguments, one per line, to the file
// returned by ArgsLog.
func WriteFakeFFprobe(t testing.TB, fake FakeFFprobe) string {
	t.Helper()

	dir := t.TempDir()
	target := filepath.Join(dir, "ffprobe")
	argsLog := ArgsLog(target)

	var script strings.Builder
	script.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&script, "printf '%%s\\n' \"$@\" >> '%s'\n", argsLog)
	if fake.Version != "" {
		script.WriteString("case \" $* \" in *\" -version \"*)\n")
		script.WriteString("cat <<'MEDIAPROBE_VERSION'\n")
		script.WriteString(fake.Version)
		script.WriteString("\nMEDIAPROBE_VERSION\nexit 0;;\nesac\n")
	}
	if fake.Stdout != "" {
		script.WriteString("cat <<'MEDIAPROBE_STDOUT'\n")
		script.WriteString(fake.Stdout)
		script.WriteString("\nMEDIAPROBE_STDOUT\n")
	}
	if fake.Stderr != "" {
		script.WriteString("cat >&2 <<'MEDIAPROBE_STDERR'\n")
		script.WriteString(fake.Stderr)
		script.WriteString("\nMEDIAPROBE_STDERR\n")
	}
	fmt.Fprintf(&script, "exit %d\n", fake.ExitCode)

	if err := os.WriteFile(target, []byte(script.String()), 0o755); err != nil {
		t.Fatalf("write fake ffprobe: %v", err)
	}
	return target
}

// ArgsLog returns the file a fake ffprobe records its arguments in.
func ArgsLog(binary string) string {
	return binary + ".args"
}

// ReadArgs returns the arguments recorded by the fake ffprobe at binary.
func ReadArgs(t testing.TB, binary string) []string {
	t.Helper()

	data, err := os.ReadFile(ArgsLog(binary))
	if err != nil {
		t.Fatalf("read fake ffprobe args: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}
