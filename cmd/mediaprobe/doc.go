// Package main hosts the mediaprobe CLI entrypoint and command graph.
//
// The Cobra-based command tree probes individual files, scans directory
// trees with a bounded worker pool, records outcomes in the SQLite catalog,
// and scaffolds configuration. It centralizes configuration resolution and
// structured logging setup so subcommands only deal with presentation.
//
// Keep this package lean: classification lives in internal/media, and the
// commands here only choose between human tables and JSON output.
package main
