// Package catalog persists probe outcomes in a SQLite database.
//
// Each probed path has at most one row holding the summary columns the CLI
// lists and filters on, plus the full metadata JSON for "catalog show".
// Failed probes are kept with kind "error" so a later scan can report them
// without re-running ffprobe. The catalog is a record of past scans only;
// metadata.Probe never reads from it.
//
// Writers take an advisory file lock beside the database (see AcquireWriter)
// so two concurrent "scan --record" runs do not interleave their results.
package catalog
