// Package preflight provides readiness checks for the ffprobe executable and
// the filesystem paths mediaprobe writes to.
//
// The CLI "mediaprobe status" command renders these results, and "scan
// --record" runs them before opening the catalog so a missing ffprobe or an
// unwritable catalog directory is reported once instead of per file.
package preflight
