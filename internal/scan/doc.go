// Package scan probes every media file under a directory tree with a bounded
// number of concurrent ffprobe processes.
//
// A failed probe never stops the scan; it is reported in its Outcome so the
// caller can render or record it. Each run gets a session id and every probe
// a correlation id, both carried through the context into the metadata
// package's log lines.
package scan
