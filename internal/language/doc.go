// Package language maps the language codes ffprobe reports in stream tags to
// ISO 639 codes and human-readable names.
package language
