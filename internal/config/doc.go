// Package config loads, normalizes, and validates mediaprobe configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the FFPROBE_PATH environment
// fallback. The Config type centralizes every knob the CLI needs: which
// ffprobe to run, where the catalog lives, and which files a scan picks up.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
