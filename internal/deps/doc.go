// Package deps resolves and checks the external executables mediaprobe
// shells out to. Today that is only ffprobe.
package deps
