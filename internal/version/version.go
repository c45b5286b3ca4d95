// Package version carries the CLI version string. It is overridden at
// release build time with -ldflags "-X ...version.Version=...".
package version

var Version = "0.1.0-dev"
