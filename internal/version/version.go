package version

import "runtime"

var (
	AppName        = "embed-manager"
	AppDescription = "Discord bot for building, storing and sharing rich message embeds"

	// BuildDate is set via -ldflags at build time.
	BuildDate string

	GoVersion = runtime.Version()
)
