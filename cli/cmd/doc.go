// Package cmd provides the check, generate, dump, and init subcommands.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the default configuration file.
	ConfigIdentifier = "config"

	// PlatformIdentifier is the kong variable identifier containing the
	// comma-separated list of supported target platforms.
	PlatformIdentifier = "platforms"
)
