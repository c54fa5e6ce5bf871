package config

// RunOptions is the per-run options record assembled once from flags and
// config, then passed by value into the engines. Engines never reach back
// into package-level state; everything a run needs travels in this struct.
type RunOptions struct {
	// VaultPath is the absolute root of the vault being processed.
	VaultPath string

	// DryRun reports intent without writing.
	DryRun bool

	// Backup snapshots each file before its first write.
	Backup bool

	// Verbose enables per-file debug logging.
	Verbose bool

	// ExcludeDirs are directory names pruned from every walk.
	ExcludeDirs []string

	// MaxFileSizeKB skips files over this size when positive.
	MaxFileSizeKB int

	// StartAt skips the first N candidate files when positive.
	StartAt int

	// MaxFiles bounds how many candidates are processed when positive.
	MaxFiles int
}
