package wallshift

import _ "embed"

// Version is the release version, stamped at build time via -ldflags.
var Version = "dev"

//go:embed default_config.toml
var DefaultConfig string
