package main

import "embed"

// configFS holds the built-in configs, used when -config-dir is not set
//
//go:embed configs
var configFS embed.FS
