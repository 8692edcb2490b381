// Package cli defines the Cobra command tree for the mlffkit CLI. Each file
// in this package registers one top-level command (new, check, layout, etc.)
// with the root command. Command implementations delegate to internal packages
// for the actual work and only handle flag parsing and output formatting.
package cli
