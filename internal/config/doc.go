// Package config loads, normalizes, and validates reelcast configuration.
//
// Configuration comes from a TOML file (default ~/.config/reelcast/config.toml
// or ./reelcast.toml) merged over built-in defaults. Paths are ~-expanded and
// made absolute during normalization. A run never mutates shared configuration:
// the CLI clones a snapshot per run and applies command-line overrides to the
// copy only.
package config
