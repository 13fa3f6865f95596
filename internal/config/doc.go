// Package config loads, validates, and defaults cadenza's TOML
// configuration.
package config
