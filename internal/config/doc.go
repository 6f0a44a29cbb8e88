// Package config loads, validates and live-reloads runpad settings.
//
// Settings are layered in a fixed order: built-in defaults, then the
// config file (TOML or YAML, chosen by extension), then environment
// variables prefixed with RUNPAD_. Later layers override earlier ones key
// by key. The merged result is validated before it replaces the current
// settings, so an invalid reload leaves the previous settings in effect.
//
// Example config.toml:
//
//	[editor]
//	tabWidth = 4
//	wordWrap = true
//
//	[view]
//	fontSize = 14
//	theme = "dark"
//
//	[run]
//	interpreter = "python3"
//	args = ["-c"]
//	timeout = "30s"
package config
