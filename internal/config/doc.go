// Package config loads, normalizes, and validates voicegate configuration.
//
// Configuration is TOML with a fixed search order: an explicit path, then
// ~/.config/voicegate/config.toml, then ./voicegate.toml. Defaults cover every
// field so the daemon runs without a config file. Path fields are expanded
// (~ and relative segments) during normalization, and the PORT environment
// variable overrides the configured listen port to match common deployment
// conventions.
package config
