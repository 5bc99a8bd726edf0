// Package main hosts the voicegate CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into HTTP
// calls against the daemon's API: queue inspection, verdict submission,
// manual uploads, and daemon status. It centralizes configuration
// resolution and address discovery so subcommands can focus on output.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
