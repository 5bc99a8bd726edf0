// Package daemon coordinates the long-running voicegate process.
//
// It wires configuration, the queue store, the normalizer, and the verdict
// correlator into a single lifecycle with flock-based locking to prevent
// multiple instances, and owns the HTTP surface clients poll. Orchestration
// logic lives here; the pipeline steps themselves live in their respective
// packages.
package daemon
