// Package api defines the transport-facing data shapes and the pure
// projection from internal queue items to the polling client's view.
package api
