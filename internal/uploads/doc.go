// Package uploads owns upload acceptance: the extension allow-set check
// that gates storage writes, stored-name generation for artifacts on disk,
// and display-title derivation for operator output.
package uploads
