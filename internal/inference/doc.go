// Package inference correlates externally produced voice classification
// verdicts with the queued item they target. Orphan verdicts (no matching
// stored name) are accepted and discarded silently; the verdict producer is
// never told whether its target still exists.
package inference
