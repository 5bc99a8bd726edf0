// Package normalize converts stored uploads into the canonical audio format.
//
// Already-canonical input (.wav) passes through unchanged. Other accepted
// containers are handed to the external ffmpeg collaborator, which strips
// any video stream and writes wav audio next to the original. Conversion is
// the only suspension point in an upload's lifecycle; the caller awaits its
// terminal outcome before touching the queue. A failed conversion leaves the
// stored original on disk unreferenced, matching the system's accepted-leak
// policy.
package normalize
