// Package ffmpeg wraps the external ffmpeg binary behind a narrow client
// interface. The transcoder is a black box to the rest of the system: it is
// given an input file and an output path and either produces canonical wav
// audio or fails.
package ffmpeg
