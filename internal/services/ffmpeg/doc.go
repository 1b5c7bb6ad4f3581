// Package ffmpeg wraps the ffmpeg binary for the pipeline's media
// transformations: concatenation, splitting, watermarking, subtitle burning,
// and audio extraction for transcription.
package ffmpeg
