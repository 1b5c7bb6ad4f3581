// Package whisper runs the whisper CLI (via uvx) to transcribe extracted
// audio into SRT subtitles.
package whisper
