// Package language normalizes language identifiers for the transcription and
// translation tools, which disagree about 2-letter vs 3-letter codes.
package language
