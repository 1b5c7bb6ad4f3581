// Package translate renders subtitle text into a target language using the
// public Google translate endpoint, preserving SRT structure.
package translate
