// Package ytdlp wraps the yt-dlp binary for downloading source videos.
package ytdlp
