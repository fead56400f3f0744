package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIconFor(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{name: "archive", filename: "backup.zip", expected: "file_icons/archive.png"},
		{name: "tarball", filename: "backup.tar", expected: "file_icons/archive.png"},
		{name: "audio", filename: "song.mp3", expected: "file_icons/audio.png"},
		{name: "lossless audio", filename: "song.flac", expected: "file_icons/audio.png"},
		{name: "video", filename: "movie.mkv", expected: "file_icons/video.png"},
		{name: "document", filename: "report.pdf", expected: "file_icons/document.png"},
		{name: "spreadsheet", filename: "numbers.xlsx", expected: "file_icons/document.png"},
		{name: "uppercase extension", filename: "REPORT.PDF", expected: "file_icons/document.png"},
		{name: "unknown extension", filename: "data.xyz", expected: "file_icons/other.png"},
		{name: "no extension", filename: "README", expected: "file_icons/other.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IconFor(tt.filename))
		})
	}
}

func TestIsIconRef(t *testing.T) {
	assert.True(t, IsIconRef("file_icons/document.png"))
	assert.False(t, IsIconRef("previews/preview_abc_photo.jpg.jpg"))
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("photo.jpg"))
	assert.True(t, IsImage("photo.JPEG"))
	assert.True(t, IsImage("graphic.webp"))
	assert.False(t, IsImage("report.pdf"))
	assert.False(t, IsImage("noext"))
}
