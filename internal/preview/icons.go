package preview

import (
	"path/filepath"
	"strings"
)

// IconPrefix marks preview references that resolve against the shared static
// icon set instead of the owner's directory.
const IconPrefix = "file_icons/"

const defaultIcon = "other.png"

var iconByExt = map[string]string{
	// Archives
	".zip": "archive.png",
	".rar": "archive.png",
	".7z":  "archive.png",
	".tar": "archive.png",
	".gz":  "archive.png",
	".bz2": "archive.png",
	// Audio
	".mp3":  "audio.png",
	".wav":  "audio.png",
	".ogg":  "audio.png",
	".flac": "audio.png",
	".aac":  "audio.png",
	".m4a":  "audio.png",
	// Video
	".mp4": "video.png",
	".avi": "video.png",
	".mov": "video.png",
	".mkv": "video.png",
	".wmv": "video.png",
	".flv": "video.png",
	// Documents
	".pdf":  "document.png",
	".doc":  "document.png",
	".docx": "document.png",
	".txt":  "document.png",
	".rtf":  "document.png",
	".xls":  "document.png",
	".xlsx": "document.png",
	".ppt":  "document.png",
	".pptx": "document.png",
}

// IconFor returns the category icon reference for a non-image file, falling
// back to a generic icon for unrecognized extensions. It never fails.
func IconFor(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	icon, ok := iconByExt[ext]
	if !ok {
		icon = defaultIcon
	}
	return IconPrefix + icon
}

// IsIconRef reports whether a preview reference denotes a shared static icon.
func IsIconRef(ref string) bool {
	return strings.HasPrefix(ref, IconPrefix)
}
