package component

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveAssetPath locates an image file: an absolute path that exists
// wins, then the path relative to the working directory, then each asset
// directory in order. Returns "" when nothing matches.
func ResolveAssetPath(path string, assetDirs []string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		if fileExists(path) {
			return path
		}
		return ""
	}
	if fileExists(path) {
		return path
	}
	for _, dir := range assetDirs {
		candidate := filepath.Join(dir, path)
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// imageMIME maps a file extension to the content type the document
// embeds. PNG is the default.
func imageMIME(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	default:
		return "image/png"
	}
}
