package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nodewee/doc-to-json/pkg/constants"
)

// PathUtils provides cross-platform path utilities
type PathUtils struct{}

// DefaultPathUtils is the shared instance used by config and core
var DefaultPathUtils = &PathUtils{}

// NormalizePath cleans a path and upper-cases Windows drive letters
func (p *PathUtils) NormalizePath(path string) string {
	cleaned := filepath.Clean(path)

	if constants.IsWindows() && len(cleaned) >= 2 && cleaned[1] == ':' {
		if cleaned[0] >= 'a' && cleaned[0] <= 'z' {
			cleaned = strings.ToUpper(string(cleaned[0])) + cleaned[1:]
		}
	}

	return cleaned
}

// EnsureDir creates a directory and its parents if missing
func (p *PathUtils) EnsureDir(dirPath string) error {
	return os.MkdirAll(p.NormalizePath(dirPath), constants.DefaultDirPermission)
}

// IsExecutable checks if a file is executable on the current platform
func (p *PathUtils) IsExecutable(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil || info.IsDir() {
		return false
	}

	if constants.IsWindows() {
		ext := strings.ToLower(filepath.Ext(filePath))
		return ext == ".exe" || ext == ".bat" || ext == ".cmd"
	}
	return info.Mode()&0111 != 0
}

// ExpandHome replaces a leading ~ with the user's home directory
func (p *PathUtils) ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", WrapError(err, ErrorTypeIO, "failed to get user home directory")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// NormalizePath cleans a path using DefaultPathUtils
func NormalizePath(path string) string {
	return DefaultPathUtils.NormalizePath(path)
}

// EnsureDir creates a directory using DefaultPathUtils
func EnsureDir(dirPath string) error {
	return DefaultPathUtils.EnsureDir(dirPath)
}
