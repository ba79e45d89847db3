package constants

import (
	"runtime"
)

// PlatformConfig lists where external tools are usually installed
type PlatformConfig struct {
	TesseractPaths []string
}

// GetPlatformConfig returns platform-specific configuration
func GetPlatformConfig() *PlatformConfig {
	switch runtime.GOOS {
	case "windows":
		return &PlatformConfig{
			TesseractPaths: []string{
				DefaultTesseractBinary + ".exe",
				"C:\\Program Files\\Tesseract-OCR\\tesseract.exe",
				"C:\\Program Files (x86)\\Tesseract-OCR\\tesseract.exe",
				"C:\\ProgramData\\chocolatey\\bin\\tesseract.exe",
			},
		}
	case "darwin":
		return &PlatformConfig{
			TesseractPaths: []string{
				DefaultTesseractBinary,
				"/opt/homebrew/bin/tesseract",
				"/usr/local/bin/tesseract",
				"/opt/local/bin/tesseract",
			},
		}
	default: // Linux and other Unix-like systems
		return &PlatformConfig{
			TesseractPaths: []string{
				DefaultTesseractBinary,
				"/usr/local/bin/tesseract",
				"/usr/bin/tesseract",
				"/snap/bin/tesseract",
			},
		}
	}
}

// IsWindows returns true if running on Windows
func IsWindows() bool {
	return runtime.GOOS == "windows"
}
