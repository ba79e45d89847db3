package cmd

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/nodewee/doc-to-json/pkg/constants"
	"github.com/nodewee/doc-to-json/pkg/utils"

	"github.com/spf13/cobra"
)

// Version information variables - set by main.go
var (
	version   = "dev"
	gitCommit = "none"
	buildTime = "unknown"
	buildBy   = "unknown"
)

// SetVersionInfo sets the version information from main.go
func SetVersionInfo(v, commit, buildTimeParam, buildByParam string) {
	version = v
	gitCommit = commit
	buildTime = buildTimeParam
	buildBy = buildByParam
}

// GetVersionInfo returns the current version information
func GetVersionInfo() (string, string, string, string) {
	return version, gitCommit, buildTime, buildBy
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		showVersionInfo(cmd.OutOrStdout())
	},
}

// showVersionInfo displays build, runtime and format support information
func showVersionInfo(w io.Writer) {
	fmt.Fprintf(w, "%s\n", constants.AppName)
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", len(constants.AppName)))

	fmt.Fprintf(w, "Version Information:\n")
	fmt.Fprintf(w, "  Version:     %s\n", version)
	fmt.Fprintf(w, "  Git Commit:  %s\n", gitCommit)
	fmt.Fprintf(w, "  Build Time:  %s\n", buildTime)
	fmt.Fprintf(w, "  Built By:    %s\n", buildBy)
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "Runtime Information:\n")
	fmt.Fprintf(w, "  Go Version:  %s\n", runtime.Version())
	fmt.Fprintf(w, "  OS/Arch:     %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "Supported Extensions: %v\n", utils.SupportedExtensions())
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
