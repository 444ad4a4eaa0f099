package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// These variables will be set during the build using ldflags
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildTime    = "unknown"
)

var shortOutput bool

// formattedBuildTime returns the build time in a readable format
func formattedBuildTime() string {
	if t, err := time.Parse(time.RFC3339, buildTime); err == nil {
		return t.Format("2006-01-02 15:04:05 MST")
	}
	return buildTime
}

// displayVersion returns a formatted version string. Dev builds show the
// last release tag when git can find one.
func displayVersion() string {
	if buildVersion != "dev" {
		return buildVersion
	}

	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err == nil {
		if tag := strings.TrimSpace(string(out)); tag != "" {
			return fmt.Sprintf("dev (last release %s)", tag)
		}
	}
	return "dev"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if shortOutput {
			// For short output, just show the raw buildVersion for scripts
			fmt.Println(buildVersion)
			return
		}

		label := color.New(color.FgWhite)
		versionColor := color.New(color.FgCyan, color.Bold)
		buildColor := color.New(color.FgYellow)
		commitColor := color.New(color.FgGreen)
		platformColor := color.New(color.FgMagenta)
		pathColor := color.New(color.FgBlue)

		label.Printf("Version: ")
		versionColor.Printf("%s\n", displayVersion())

		label.Printf("Built:   ")
		buildColor.Printf("%s\n", formattedBuildTime())

		label.Printf("Commit:  ")
		commitColor.Printf("%s\n", buildCommit)

		label.Printf("OS/Arch: ")
		platformColor.Printf("%s/%s\n", runtime.GOOS, runtime.GOARCH)

		label.Printf("Go:      ")
		platformColor.Printf("%s\n", runtime.Version())

		exePath := "Unknown"
		if exe, err := os.Executable(); err == nil {
			exePath, _ = filepath.Abs(exe)
		}
		label.Printf("Binary:  ")
		pathColor.Printf("%s\n", exePath)
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&shortOutput, "short", "n", false, "Print only version number")
	rootCmd.AddCommand(versionCmd)
}
