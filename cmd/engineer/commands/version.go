// ABOUTME: Version command to display build information
// ABOUTME: Shows version, commit hash, build date and Go runtime
package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionInfo = VersionInfo{Version: "dev", Commit: "none", Date: "unknown"}

// VersionInfo is stamped by the linker through main
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// SetVersion records build information for the version command
func SetVersion(version, commit, date string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.Date = date
}

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, build date and Go runtime of the race engineer CLI.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Race Engineer %s\n", versionInfo.Version)
			fmt.Fprintf(out, "Commit: %s\n", versionInfo.Commit)
			fmt.Fprintf(out, "Built:  %s\n", versionInfo.Date)
			fmt.Fprintf(out, "Go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}

	return cmd
}
