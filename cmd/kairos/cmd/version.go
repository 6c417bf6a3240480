package cmd

import (
	"fmt"
	"runtime"

	"github.com/msto63/kairos/pkg/core/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get("cli")
		out := cmd.OutOrStdout()
		if outputJSON {
			_ = writeJSON(out, info)
			return
		}
		fmt.Fprintf(out, "kairos v%s\n", info.Version)
		fmt.Fprintf(out, "  API:        %s\n", info.API)
		fmt.Fprintf(out, "  Git Commit: %s\n", info.GitCommit)
		fmt.Fprintf(out, "  Build Date: %s\n", info.BuildDate)
		fmt.Fprintf(out, "  Go Version: %s\n", info.GoVersion)
		fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
