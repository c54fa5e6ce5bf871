package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/vaultmend/internal/buildinfo"
)

const modulePath = "github.com/aidanlsb/vaultmend"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show vaultmend version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		version := buildinfo.Version
		commit := buildinfo.Commit
		goVersion := runtime.Version()

		if info, ok := debug.ReadBuildInfo(); ok && info != nil {
			if version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
				version = info.Main.Version
			}
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" && commit == "" {
					commit = setting.Value
				}
			}
			if info.GoVersion != "" {
				goVersion = info.GoVersion
			}
		}
		if version == "" {
			version = "devel"
		}

		fmt.Printf("vmd %s\n", version)
		fmt.Printf("module: %s\n", modulePath)
		if commit != "" {
			fmt.Printf("commit: %s\n", commit)
		}
		if buildinfo.Date != "" {
			fmt.Printf("built: %s\n", buildinfo.Date)
		}
		fmt.Printf("go: %s\n", goVersion)
		fmt.Printf("platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
