package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sariflens/sariflens/cmd/resolve"
	"github.com/sariflens/sariflens/cmd/version"
	"github.com/sariflens/sariflens/pkg/shared/config"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "sariflens [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Sariflens correlates SARIF analysis results with files in a local workspace.",
		Long: `Sariflens reads SARIF static-analysis logs and rebases the artifact locations
	recorded at scan time onto the files of the current workspace, even when the scan
	ran on another machine, OS or directory layout.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(resolve.ResolveCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize config: %v\n", err)
		os.Exit(1)
	}

	resolve.Init(AppConfig)
}
