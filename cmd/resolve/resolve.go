package resolve

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sariflens/sariflens/internal/prompt"
	"github.com/sariflens/sariflens/internal/sariflog"
	"github.com/sariflens/sariflens/internal/workspace"
	"github.com/sariflens/sariflens/pkg/pathutil"
	"github.com/sariflens/sariflens/pkg/rebase"
	"github.com/sariflens/sariflens/pkg/shared"
	"github.com/sariflens/sariflens/pkg/shared/config"
	"github.com/sariflens/sariflens/pkg/shared/logger"
)

// RunOptionsResolve holds the arguments for the resolve command.
type RunOptionsResolve struct {
	InputFile    string
	TargetFolder string
	URIBases     []string
	Interactive  bool
}

// Global variables for configuration and command arguments
var (
	AppConfig           *config.Config
	resolveOptions      RunOptionsResolve
	exampleResolveUsage = `  # Resolving a SARIF log against the current directory
  sariflens resolve --input /path/to/report.sarif

  # Resolving against a specific workspace folder
  sariflens resolve --input /path/to/report.sarif --target /path/to/workspace

  # Supplying candidate root directories the scan-time paths may map to
  sariflens resolve --input report.sarif --base file:///home/me/proj --base file:///mnt/work

  # Asking interactively for files that cannot be matched automatically
  sariflens resolve --input report.sarif --interactive`
)

// ResolveCmd represents the resolve command.
var ResolveCmd = &cobra.Command{
	Use:                   "resolve --input/-i PATH [--target/-t PATH] [--base/-b URI ...] [--interactive]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleResolveUsage,
	Short:                 "Resolves the artifact locations of a SARIF log to files in a local workspace",
	RunE:                  runResolveCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func init() {
	ResolveCmd.Flags().StringVarP(&resolveOptions.InputFile, "input", "i", "", "path to the SARIF log to resolve")
	ResolveCmd.Flags().StringVarP(&resolveOptions.TargetFolder, "target", "t", ".", "workspace folder to resolve against")
	ResolveCmd.Flags().StringArrayVarP(&resolveOptions.URIBases, "base", "b", nil, "candidate root URI for base substitution (repeatable)")
	ResolveCmd.Flags().BoolVar(&resolveOptions.Interactive, "interactive", false, "prompt to locate files that cannot be matched automatically")
}

// runResolveCommand executes the resolve command.
func runResolveCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	if AppConfig == nil {
		AppConfig = &config.Config{}
	}
	logger := logger.NewLogger(AppConfig, "core-resolve")

	if err := validateResolveArgs(&resolveOptions, args); err != nil {
		logger.Error("invalid resolve arguments", "error", err)
		return err
	}

	log, err := sariflog.Load(resolveOptions.InputFile, logger)
	if err != nil {
		logger.Error("failed to load SARIF log", "path", resolveOptions.InputFile, "error", err)
		return err
	}

	snapshot, err := workspace.Scan(resolveOptions.TargetFolder, logger)
	if err != nil {
		logger.Error("failed to scan workspace", "target", resolveOptions.TargetFolder, "error", err)
		return err
	}

	checker, err := workspace.NewStatChecker(AppConfig.Resolver.StatCacheSize)
	if err != nil {
		return fmt.Errorf("failed to create stat checker: %w", err)
	}

	caseInsensitive := pathutil.CaseInsensitivePlatform()
	if AppConfig.Resolver.CaseInsensitive != nil {
		caseInsensitive = *AppConfig.Resolver.CaseInsensitive
	}

	bases := append(append([]string(nil), AppConfig.Resolver.URIBases...), resolveOptions.URIBases...)
	bases = append(bases, pathutil.FileURI(snapshot.Root()))

	var prompter rebase.Prompter
	if resolveOptions.Interactive {
		prompter = prompt.NewTerminal(os.Stdin, os.Stderr, logger)
	}

	rebaser := rebase.New(rebase.Options{
		Artifacts:       log.ArtifactURIs(),
		WorkspaceFiles:  snapshot.Files(),
		URIBases:        bases,
		CaseInsensitive: caseInsensitive,
		Oracle:          checker,
		Prompter:        prompter,
		Logger:          logger,
	})

	resolved, unresolved := 0, 0
	ctx := cmd.Context()
	for _, loc := range log.Locations() {
		var local string
		if resolveOptions.Interactive {
			local, err = rebaser.ToLocal(ctx, loc.ArtifactURI)
		} else {
			local, err = rebaser.PeekLocal(ctx, loc.ArtifactURI)
		}
		if err != nil {
			logger.Error("failed to resolve artifact", "artifact", loc.ArtifactURI, "error", err)
			return err
		}
		if local == "" {
			unresolved++
			fmt.Printf("%s\t%s -> <unresolved>\n", loc.RuleID, loc.ArtifactURI)
			continue
		}
		resolved++
		fmt.Printf("%s\t%s -> %s:%d\n", loc.RuleID, loc.ArtifactURI, local, loc.StartLine)
	}

	logger.Info("resolution finished", "resolved", resolved, "unresolved", unresolved)
	return nil
}
