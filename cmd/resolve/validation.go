package resolve

import (
	"fmt"

	"github.com/sariflens/sariflens/pkg/shared/files"
)

// validateResolveArgs validates the arguments provided to the resolve command.
func validateResolveArgs(allArgumentsResolve *RunOptionsResolve, args []string) error {
	if allArgumentsResolve.InputFile == "" {
		return fmt.Errorf("the 'input' flag must be specified")
	}

	expandedInput, err := files.ExpandPath(allArgumentsResolve.InputFile)
	if err != nil {
		return fmt.Errorf("failed to expand input path: %w", err)
	}
	allArgumentsResolve.InputFile = expandedInput
	if err := files.ValidatePath(allArgumentsResolve.InputFile); err != nil {
		return fmt.Errorf("invalid input file: %w", err)
	}

	if len(args) > 0 {
		return fmt.Errorf("unexpected positional arguments: %v", args)
	}

	expandedTarget, err := files.ExpandPath(allArgumentsResolve.TargetFolder)
	if err != nil {
		return fmt.Errorf("failed to expand target path: %w", err)
	}
	allArgumentsResolve.TargetFolder = expandedTarget
	if err := files.ValidateDir(allArgumentsResolve.TargetFolder); err != nil {
		return fmt.Errorf("invalid target folder: %w", err)
	}

	return nil
}
