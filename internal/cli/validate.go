package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/weyl-labs/lattice/internal/loader"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <project-file>",
		Short: "Validate a project document against the schema",
		Long: `Validate a project document (JSON or YAML) against the project schema
without evaluating it. All schema violations are reported.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	_, errs := loader.Load(path, loader.LoadModeCollectAll)

	// A missing file is a command error, not a validation verdict.
	var loadErr *loader.LoadError
	if len(errs) > 0 && errors.As(errs[0], &loadErr) && loadErr.Code == loader.ErrCodeNotFound {
		formatter.Error(loadErr.Code, loadErr.Message, nil)
		return NewExitError(ExitCommandError, loadErr.Message)
	}

	result := ValidationResult{Valid: len(errs) == 0}
	for _, err := range errs {
		result.Errors = append(result.Errors, err.Error())
	}

	outErr := formatter.SuccessJSON(result, func(w io.Writer) {
		if result.Valid {
			fmt.Fprintf(w, "%s: valid\n", path)
			return
		}
		fmt.Fprintf(w, "%s: %d error(s)\n", path, len(result.Errors))
		for _, msg := range result.Errors {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
	})
	if outErr != nil {
		return outErr
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d validation error(s)", len(result.Errors)))
	}
	return nil
}
