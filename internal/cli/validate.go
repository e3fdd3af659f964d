package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/gapp/internal/compiler"
	"github.com/roach88/gapp/internal/config"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Program      string                     `json:"program"`
	Valid        bool                       `json:"valid"`
	Instructions int                        `json:"instructions"`
	Errors       []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <program>",
		Short: "Compile a program and check it against the algebra",
		Long: `Compile a text (.gapp) or CUE (.cue) program and validate every
instruction: populated fields, selector ranges against algebra.blades,
assignment arity, operator arity and dot-product shape.`,
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
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	cfg, err := opts.Config()
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, err)
	}
	return validateProgram(f, cfg, path)
}

// validateProgram compiles and validates path and reports the outcome.
// Shared by validate and watch.
func validateProgram(f *OutputFormatter, cfg config.Config, path string) error {
	prog, err := loadProgram(f, cfg, path)
	if err != nil {
		return err
	}

	result := ValidationResult{
		Program:      prog.Name,
		Instructions: len(prog.Statements),
		Errors:       compiler.Validate(prog, cfg.Algebra.Blades),
	}
	result.Valid = len(result.Errors) == 0

	if result.Valid {
		return outputValidateSuccess(f, result)
	}
	return outputValidationErrors(f, result)
}

func outputValidateSuccess(f *OutputFormatter, result ValidationResult) error {
	if f.JSON() {
		return f.Success(result)
	}
	_, err := fmt.Fprintf(f.Writer, "✓ %s: %d instruction(s) valid\n", result.Program, result.Instructions)
	return err
}

func outputValidationErrors(f *OutputFormatter, result ValidationResult) error {
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))

	if f.JSON() {
		first := result.Errors[0]
		if err := f.encode(CLIResponse{
			Status: "error",
			Data:   result,
			Error:  &CLIError{Code: first.Code, Message: first.Message},
		}); err != nil {
			return err
		}
		return exitErr
	}

	writeValidationErrors(f.Writer, result)
	return exitErr
}

func writeValidationErrors(w io.Writer, result ValidationResult) {
	fmt.Fprintf(w, "✗ %s: validation failed\n\n", result.Program)
	for _, e := range result.Errors {
		if e.Line > 0 {
			fmt.Fprintf(w, "line %d\n", e.Line)
		}
		fmt.Fprintf(w, "  %s %s: %s\n\n", e.Code, e.Field, e.Message)
	}
}
