package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/gapp/internal/ir"
	"github.com/roach88/gapp/internal/parser"
	"github.com/roach88/gapp/internal/symbols"
)

// ParseResult is the JSON payload of the parse command.
type ParseResult struct {
	Kind        string         `json:"kind"`
	Text        string         `json:"text"`
	ID          string         `json:"id"`
	Instruction map[string]any `json:"instruction"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <mnemonic> <encoding>",
		Short: "Parse a single instruction and print its canonical form",
		Long: `Parse one instruction from its operand encoding, e.g.

  gappc parse assignMv "x[0,-1] = y,3.5,z"

Names resolve permissively. Text output is the canonical statement;
JSON output adds the content-addressed instruction ID.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runParse(opts *RootOptions, mnemonic, text string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	kind, err := ir.ParseKind(mnemonic)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeGeneric, err)
	}

	p := parser.New(symbols.NewTable(symbols.ModePermissive))
	inst, err := p.ParseNew(kind, text)
	if err != nil {
		code := ErrCodeGeneric
		var pe *parser.ParseError
		if errors.As(err, &pe) {
			code = pe.Code
		}
		return f.Fail(ExitFailure, code, err)
	}

	if !f.JSON() {
		return f.Success(ir.FormatLine(inst))
	}

	id, err := ir.InstructionID(inst)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, err)
	}
	return f.Success(ParseResult{
		Kind:        kind.Mnemonic(),
		Text:        ir.Format(inst),
		ID:          id,
		Instruction: ir.Encode(inst),
	})
}
