package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gapp/internal/compiler"
	"github.com/roach88/gapp/internal/copier"
	"github.com/roach88/gapp/internal/ir"
)

// CopiedInstruction is one entry of the copy command's JSON output.
type CopiedInstruction struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// NewCopyCommand creates the copy command.
func NewCopyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy <program>",
		Short: "Deep-copy every instruction of a program and print the copies",
		Long: `Compile a program, deep-copy each instruction and print the copied
program in canonical text form. Each copy is checked to have the same
content-addressed ID as its original.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopy(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runCopy(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	cfg, err := opts.Config()
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, err)
	}

	prog, err := loadProgram(f, cfg, path)
	if err != nil {
		return err
	}

	copies, err := copier.CopyAll(prog.Instructions())
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeGeneric, err)
	}

	out := &compiler.Program{Name: prog.Name, Version: prog.Version, Symbols: prog.Symbols}
	entries := make([]CopiedInstruction, len(copies))
	for i, c := range copies {
		id, err := ir.InstructionID(c)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeGeneric, err)
		}
		if orig := ir.MustInstructionID(prog.Statements[i].Instruction); orig != id {
			return f.Fail(ExitCommandError, ErrCodeGeneric,
				fmt.Errorf("instruction %d: copy id %s differs from original %s", i, id, orig))
		}
		entries[i] = CopiedInstruction{ID: id, Text: ir.FormatLine(c)}
		out.Statements = append(out.Statements, compiler.Statement{
			Line:        prog.Statements[i].Line,
			Text:        ir.Format(c),
			Instruction: c,
		})
	}

	if f.JSON() {
		return f.Success(entries)
	}
	_, err = fmt.Fprint(f.Writer, out.Text())
	return err
}
