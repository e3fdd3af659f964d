package compiler

import (
	"fmt"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"

	"github.com/roach88/gapp/internal/ir"
	"github.com/roach88/gapp/internal/parser"
	"github.com/roach88/gapp/internal/symbols"
)

// CompileCUEFile reads and compiles a CUE program.
func CompileCUEFile(path string, tbl *symbols.Table) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CompileError{Field: "file", Message: err.Error(), Err: err}
	}
	return CompileCUE(path, data, tbl)
}

// CompileCUE compiles CUE source. filename is used for error positions.
func CompileCUE(filename string, src []byte, tbl *symbols.Table) (*Program, error) {
	v := cuecontext.New().CompileBytes(src, cue.Filename(filename))
	return CompileValue(v, tbl)
}

// CompileValue compiles an evaluated CUE value holding a program.
// Uses the CUE SDK's Go API directly.
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`instructions: [{resetMv: "x"}]`)
//	prog, err := CompileValue(v, nil)
func CompileValue(v cue.Value, tbl *symbols.Table) (*Program, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	tbl = newTable(tbl)
	prog := &Program{Symbols: tbl}

	if versionVal := v.LookupPath(cue.ParsePath("gapp_version")); versionVal.Exists() {
		constraint, err := versionVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		if err := ir.CheckCompatible(constraint); err != nil {
			return nil, &CompileError{Field: "gapp_version", Message: err.Error(), Pos: versionVal.Pos(), Err: err}
		}
		prog.Version = constraint
	}

	if nameVal := v.LookupPath(cue.ParsePath("name")); nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		prog.Name = name
	}

	for _, d := range declarations {
		if err := declareList(tbl, d.ns, v.LookupPath(cue.ParsePath(d.field)), d.field); err != nil {
			return nil, err
		}
	}

	instVal := v.LookupPath(cue.ParsePath("instructions"))
	if !instVal.Exists() {
		return nil, &CompileError{
			Field:   "instructions",
			Message: "instructions is required",
			Pos:     v.Pos(),
		}
	}
	statements, err := compileInstructions(parser.New(tbl), instVal)
	if err != nil {
		return nil, err
	}
	prog.Statements = statements

	slog.Debug("program compiled",
		"program", prog.Name,
		"format", "cue",
		"instructions", len(prog.Statements),
	)
	return prog, nil
}

// declareList declares every string of a CUE list. A missing field is fine.
func declareList(tbl *symbols.Table, ns symbols.Namespace, v cue.Value, field string) error {
	if !v.Exists() {
		return nil
	}
	iter, err := v.List()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		name, err := iter.Value().String()
		if err != nil {
			return formatCUEError(err)
		}
		if err := tbl.Declare(ns, name); err != nil {
			return &CompileError{Field: field, Message: err.Error(), Pos: iter.Value().Pos(), Err: err}
		}
	}
	return nil
}

// compileInstructions compiles a list of single-field structs
// {<mnemonic>: "<encoding>"}.
func compileInstructions(p *parser.Parser, v cue.Value) ([]Statement, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var statements []Statement
	for i := 0; iter.Next(); i++ {
		elem := iter.Value()
		field := fmt.Sprintf("instructions[%d]", i)

		fields, err := elem.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		var mnemonic, text string
		count := 0
		for fields.Next() {
			count++
			mnemonic = fields.Label()
			if text, err = fields.Value().String(); err != nil {
				return nil, formatCUEError(err)
			}
		}
		if count != 1 {
			return nil, &CompileError{
				Field:   field,
				Message: fmt.Sprintf("expected exactly one {mnemonic: encoding} field, got %d", count),
				Pos:     elem.Pos(),
			}
		}

		inst, err := compileStatement(p, mnemonic, text)
		if err != nil {
			return nil, &CompileError{Field: field + "." + mnemonic, Message: err.Error(), Pos: elem.Pos(), Err: err}
		}
		statements = append(statements, Statement{Line: elem.Pos().Line(), Text: text, Instruction: inst})
	}
	return statements, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
			Err:     err,
		}
	}
	return err
}
