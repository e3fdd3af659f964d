package compiler

import (
	"fmt"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue/token"

	"github.com/roach88/gapp/internal/ir"
	"github.com/roach88/gapp/internal/parser"
	"github.com/roach88/gapp/internal/symbols"
)

// Statement is one compiled instruction with its source location.
type Statement struct {
	Line        int // 1-based source line, 0 if unknown
	Text        string
	Instruction ir.Instruction
}

// Program is a compiled instruction sequence.
type Program struct {
	Name       string
	Version    string // gapp_version constraint, empty if absent
	Statements []Statement
	Symbols    *symbols.Table
}

// Instructions returns the instructions in program order.
func (p *Program) Instructions() []ir.Instruction {
	out := make([]ir.Instruction, len(p.Statements))
	for i, s := range p.Statements {
		out[i] = s.Instruction
	}
	return out
}

// Text renders the program in text form, one canonical statement per line.
// Declarations are emitted first so the output compiles in strict mode.
func (p *Program) Text() string {
	var b strings.Builder
	if p.Symbols != nil {
		for _, d := range declarations {
			if names := p.Symbols.Names(d.ns); len(names) > 0 {
				fmt.Fprintf(&b, "%s %s\n", d.keyword, strings.Join(names, ", "))
			}
		}
	}
	for _, s := range p.Statements {
		b.WriteString(ir.FormatLine(s.Instruction))
		b.WriteByte('\n')
	}
	return b.String()
}

// declarations maps declaration keywords to symbol namespaces.
var declarations = []struct {
	keyword string
	field   string // CUE field
	ns      symbols.Namespace
}{
	{"multivector", "multivectors", symbols.NamespaceMultivector},
	{"vector", "vectors", symbols.NamespaceVector},
	{"variable", "variables", symbols.NamespaceVariable},
}

// CompileError represents a compilation error with source position.
// Text sources set File and Line; CUE sources set Pos.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
	File    string
	Line    int
	Err     error
}

func (e *CompileError) Error() string {
	switch {
	case e.Pos.IsValid():
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s: %s", e.File, e.Line, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// CompileFile compiles a program, choosing the CUE form for ".cue" files
// and the text form otherwise.
func CompileFile(path string, tbl *symbols.Table) (*Program, error) {
	if filepath.Ext(path) == ".cue" {
		return CompileCUEFile(path, tbl)
	}
	return CompileTextFile(path, tbl)
}

// compileStatement allocates the shell for mnemonic and parses text into it.
func compileStatement(p *parser.Parser, mnemonic, text string) (ir.Instruction, error) {
	kind, err := ir.ParseKind(mnemonic)
	if err != nil {
		return nil, err
	}
	return p.ParseNew(kind, text)
}

// declare adds a comma or space separated name list to the table.
func declare(tbl *symbols.Table, ns symbols.Namespace, list string) error {
	names := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(names) == 0 {
		return fmt.Errorf("empty %s declaration", ns)
	}
	return tbl.Declare(ns, names...)
}

func newTable(tbl *symbols.Table) *symbols.Table {
	if tbl == nil {
		return symbols.NewTable(symbols.ModePermissive)
	}
	return tbl
}
