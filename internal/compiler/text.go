package compiler

import (
	"bufio"
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/gapp/internal/parser"
	"github.com/roach88/gapp/internal/symbols"
)

// CompileTextFile reads and compiles a text program.
func CompileTextFile(path string, tbl *symbols.Table) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CompileError{Field: "file", Message: err.Error(), Err: err}
	}
	return CompileText(path, data, tbl)
}

// CompileText compiles a text program. name is used in error positions and
// as the program name. A nil tbl resolves names permissively.
//
// Compilation stops at the first bad statement.
func CompileText(name string, src []byte, tbl *symbols.Table) (*Program, error) {
	tbl = newTable(tbl)
	prog := &Program{
		Name:    strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)),
		Symbols: tbl,
	}
	p := parser.New(tbl)

	sc := bufio.NewScanner(bytes.NewReader(src))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") || strings.HasPrefix(text, "//") {
			continue
		}

		keyword, rest := text, ""
		if i := strings.IndexAny(text, " \t"); i >= 0 {
			keyword, rest = text[:i], strings.TrimSpace(text[i+1:])
		}
		fail := func(field string, err error) (*Program, error) {
			return nil, &CompileError{Field: field, Message: err.Error(), File: name, Line: line, Err: err}
		}

		if ns, ok := declarationNamespace(keyword); ok {
			if err := declare(tbl, ns, rest); err != nil {
				return fail(keyword, err)
			}
			continue
		}

		inst, err := compileStatement(p, keyword, rest)
		if err != nil {
			return fail(keyword, err)
		}
		prog.Statements = append(prog.Statements, Statement{Line: line, Text: rest, Instruction: inst})
	}
	if err := sc.Err(); err != nil {
		return nil, &CompileError{Field: "file", Message: err.Error(), File: name, Err: err}
	}

	slog.Debug("program compiled",
		"program", prog.Name,
		"format", "text",
		"instructions", len(prog.Statements),
	)
	return prog, nil
}

func declarationNamespace(keyword string) (symbols.Namespace, bool) {
	for _, d := range declarations {
		if d.keyword == keyword {
			return d.ns, true
		}
	}
	return "", false
}
