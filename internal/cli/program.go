package cli

import (
	"errors"
	"io/fs"

	"github.com/roach88/gapp/internal/compiler"
	"github.com/roach88/gapp/internal/config"
	"github.com/roach88/gapp/internal/symbols"
)

// newSymbolTable returns a fresh table in the configured mode.
func newSymbolTable(cfg config.Config) *symbols.Table {
	if cfg.Symbols.Strict {
		return symbols.NewTable(symbols.ModeStrict)
	}
	return symbols.NewTable(symbols.ModePermissive)
}

// loadProgram compiles path, reporting failures through f.
func loadProgram(f *OutputFormatter, cfg config.Config, path string) (*compiler.Program, error) {
	prog, err := compiler.CompileFile(path, newSymbolTable(cfg))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, f.Fail(ExitCommandError, ErrCodeNotFound, err)
		}
		return nil, f.Fail(ExitFailure, ErrCodeCompile, err)
	}
	f.VerboseLog("Compiled %s: %d instruction(s)", path, len(prog.Statements))
	return prog, nil
}
