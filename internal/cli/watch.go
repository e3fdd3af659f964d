package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/roach88/gapp/internal/config"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 100 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <program>",
		Short: "Re-validate a program whenever it changes",
		Long: `Validate a program once, then again each time the file is written.
Runs until interrupted.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			cfg, err := rootOpts.Config()
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeGeneric, err)
			}
			return runWatch(cmd.Context(), f, cfg, args[0], debounce)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", DefaultDebounce, "quiet period before re-validating")

	return cmd
}

// runWatch validates path now and after every write or re-creation of it.
// Validation failures are reported and watching continues; it returns nil
// when ctx is done.
func runWatch(ctx context.Context, f *OutputFormatter, cfg config.Config, path string, debounce time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeWatch, err)
	}
	defer w.Close()

	target := filepath.Clean(path)
	// Watch the directory so editors that replace the file are still seen.
	if err := w.Add(filepath.Dir(target)); err != nil {
		return f.Fail(ExitCommandError, ErrCodeWatch, fmt.Errorf("watch %s: %w", path, err))
	}

	check := func() {
		if err := validateProgram(f, cfg, path); err != nil {
			f.VerboseLog("%s: %v", path, err)
		}
	}
	check()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				pending = time.After(debounce)
			}
		case <-pending:
			pending = nil
			check()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return f.Fail(ExitCommandError, ErrCodeWatch, err)
		}
	}
}
