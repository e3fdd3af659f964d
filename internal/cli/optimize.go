package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/gapp/internal/config"
	"github.com/roach88/gapp/internal/ir"
	"github.com/roach88/gapp/internal/maxima"
	"github.com/roach88/gapp/internal/store"
)

// OptimizeOptions holds flags for the optimize command.
type OptimizeOptions struct {
	*RootOptions
	Command     string
	Timeout     time.Duration
	CachePath   string
	NoCache     bool
	ResultsOnly bool
	Concurrency int
}

// OptimizeResult is the outcome for one request file.
type OptimizeResult struct {
	File    string   `json:"file"`
	Key     string   `json:"key"`
	Output  []string `json:"output"`
	Results []string `json:"results"`
}

// NewOptimizeCommand creates the optimize command.
func NewOptimizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OptimizeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "optimize <request-file>...",
		Short: "Run CAS request files through Maxima",
		Long: `Send each request file (one CAS input line per line) to Maxima in
batch mode and print what it returned. Requests run concurrently up to
maxima.concurrency. With a cache configured, repeated requests are answered
from the cache.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd.Context(), opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Command, "maxima", "", "CAS executable (overrides maxima.command)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "per-request timeout (overrides maxima.timeout)")
	cmd.Flags().StringVar(&opts.CachePath, "cache", "", "result cache database (overrides cache.path)")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "bypass the result cache")
	cmd.Flags().BoolVar(&opts.ResultsOnly, "results", false, "print only the (%oN) result expressions")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "maximum concurrent CAS runs (overrides maxima.concurrency)")

	return cmd
}

// effectiveConfig applies command-line overrides to the loaded config.
func (o *OptimizeOptions) effectiveConfig() (config.Config, error) {
	cfg, err := o.Config()
	if err != nil {
		return config.Config{}, err
	}
	if o.Command != "" {
		cfg.Maxima.Command = o.Command
	}
	if o.Timeout > 0 {
		cfg.Maxima.Timeout = o.Timeout
	}
	if o.CachePath != "" {
		cfg.Cache.Path = o.CachePath
	}
	if o.NoCache {
		cfg.Cache.Path = ""
	}
	if o.Concurrency > 0 {
		cfg.Maxima.Concurrency = o.Concurrency
	}
	return cfg, cfg.Validate()
}

func runOptimize(ctx context.Context, opts *OptimizeOptions, files []string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	cfg, err := opts.effectiveConfig()
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, err)
	}

	requests := make([][]string, len(files))
	for i, path := range files {
		if requests[i], err = readRequest(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return f.Fail(ExitCommandError, ErrCodeNotFound, err)
			}
			return f.Fail(ExitCommandError, ErrCodeGeneric, err)
		}
	}

	var conn maxima.Connection = maxima.NewProcessConnection(cfg.Maxima.Command,
		maxima.WithArgs(cfg.Maxima.Args...),
		maxima.WithTimeout(cfg.Maxima.Timeout),
		maxima.WithTempDir(cfg.Maxima.TempDir),
		maxima.WithLogger(opts.Logger()),
	)
	if cfg.Cache.Path != "" {
		st, err := store.Open(cfg.Cache.Path)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeCache, err)
		}
		defer st.Close()
		cached := maxima.NewCachedConnection(conn, st, nil)
		f.VerboseLog("Using result cache %s (run %s)", cfg.Cache.Path, cached.RunID())
		conn = cached
	}

	outputs, err := maxima.OptimizeAll(ctx, conn, requests, cfg.Maxima.Concurrency)
	if err != nil {
		if errors.Is(err, maxima.ErrUnavailable) {
			return f.Fail(ExitCommandError, ErrCodeUnavailable, err)
		}
		return f.Fail(ExitCommandError, ErrCodeCache, err)
	}

	results := make([]OptimizeResult, len(files))
	for i, path := range files {
		results[i] = OptimizeResult{
			File:    path,
			Key:     ir.RequestKey(requests[i]),
			Output:  outputs[i],
			Results: maxima.Output(outputs[i]).Results(),
		}
		if results[i].Results == nil {
			results[i].Results = []string{}
		}
	}

	if f.JSON() {
		return f.Success(results)
	}
	for _, r := range results {
		if len(results) > 1 {
			fmt.Fprintf(f.Writer, "==> %s <==\n", r.File)
		}
		lines := r.Output
		if opts.ResultsOnly {
			lines = r.Results
		}
		for _, line := range lines {
			fmt.Fprintln(f.Writer, line)
		}
	}
	return nil
}

// readRequest reads one CAS input line per file line.
func readRequest(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	sc := bufio.NewScanner(file)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}
