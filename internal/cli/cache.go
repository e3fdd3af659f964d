package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gapp/internal/store"
)

// CacheEntry is one row of the cache list output.
type CacheEntry struct {
	Key        string   `json:"key"`
	RunID      string   `json:"run_id"`
	Seq        int64    `json:"seq"`
	DurationMS int64    `json:"duration_ms"`
	Request    []string `json:"request"`
	Response   []string `json:"response"`
}

// NewCacheCommand creates the cache command group.
func NewCacheCommand(rootOpts *RootOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the optimizer result cache",
	}
	cmd.PersistentFlags().StringVar(&path, "cache", "", "result cache database (overrides cache.path)")

	var runID string
	list := &cobra.Command{
		Use:           "list",
		Short:         "List cached results in insertion order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheList(rootOpts, path, runID, cmd)
		},
	}
	list.Flags().StringVar(&runID, "run", "", "only results of this run")

	purge := &cobra.Command{
		Use:           "purge",
		Short:         "Delete every cached result",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCachePurge(rootOpts, path, cmd)
		},
	}

	cmd.AddCommand(list, purge)
	return cmd
}

func openCache(f *OutputFormatter, opts *RootOptions, path string) (*store.Store, error) {
	if path == "" {
		cfg, err := opts.Config()
		if err != nil {
			return nil, f.Fail(ExitCommandError, ErrCodeGeneric, err)
		}
		path = cfg.Cache.Path
	}
	if path == "" {
		return nil, f.Fail(ExitCommandError, ErrCodeCache, errors.New("no cache configured: set cache.path or --cache"))
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeCache, err)
	}
	return st, nil
}

func runCacheList(opts *RootOptions, path, runID string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	st, err := openCache(f, opts, path)
	if err != nil {
		return err
	}
	defer st.Close()

	results, err := st.ListResults(cmd.Context(), runID)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeCache, err)
	}

	entries := make([]CacheEntry, len(results))
	for i, r := range results {
		entries[i] = CacheEntry{
			Key:        r.Key,
			RunID:      r.RunID,
			Seq:        r.Seq,
			DurationMS: r.Duration.Milliseconds(),
			Request:    r.Request,
			Response:   r.Response,
		}
	}

	if f.JSON() {
		return f.Success(entries)
	}
	for _, e := range entries {
		fmt.Fprintf(f.Writer, "%d %s run=%s lines=%d->%d\n", e.Seq, e.Key, e.RunID, len(e.Request), len(e.Response))
	}
	return nil
}

func runCachePurge(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	st, err := openCache(f, opts, path)
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.Purge(cmd.Context())
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeCache, err)
	}
	if f.JSON() {
		return f.Success(map[string]int64{"removed": n})
	}
	return f.Success(fmt.Sprintf("removed %d cached result(s)", n))
}
