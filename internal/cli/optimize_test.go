package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gapp/internal/ir"
	"github.com/roach88/gapp/internal/testutil"
)

// writeRequest writes a request file with one CAS input per line.
func writeRequest(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

// resultCAS answers every input line with a numbered output label.
func resultCAS(t *testing.T) string {
	return testutil.FakeCAS(t, `n=0
while IFS= read -r line; do
	n=$((n+1))
	echo "(%i$n) $line"
	echo "(%o$n) simplified $n"
done < "$2"`)
}

func TestOptimizeEchoesOutput(t *testing.T) {
	dir := t.TempDir()
	req := writeRequest(t, dir, "req.mac", "display2d:false$", "ratsimp(a*b+a*c);")

	out, _, err := execute(t, NewOptimizeCommand(&RootOptions{Format: "text"}),
		"--maxima", testutil.EchoCAS(t), req)
	require.NoError(t, err)
	assert.Equal(t, "display2d:false$\nratsimp(a*b+a*c);\n", out)
}

func TestOptimizeResultsOnly(t *testing.T) {
	dir := t.TempDir()
	req := writeRequest(t, dir, "req.mac", "a+a;", "b*b;")

	out, _, err := execute(t, NewOptimizeCommand(&RootOptions{Format: "text"}),
		"--maxima", resultCAS(t), "--results", req)
	require.NoError(t, err)
	assert.Equal(t, "simplified 1\nsimplified 2\n", out)
}

func TestOptimizeMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	first := writeRequest(t, dir, "first.mac", "x;")
	second := writeRequest(t, dir, "second.mac", "y;", "z;")

	out, _, err := execute(t, NewOptimizeCommand(&RootOptions{Format: "text"}),
		"--maxima", testutil.EchoCAS(t), "--concurrency", "2", first, second)
	require.NoError(t, err)
	want := "==> " + first + " <==\nx;\n==> " + second + " <==\ny;\nz;\n"
	assert.Equal(t, want, out)
}

func TestOptimizeJSON(t *testing.T) {
	dir := t.TempDir()
	req := writeRequest(t, dir, "req.mac", "a+a;")

	out, _, err := execute(t, NewOptimizeCommand(&RootOptions{Format: "json"}),
		"--maxima", resultCAS(t), req)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   []OptimizeResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, req, resp.Data[0].File)
	assert.Equal(t, ir.RequestKey([]string{"a+a;"}), resp.Data[0].Key)
	assert.Equal(t, []string{"(%i1) a+a;", "(%o1) simplified 1"}, resp.Data[0].Output)
	assert.Equal(t, []string{"simplified 1"}, resp.Data[0].Results)
}

func TestOptimizeUsesCache(t *testing.T) {
	dir := t.TempDir()
	calls := filepath.Join(dir, "calls")
	cas := testutil.FakeCAS(t, `echo call >> "`+calls+`"; cat "$2"`)
	req := writeRequest(t, dir, "req.mac", "ratsimp(x);")
	cache := filepath.Join(dir, "cache.db")

	for i := 0; i < 2; i++ {
		out, _, err := execute(t, NewOptimizeCommand(&RootOptions{Format: "text"}),
			"--maxima", cas, "--cache", cache, req)
		require.NoError(t, err)
		assert.Equal(t, "ratsimp(x);\n", out)
	}

	data, err := os.ReadFile(calls)
	require.NoError(t, err)
	assert.Equal(t, "call\n", string(data), "second run must be answered from the cache")

	_, _, err = execute(t, NewOptimizeCommand(&RootOptions{Format: "text"}),
		"--maxima", cas, "--cache", cache, "--no-cache", req)
	require.NoError(t, err)
	data, err = os.ReadFile(calls)
	require.NoError(t, err)
	assert.Equal(t, "call\ncall\n", string(data))
}

func TestOptimizeUnavailable(t *testing.T) {
	dir := t.TempDir()
	req := writeRequest(t, dir, "req.mac", "x;")

	out, _, err := execute(t, NewOptimizeCommand(&RootOptions{Format: "text"}),
		"--maxima", filepath.Join(dir, "no-such-maxima"), req)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E004]")
}

func TestOptimizeFailingCAS(t *testing.T) {
	dir := t.TempDir()
	req := writeRequest(t, dir, "req.mac", "x;")
	cas := testutil.FakeCAS(t, `echo "incorrect syntax" >&2; exit 3`)

	out, _, err := execute(t, NewOptimizeCommand(&RootOptions{Format: "text"}),
		"--maxima", cas, req)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E004]")
	assert.Contains(t, out, "incorrect syntax")
}

func TestOptimizeMissingRequest(t *testing.T) {
	_, _, err := execute(t, NewOptimizeCommand(&RootOptions{Format: "text"}),
		"--maxima", "/bin/true", "/nonexistent/req.mac")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNotFound)
}

func TestOptimizeRejectsBadOverrides(t *testing.T) {
	dir := t.TempDir()
	req := writeRequest(t, dir, "req.mac", "x;")

	out, _, err := execute(t, NewOptimizeCommand(&RootOptions{Format: "text"}),
		"--maxima", " ", req)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "maxima.command must not be empty")
}
