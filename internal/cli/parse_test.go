package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gapp/internal/ir"
)

func TestParseCommandText(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"assignMv", "x[0,-1] = y, 3.5, z"}, "assignMv x[0,-1] = y,3.5,z\n"},
		{[]string{"dotVectors", "d[0]=<a,b,c>"}, "dotVectors d[0] = <a,b,c>\n"},
		{[]string{"calculateMv", "t = GP(a, b)"}, "calculateMv t = GP(a,b)\n"},
		{[]string{"resetMv", " x "}, "resetMv x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			out, _, err := execute(t, NewParseCommand(&RootOptions{Format: "text"}), tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestParseCommandJSON(t *testing.T) {
	out, _, err := execute(t, NewParseCommand(&RootOptions{Format: "json"}), "calculateMv", "t = GP(a,b)")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   ParseResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "calculateMv", resp.Data.Kind)
	assert.Equal(t, "t = GP(a,b)", resp.Data.Text)

	want := ir.MustInstructionID(&ir.CalculateMv{
		Type:     ir.CalcGeometricProduct,
		Target:   ir.MV("t"),
		Operand1: ir.MV("a"),
		Operand2: ir.MV("b"),
	})
	assert.Equal(t, want, resp.Data.ID)
}

func TestParseCommandMalformedDot(t *testing.T) {
	out, _, err := execute(t, NewParseCommand(&RootOptions{Format: "text"}), "dotVectors", "d[0] = a,b")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E204]")
	assert.Contains(t, out, `d[0] = a,b`)
}

func TestParseCommandUnknownMnemonic(t *testing.T) {
	out, _, err := execute(t, NewParseCommand(&RootOptions{Format: "json"}), "jump", "x")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse(t, out)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeGeneric, resp.Error.Code)
}

func TestParseCommandArgs(t *testing.T) {
	_, _, err := execute(t, NewParseCommand(&RootOptions{Format: "text"}), "resetMv")
	require.Error(t, err)
}
