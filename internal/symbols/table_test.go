package symbols

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gapp/internal/ir"
	"github.com/roach88/gapp/internal/parser"
)

func TestValidateMode(t *testing.T) {
	assert.NoError(t, ValidateMode("strict"))
	assert.NoError(t, ValidateMode("permissive"))
	assert.NoError(t, ValidateMode(""))
	assert.Error(t, ValidateMode("lenient"))
}

func TestNewTableDefaultsToStrict(t *testing.T) {
	assert.Equal(t, ModeStrict, NewTable("").Mode())
	assert.Equal(t, ModePermissive, NewTable(ModePermissive).Mode())
}

func TestDeclare(t *testing.T) {
	tbl := NewTable(ModeStrict)
	require.NoError(t, tbl.Declare(NamespaceMultivector, "x", "y", "_tmp1"))

	assert.True(t, tbl.Declared(NamespaceMultivector, "x"))
	assert.False(t, tbl.Declared(NamespaceVector, "x"), "namespaces are separate")
	assert.Equal(t, []string{"_tmp1", "x", "y"}, tbl.Names(NamespaceMultivector))
	assert.Empty(t, tbl.Names(NamespaceVariable))
}

func TestDeclareRejectsInvalidNames(t *testing.T) {
	tbl := NewTable(ModeStrict)

	err := tbl.Declare(NamespaceVector, "a", "1b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidName))
	assert.False(t, tbl.Declared(NamespaceVector, "a"), "nothing declared on error")

	assert.Error(t, tbl.Declare(Namespace("scalar"), "a"))
}

func TestStrictResolution(t *testing.T) {
	tbl := NewTable(ModeStrict)
	require.NoError(t, tbl.Declare(NamespaceMultivector, "x"))
	require.NoError(t, tbl.Declare(NamespaceVector, "v"))

	mv, err := tbl.ResolveMultivector("x")
	require.NoError(t, err)
	assert.Equal(t, ir.MV("x"), mv)

	v, err := tbl.ResolveVector("v")
	require.NoError(t, err)
	assert.Equal(t, ir.Vec("v"), v)

	_, err = tbl.ResolveMultivector("v")
	var re *ResolutionError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, NamespaceMultivector, re.Namespace)
	assert.Equal(t, "v", re.Name)
	assert.True(t, errors.Is(err, ErrUnknownName))
	assert.Equal(t, `multivector "v": unknown name`, err.Error())
}

func TestPermissiveResolutionDeclares(t *testing.T) {
	tbl := NewTable(ModePermissive)

	_, err := tbl.ResolveVector("w")
	require.NoError(t, err)
	assert.True(t, tbl.Declared(NamespaceVector, "w"))

	_, err = tbl.ResolveMultivector("not a name")
	assert.True(t, errors.Is(err, ErrInvalidName))
}

func TestResolveOperand(t *testing.T) {
	tbl := NewTable(ModeStrict)
	require.NoError(t, tbl.Declare(NamespaceMultivector, "x"))
	require.NoError(t, tbl.Declare(NamespaceVariable, "y"))

	tests := []struct {
		token string
		want  ir.Operand
	}{
		{"y", ir.Var("y")},
		{"3.5", ir.Const(3.5)},
		{"-2", ir.Const(-2)},
		{"+1e3", ir.Const(1000)},
		{".25", ir.Const(0.25)},
		{"x[4]", ir.Component("x", 4)},
		{"x[-4]", ir.Component("x", -4)},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := tbl.ResolveOperand(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveOperandErrors(t *testing.T) {
	tbl := NewTable(ModeStrict)
	require.NoError(t, tbl.Declare(NamespaceMultivector, "x"))

	_, err := tbl.ResolveOperand("")
	assert.True(t, errors.Is(err, ErrInvalidName))

	_, err = tbl.ResolveOperand("z")
	assert.True(t, errors.Is(err, ErrUnknownName))

	_, err = tbl.ResolveOperand("w[1]")
	assert.True(t, errors.Is(err, ErrUnknownName))

	_, err = tbl.ResolveOperand("x[a]")
	assert.True(t, parser.IsParseError(err))

	_, err = tbl.ResolveOperand("1.2.3")
	assert.Error(t, err)
}

func TestTableDrivesParser(t *testing.T) {
	tbl := NewTable(ModeStrict)
	require.NoError(t, tbl.Declare(NamespaceMultivector, "x"))
	require.NoError(t, tbl.Declare(NamespaceVariable, "y", "z"))

	inst, err := parser.New(tbl).ParseNew(ir.KindAssignMv, "x[0,-1] = y,3.5,z")
	require.NoError(t, err)
	assert.Equal(t, "x[0,-1] = y,3.5,z", ir.Format(inst))

	_, err = parser.New(tbl).ParseNew(ir.KindAssignMv, "x[0] = q")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownName))

	var pe *parser.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, parser.ErrCodeUnresolved, pe.Code)
}

func TestNonFiniteConstantsRoundTrip(t *testing.T) {
	for _, mode := range []Mode{ModeStrict, ModePermissive} {
		t.Run(string(mode), func(t *testing.T) {
			tbl := NewTable(mode)
			require.NoError(t, tbl.Declare(NamespaceVector, "v"))

			orig := &ir.AssignVector{
				Destination: ir.Vec("v"),
				Values:      ir.Variableset{ir.Const(math.NaN()), ir.Const(math.Inf(1)), ir.Const(math.Inf(-1))},
			}
			text := ir.Format(orig)
			assert.Equal(t, "v = NaN,+Inf,-Inf", text)

			inst, err := parser.New(tbl).ParseNew(ir.KindAssignVector, text)
			require.NoError(t, err)
			got := inst.(*ir.AssignVector).Values
			require.Len(t, got, 3)

			nan, ok := got[0].(*ir.Constant)
			require.True(t, ok, "NaN must resolve to a constant, got %T", got[0])
			assert.True(t, math.IsNaN(nan.Value))
			assert.Equal(t, ir.Const(math.Inf(1)), got[1])
			assert.Equal(t, ir.Const(math.Inf(-1)), got[2])
			assert.False(t, tbl.Declared(NamespaceVariable, "NaN"))
		})
	}
}
