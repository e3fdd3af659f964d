package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSel(t *testing.T) {
	assert.Equal(t, Selector{Index: 3, Sign: Positive}, Sel(3))
	assert.Equal(t, Selector{Index: 3, Sign: Negative}, Sel(-3))
	assert.Equal(t, "3", Sel(3).String())
	assert.Equal(t, "-3", Sel(-3).String())
	assert.Equal(t, "-0", Selector{Index: 0, Sign: Negative}.String())
}

func TestSignValid(t *testing.T) {
	assert.True(t, Positive.Valid())
	assert.True(t, Negative.Valid())
	assert.False(t, Sign(0).Valid())
	assert.False(t, Sign(2).Valid())
}

func TestSelectorsetClone(t *testing.T) {
	orig := Sels(0, -1, 2)
	clone := orig.Clone()
	require.Equal(t, orig, clone)

	clone[0] = Sel(7)
	assert.Equal(t, Sel(0), orig[0])

	assert.Nil(t, Selectorset(nil).Clone())
	assert.Equal(t, "0,-1,2", orig.String())
}

func TestHandlesCompareByName(t *testing.T) {
	assert.Equal(t, MV("x"), Multivector{Name: "x"})
	assert.True(t, MV("x") == MV("x"))
	assert.False(t, MV("x") == MV("y"))
	assert.True(t, Multivector{}.IsZero())
	assert.True(t, Vector{}.IsZero())
	assert.False(t, Vec("a").IsZero())
}

func TestOperandString(t *testing.T) {
	tests := []struct {
		op   Operand
		want string
	}{
		{Var("y"), "y"},
		{Const(3.5), "3.5"},
		{Const(-2), "-2"},
		{Const(0.1), "0.1"},
		{Component("x", 4), "x[4]"},
		{Component("x", -4), "x[-4]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.String())
	}
	assert.Equal(t, "y,3.5,x[-1]", Vars(Var("y"), Const(3.5), Component("x", -1)).String())
}

func TestCalculationTypeNames(t *testing.T) {
	for typ, name := range calcNames {
		parsed, err := ParseCalculationType(name)
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
		assert.Equal(t, name, typ.String())
		assert.True(t, typ.Valid())
		assert.Contains(t, []int{1, 2}, typ.Arity())
	}

	_, err := ParseCalculationType("gp")
	assert.Error(t, err)
	assert.False(t, CalcInvalid.Valid())
	assert.Equal(t, 0, CalcInvalid.Arity())
}

func TestCalculationTypeArity(t *testing.T) {
	assert.Equal(t, 2, CalcGeometricProduct.Arity())
	assert.Equal(t, 2, CalcDivision.Arity())
	assert.Equal(t, 1, CalcInverse.Arity())
	assert.Equal(t, 1, CalcCos.Arity())
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		parsed, err := ParseKind(k.Mnemonic())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	_, err := ParseKind("jump")
	assert.Error(t, err)
}

func TestNewInstruction(t *testing.T) {
	for _, k := range Kinds {
		inst, err := NewInstruction(k)
		require.NoError(t, err)
		assert.Equal(t, k, inst.Kind())
	}
	_, err := NewInstruction(KindInvalid)
	assert.Error(t, err)
}

// kindVisitor returns the mnemonic of the method it was dispatched to.
type kindVisitor struct{}

func (kindVisitor) VisitResetMv(*ResetMv, any) (any, error)           { return "resetMv", nil }
func (kindVisitor) VisitSetMv(*SetMv, any) (any, error)               { return "setMv", nil }
func (kindVisitor) VisitAddMv(*AddMv, any) (any, error)               { return "addMv", nil }
func (kindVisitor) VisitAssignMv(*AssignMv, any) (any, error)         { return "assignMv", nil }
func (kindVisitor) VisitDotVectors(*DotVectors, any) (any, error)     { return "dotVectors", nil }
func (kindVisitor) VisitSetVector(*SetVector, any) (any, error)       { return "setVector", nil }
func (kindVisitor) VisitAssignVector(*AssignVector, any) (any, error) { return "assignVector", nil }
func (kindVisitor) VisitCalculate(*Calculate, any) (any, error)       { return "calculate", nil }
func (kindVisitor) VisitCalculateMv(*CalculateMv, any) (any, error)   { return "calculateMv", nil }

func TestAcceptDispatch(t *testing.T) {
	for _, k := range Kinds {
		inst, err := NewInstruction(k)
		require.NoError(t, err)
		out, err := inst.Accept(kindVisitor{}, nil)
		require.NoError(t, err)
		assert.Equal(t, k.Mnemonic(), out)
	}
}

func TestCheckCompatible(t *testing.T) {
	assert.NoError(t, CheckCompatible(""))
	assert.NoError(t, CheckCompatible("^1.0"))
	assert.NoError(t, CheckCompatible(">= 1.1, < 2"))
	assert.Error(t, CheckCompatible("^2.0"))
	assert.Error(t, CheckCompatible("not a constraint"))
}
