package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		inst Instruction
		want string
	}{
		{"reset", &ResetMv{Destination: MV("x")}, "x"},
		{
			"set",
			&SetMv{Destination: MV("x"), Source: MV("y"), SelectorsDest: Sels(0, 1), SelectorsSrc: Sels(2, -3)},
			"x[0,1] = y[2,-3]",
		},
		{
			"add",
			&AddMv{Destination: MV("x"), Source: MV("y"), SelectorsDest: Sels(5), SelectorsSrc: Sels(-5)},
			"x[5] = y[-5]",
		},
		{
			"assign",
			&AssignMv{Destination: MV("x"), Selectors: Sels(0, -1), Values: Vars(Var("y"), Const(3.5), Var("z"))},
			"x[0,-1] = y,3.5,z",
		},
		{
			"dot",
			&DotVectors{Destination: MV("d"), DestSelector: Sel(0), Parts: []Vector{Vec("a"), Vec("b"), Vec("c")}},
			"d[0] = <a,b,c>",
		},
		{
			"set vector",
			&SetVector{Destination: Vec("v"), Source: MV("x"), SelectorsSrc: Sels(1, 2, 3)},
			"v = x[1,2,3]",
		},
		{
			"assign vector",
			&AssignVector{Destination: Vec("v"), Values: Vars(Component("x", -1), Const(2))},
			"v = x[-1],2",
		},
		{
			"calculate binary",
			&Calculate{Type: CalcGeometricProduct, Target: MV("t"), Operand1: MV("a"), Operand2: MV("b"), Used1: Sels(0, 1), Used2: Sels(2)},
			"t = GP(a[0,1],b[2])",
		},
		{
			"calculate unary without selectors",
			&Calculate{Type: CalcInverse, Target: MV("t"), Operand1: MV("a")},
			"t = INVERSE(a)",
		},
		{
			"calculateMv binary",
			&CalculateMv{Type: CalcGeometricProduct, Target: MV("t"), Operand1: MV("a"), Operand2: MV("b")},
			"t = GP(a,b)",
		},
		{
			"calculateMv unary",
			&CalculateMv{Type: CalcSqrt, Target: MV("t"), Operand1: MV("a")},
			"t = SQRT(a)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.inst))
		})
	}
}

func TestFormatLine(t *testing.T) {
	inst := &CalculateMv{Type: CalcOuterProduct, Target: MV("t"), Operand1: MV("a"), Operand2: MV("b")}
	assert.Equal(t, "calculateMv t = OP(a,b)", FormatLine(inst))
}
