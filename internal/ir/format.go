package ir

import (
	"strings"
)

// Format renders the operand encoding of an instruction, the text the
// parser accepts for its kind:
//
//	resetMv       x
//	setMv, addMv  x[0,1] = y[2,-3]
//	assignMv      x[0,-1] = y,3.5,z
//	dotVectors    d[0] = <a,b,c>
//	setVector     v = x[0,1]
//	assignVector  v = a,b
//	calculate     t = GP(a[0,1],b[2])
//	calculateMv   t = GP(a,b)
func Format(inst Instruction) string {
	out, _ := inst.Accept(printer{}, nil)
	return out.(string)
}

// FormatLine renders the instruction prefixed with its mnemonic, the line
// format of text programs.
func FormatLine(inst Instruction) string {
	return inst.Kind().Mnemonic() + " " + Format(inst)
}

type printer struct{}

func withSelectors(name string, sels Selectorset) string {
	return name + "[" + sels.String() + "]"
}

func equation(lhs, rhs string) string {
	return lhs + " = " + rhs
}

// calcArg renders a calculate operand; selectors are omitted when empty.
func calcArg(mv Multivector, used Selectorset) string {
	if len(used) == 0 {
		return mv.Name
	}
	return withSelectors(mv.Name, used)
}

func call(t CalculationType, args ...string) string {
	return t.String() + "(" + strings.Join(args, ",") + ")"
}

func (printer) VisitResetMv(inst *ResetMv, _ any) (any, error) {
	return inst.Destination.Name, nil
}

func (printer) VisitSetMv(inst *SetMv, _ any) (any, error) {
	return equation(
		withSelectors(inst.Destination.Name, inst.SelectorsDest),
		withSelectors(inst.Source.Name, inst.SelectorsSrc),
	), nil
}

func (printer) VisitAddMv(inst *AddMv, _ any) (any, error) {
	return equation(
		withSelectors(inst.Destination.Name, inst.SelectorsDest),
		withSelectors(inst.Source.Name, inst.SelectorsSrc),
	), nil
}

func (printer) VisitAssignMv(inst *AssignMv, _ any) (any, error) {
	return equation(withSelectors(inst.Destination.Name, inst.Selectors), inst.Values.String()), nil
}

func (printer) VisitDotVectors(inst *DotVectors, _ any) (any, error) {
	names := make([]string, len(inst.Parts))
	for i, p := range inst.Parts {
		names[i] = p.Name
	}
	return equation(
		withSelectors(inst.Destination.Name, Selectorset{inst.DestSelector}),
		"<"+strings.Join(names, ",")+">",
	), nil
}

func (printer) VisitSetVector(inst *SetVector, _ any) (any, error) {
	return equation(inst.Destination.Name, withSelectors(inst.Source.Name, inst.SelectorsSrc)), nil
}

func (printer) VisitAssignVector(inst *AssignVector, _ any) (any, error) {
	return equation(inst.Destination.Name, inst.Values.String()), nil
}

func (printer) VisitCalculate(inst *Calculate, _ any) (any, error) {
	args := []string{calcArg(inst.Operand1, inst.Used1)}
	if !inst.Unary() {
		args = append(args, calcArg(inst.Operand2, inst.Used2))
	}
	return equation(inst.Target.Name, call(inst.Type, args...)), nil
}

func (printer) VisitCalculateMv(inst *CalculateMv, _ any) (any, error) {
	args := []string{inst.Operand1.Name}
	if !inst.Unary() {
		args = append(args, inst.Operand2.Name)
	}
	return equation(inst.Target.Name, call(inst.Type, args...)), nil
}
