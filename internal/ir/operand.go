package ir

import (
	"strconv"
	"strings"
)

// Operand is a sealed interface for the symbolic operands of a Variableset.
// Only Variable, Constant and MvComponent implement it.
type Operand interface {
	operand() // Sealed

	// Accept dispatches to the matching OperandVisitor method.
	Accept(v OperandVisitor, arg any) (any, error)

	// String renders the operand in its textual form.
	String() string
}

// OperandVisitor has one method per Operand variant.
type OperandVisitor interface {
	VisitVariable(op *Variable, arg any) (any, error)
	VisitConstant(op *Constant, arg any) (any, error)
	VisitMvComponent(op *MvComponent, arg any) (any, error)
}

// Variable is a reference to a scalar input variable.
type Variable struct {
	Name string
}

// Constant is a literal scalar.
type Constant struct {
	Value float64
}

// MvComponent is a composite value holder: one signed component of a
// multivector, written "name[i]" or "name[-i]".
type MvComponent struct {
	Multivector Multivector
	Selector    Selector
}

func (*Variable) operand()    {}
func (*Constant) operand()    {}
func (*MvComponent) operand() {}

// Accept implements Operand.
func (op *Variable) Accept(v OperandVisitor, arg any) (any, error) {
	return v.VisitVariable(op, arg)
}

// Accept implements Operand.
func (op *Constant) Accept(v OperandVisitor, arg any) (any, error) {
	return v.VisitConstant(op, arg)
}

// Accept implements Operand.
func (op *MvComponent) Accept(v OperandVisitor, arg any) (any, error) {
	return v.VisitMvComponent(op, arg)
}

func (op *Variable) String() string {
	return op.Name
}

// String uses the shortest representation that parses back to Value.
func (op *Constant) String() string {
	return strconv.FormatFloat(op.Value, 'g', -1, 64)
}

func (op *MvComponent) String() string {
	return op.Multivector.Name + "[" + op.Selector.String() + "]"
}

// Var creates a variable operand.
func Var(name string) *Variable {
	return &Variable{Name: name}
}

// Const creates a literal operand.
func Const(v float64) *Constant {
	return &Constant{Value: v}
}

// Component creates a multivector component operand.
func Component(mv string, index int) *MvComponent {
	return &MvComponent{Multivector: MV(mv), Selector: Sel(index)}
}

// Variableset is an ordered sequence of operands feeding the right-hand
// side of an assignment. It pairs positionally with a Selectorset.
type Variableset []Operand

// Vars builds a Variableset from operands.
func Vars(ops ...Operand) Variableset {
	return Variableset(ops)
}

// String renders the comma separated operand list.
func (vs Variableset) String() string {
	parts := make([]string, len(vs))
	for i, op := range vs {
		parts[i] = op.String()
	}
	return strings.Join(parts, ",")
}
