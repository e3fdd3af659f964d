package copier

import (
	"errors"
	"fmt"

	"github.com/roach88/gapp/internal/ir"
)

// ErrUnpopulated is matched by every ContractError.
var ErrUnpopulated = errors.New("instruction field not populated")

// ContractError reports an attempt to copy an instruction that is not
// well-formed. It indicates a bug in the pass that built the instruction.
type ContractError struct {
	Kind  ir.Kind
	Field string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("copy %s: field %s not populated", e.Kind, e.Field)
}

// Unwrap returns ErrUnpopulated.
func (e *ContractError) Unwrap() error {
	return ErrUnpopulated
}

// Copier is a Visitor producing deep copies. The zero value is ready to use.
// The arg passed to Accept is ignored; the result is the copied instruction
// (or operand when visiting operands).
type Copier struct{}

var (
	_ ir.Visitor        = Copier{}
	_ ir.OperandVisitor = Copier{}
)

// Copy returns a deep copy of inst.
func Copy(inst ir.Instruction) (ir.Instruction, error) {
	out, err := inst.Accept(Copier{}, nil)
	if err != nil {
		return nil, err
	}
	return out.(ir.Instruction), nil
}

// MustCopy is like Copy but panics on a contract violation.
func MustCopy(inst ir.Instruction) ir.Instruction {
	out, err := Copy(inst)
	if err != nil {
		panic(err)
	}
	return out
}

// CopyOperand returns a deep copy of a single operand.
func CopyOperand(op ir.Operand) (ir.Operand, error) {
	out, err := op.Accept(Copier{}, nil)
	if err != nil {
		return nil, err
	}
	return out.(ir.Operand), nil
}

// CopyAll copies every instruction of a sequence, stopping at the first
// contract violation.
func CopyAll(insts []ir.Instruction) ([]ir.Instruction, error) {
	out := make([]ir.Instruction, len(insts))
	for i, inst := range insts {
		c, err := Copy(inst)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

func checkField(kind ir.Kind, field string, ok bool) error {
	if !ok {
		return &ContractError{Kind: kind, Field: field}
	}
	return nil
}

// copyVariables clones each operand through its own Accept.
func copyVariables(kind ir.Kind, vs ir.Variableset) (ir.Variableset, error) {
	if vs == nil {
		return nil, nil
	}
	out := make(ir.Variableset, len(vs))
	for i, op := range vs {
		if op == nil {
			return nil, &ContractError{Kind: kind, Field: fmt.Sprintf("values[%d]", i)}
		}
		c, err := CopyOperand(op)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func (Copier) VisitVariable(op *ir.Variable, _ any) (any, error) {
	return &ir.Variable{Name: op.Name}, nil
}

func (Copier) VisitConstant(op *ir.Constant, _ any) (any, error) {
	return &ir.Constant{Value: op.Value}, nil
}

func (Copier) VisitMvComponent(op *ir.MvComponent, _ any) (any, error) {
	return &ir.MvComponent{Multivector: op.Multivector, Selector: op.Selector}, nil
}

func (Copier) VisitResetMv(inst *ir.ResetMv, _ any) (any, error) {
	if err := checkField(ir.KindResetMv, "destination", !inst.Destination.IsZero()); err != nil {
		return nil, err
	}
	return &ir.ResetMv{Destination: inst.Destination}, nil
}

func (Copier) VisitSetMv(inst *ir.SetMv, _ any) (any, error) {
	if err := checkBinary(ir.KindSetMv, inst.Destination, inst.Source); err != nil {
		return nil, err
	}
	return &ir.SetMv{
		Destination:   inst.Destination,
		Source:        inst.Source,
		SelectorsDest: inst.SelectorsDest.Clone(),
		SelectorsSrc:  inst.SelectorsSrc.Clone(),
	}, nil
}

func (Copier) VisitAddMv(inst *ir.AddMv, _ any) (any, error) {
	if err := checkBinary(ir.KindAddMv, inst.Destination, inst.Source); err != nil {
		return nil, err
	}
	return &ir.AddMv{
		Destination:   inst.Destination,
		Source:        inst.Source,
		SelectorsDest: inst.SelectorsDest.Clone(),
		SelectorsSrc:  inst.SelectorsSrc.Clone(),
	}, nil
}

func checkBinary(kind ir.Kind, dst, src ir.Multivector) error {
	if err := checkField(kind, "destination", !dst.IsZero()); err != nil {
		return err
	}
	return checkField(kind, "source", !src.IsZero())
}

func (Copier) VisitAssignMv(inst *ir.AssignMv, _ any) (any, error) {
	if err := checkField(ir.KindAssignMv, "destination", !inst.Destination.IsZero()); err != nil {
		return nil, err
	}
	values, err := copyVariables(ir.KindAssignMv, inst.Values)
	if err != nil {
		return nil, err
	}
	return &ir.AssignMv{
		Destination: inst.Destination,
		Selectors:   inst.Selectors.Clone(),
		Values:      values,
	}, nil
}

func (Copier) VisitDotVectors(inst *ir.DotVectors, _ any) (any, error) {
	if err := checkField(ir.KindDotVectors, "destination", !inst.Destination.IsZero()); err != nil {
		return nil, err
	}
	if err := checkField(ir.KindDotVectors, "parts", len(inst.Parts) > 0); err != nil {
		return nil, err
	}
	parts := make([]ir.Vector, len(inst.Parts))
	copy(parts, inst.Parts)
	return &ir.DotVectors{
		Destination:  inst.Destination,
		DestSelector: inst.DestSelector,
		Parts:        parts,
	}, nil
}

func (Copier) VisitSetVector(inst *ir.SetVector, _ any) (any, error) {
	if err := checkField(ir.KindSetVector, "destination", !inst.Destination.IsZero()); err != nil {
		return nil, err
	}
	if err := checkField(ir.KindSetVector, "source", !inst.Source.IsZero()); err != nil {
		return nil, err
	}
	return &ir.SetVector{
		Destination:  inst.Destination,
		Source:       inst.Source,
		SelectorsSrc: inst.SelectorsSrc.Clone(),
	}, nil
}

func (Copier) VisitAssignVector(inst *ir.AssignVector, _ any) (any, error) {
	if err := checkField(ir.KindAssignVector, "destination", !inst.Destination.IsZero()); err != nil {
		return nil, err
	}
	values, err := copyVariables(ir.KindAssignVector, inst.Values)
	if err != nil {
		return nil, err
	}
	return &ir.AssignVector{Destination: inst.Destination, Values: values}, nil
}

func checkCalc(kind ir.Kind, t ir.CalculationType, target, op1 ir.Multivector) error {
	if err := checkField(kind, "type", t.Valid()); err != nil {
		return err
	}
	if err := checkField(kind, "target", !target.IsZero()); err != nil {
		return err
	}
	return checkField(kind, "operand1", !op1.IsZero())
}

func (Copier) VisitCalculate(inst *ir.Calculate, _ any) (any, error) {
	if err := checkCalc(ir.KindCalculate, inst.Type, inst.Target, inst.Operand1); err != nil {
		return nil, err
	}
	return &ir.Calculate{
		Type:     inst.Type,
		Target:   inst.Target,
		Operand1: inst.Operand1,
		Operand2: inst.Operand2,
		Used1:    inst.Used1.Clone(),
		Used2:    inst.Used2.Clone(),
	}, nil
}

func (Copier) VisitCalculateMv(inst *ir.CalculateMv, _ any) (any, error) {
	if err := checkCalc(ir.KindCalculateMv, inst.Type, inst.Target, inst.Operand1); err != nil {
		return nil, err
	}
	return &ir.CalculateMv{
		Type:     inst.Type,
		Target:   inst.Target,
		Operand1: inst.Operand1,
		Operand2: inst.Operand2,
	}, nil
}
