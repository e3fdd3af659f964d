package ir

// Visitor is the double-dispatch contract implemented by every pass that
// consumes instructions. It has one method per instruction variant; the
// meaning of arg and of the result is defined by each implementation.
//
// There is no fallback method. A pass that misses a variant does not compile.
type Visitor interface {
	VisitResetMv(inst *ResetMv, arg any) (any, error)
	VisitSetMv(inst *SetMv, arg any) (any, error)
	VisitAddMv(inst *AddMv, arg any) (any, error)
	VisitAssignMv(inst *AssignMv, arg any) (any, error)
	VisitDotVectors(inst *DotVectors, arg any) (any, error)
	VisitSetVector(inst *SetVector, arg any) (any, error)
	VisitAssignVector(inst *AssignVector, arg any) (any, error)
	VisitCalculate(inst *Calculate, arg any) (any, error)
	VisitCalculateMv(inst *CalculateMv, arg any) (any, error)
}

// Accept implements Instruction.
func (i *ResetMv) Accept(v Visitor, arg any) (any, error) { return v.VisitResetMv(i, arg) }

// Accept implements Instruction.
func (i *SetMv) Accept(v Visitor, arg any) (any, error) { return v.VisitSetMv(i, arg) }

// Accept implements Instruction.
func (i *AddMv) Accept(v Visitor, arg any) (any, error) { return v.VisitAddMv(i, arg) }

// Accept implements Instruction.
func (i *AssignMv) Accept(v Visitor, arg any) (any, error) { return v.VisitAssignMv(i, arg) }

// Accept implements Instruction.
func (i *DotVectors) Accept(v Visitor, arg any) (any, error) { return v.VisitDotVectors(i, arg) }

// Accept implements Instruction.
func (i *SetVector) Accept(v Visitor, arg any) (any, error) { return v.VisitSetVector(i, arg) }

// Accept implements Instruction.
func (i *AssignVector) Accept(v Visitor, arg any) (any, error) { return v.VisitAssignVector(i, arg) }

// Accept implements Instruction.
func (i *Calculate) Accept(v Visitor, arg any) (any, error) { return v.VisitCalculate(i, arg) }

// Accept implements Instruction.
func (i *CalculateMv) Accept(v Visitor, arg any) (any, error) { return v.VisitCalculateMv(i, arg) }
