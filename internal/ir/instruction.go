package ir

import "fmt"

// Kind identifies an instruction variant.
type Kind int

const (
	KindInvalid Kind = iota
	KindResetMv
	KindSetMv
	KindAddMv
	KindAssignMv
	KindDotVectors
	KindSetVector
	KindAssignVector
	KindCalculate
	KindCalculateMv
)

// Kinds lists every instruction variant in declaration order.
var Kinds = []Kind{
	KindResetMv,
	KindSetMv,
	KindAddMv,
	KindAssignMv,
	KindDotVectors,
	KindSetVector,
	KindAssignVector,
	KindCalculate,
	KindCalculateMv,
}

var mnemonics = map[Kind]string{
	KindResetMv:      "resetMv",
	KindSetMv:        "setMv",
	KindAddMv:        "addMv",
	KindAssignMv:     "assignMv",
	KindDotVectors:   "dotVectors",
	KindSetVector:    "setVector",
	KindAssignVector: "assignVector",
	KindCalculate:    "calculate",
	KindCalculateMv:  "calculateMv",
}

// Mnemonic returns the textual instruction name, e.g. "assignMv".
func (k Kind) Mnemonic() string {
	if m, ok := mnemonics[k]; ok {
		return m
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) String() string {
	return k.Mnemonic()
}

// ParseKind resolves a mnemonic to its Kind.
func ParseKind(mnemonic string) (Kind, error) {
	for k, m := range mnemonics {
		if m == mnemonic {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("unknown instruction %q", mnemonic)
}

// Instruction is a sealed interface implemented by the GAPP variants.
//
// Fields are mutable while an instruction is being constructed or parsed.
// Later passes treat instructions as immutable and transform copies.
type Instruction interface {
	// Kind returns the variant tag.
	Kind() Kind

	// Accept dispatches to the Visitor method of the variant.
	Accept(v Visitor, arg any) (any, error)

	instruction() // Sealed
}

// NewInstruction allocates an empty shell of the given kind, ready to be
// populated by a parser. Returns an error for KindInvalid or unknown kinds.
func NewInstruction(kind Kind) (Instruction, error) {
	switch kind {
	case KindResetMv:
		return &ResetMv{}, nil
	case KindSetMv:
		return &SetMv{}, nil
	case KindAddMv:
		return &AddMv{}, nil
	case KindAssignMv:
		return &AssignMv{}, nil
	case KindDotVectors:
		return &DotVectors{}, nil
	case KindSetVector:
		return &SetVector{}, nil
	case KindAssignVector:
		return &AssignVector{}, nil
	case KindCalculate:
		return &Calculate{}, nil
	case KindCalculateMv:
		return &CalculateMv{}, nil
	default:
		return nil, fmt.Errorf("cannot allocate instruction of kind %v", kind)
	}
}

// ResetMv clears all components of a multivector.
type ResetMv struct {
	Destination Multivector
}

// SetMv copies selected source components into selected destination
// components. SelectorsDest and SelectorsSrc pair positionally.
type SetMv struct {
	Destination   Multivector
	Source        Multivector
	SelectorsDest Selectorset
	SelectorsSrc  Selectorset
}

// AddMv accumulates selected source components onto selected destination
// components. Same layout as SetMv.
type AddMv struct {
	Destination   Multivector
	Source        Multivector
	SelectorsDest Selectorset
	SelectorsSrc  Selectorset
}

// AssignMv assigns operands to selected destination components.
// Selectors and Values pair positionally.
type AssignMv struct {
	Destination Multivector
	Selectors   Selectorset
	Values      Variableset
}

// DotVectors stores the dot product of Parts into one destination component.
type DotVectors struct {
	Destination  Multivector
	DestSelector Selector
	Parts        []Vector
}

// SetVector builds a vector from selected components of a multivector.
type SetVector struct {
	Destination  Vector
	Source       Multivector
	SelectorsSrc Selectorset
}

// AssignVector builds a vector from operands.
type AssignVector struct {
	Destination Vector
	Values      Variableset
}

// Calculate applies an operator to the selected components of one or two
// operands. Operand2 and Used2 are empty for unary operators.
type Calculate struct {
	Type     CalculationType
	Target   Multivector
	Operand1 Multivector
	Operand2 Multivector
	Used1    Selectorset
	Used2    Selectorset
}

// CalculateMv applies an operator to whole multivectors.
// Operand2 is empty for unary operators.
type CalculateMv struct {
	Type     CalculationType
	Target   Multivector
	Operand1 Multivector
	Operand2 Multivector
}

// Unary reports whether the instruction has a single operand.
func (c *Calculate) Unary() bool { return c.Operand2.IsZero() }

// Unary reports whether the instruction has a single operand.
func (c *CalculateMv) Unary() bool { return c.Operand2.IsZero() }

func (*ResetMv) instruction()      {}
func (*SetMv) instruction()        {}
func (*AddMv) instruction()        {}
func (*AssignMv) instruction()     {}
func (*DotVectors) instruction()   {}
func (*SetVector) instruction()    {}
func (*AssignVector) instruction() {}
func (*Calculate) instruction()    {}
func (*CalculateMv) instruction()  {}

func (*ResetMv) Kind() Kind      { return KindResetMv }
func (*SetMv) Kind() Kind        { return KindSetMv }
func (*AddMv) Kind() Kind        { return KindAddMv }
func (*AssignMv) Kind() Kind     { return KindAssignMv }
func (*DotVectors) Kind() Kind   { return KindDotVectors }
func (*SetVector) Kind() Kind    { return KindSetVector }
func (*AssignVector) Kind() Kind { return KindAssignVector }
func (*Calculate) Kind() Kind    { return KindCalculate }
func (*CalculateMv) Kind() Kind  { return KindCalculateMv }
