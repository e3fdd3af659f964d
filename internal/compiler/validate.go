package compiler

import (
	"errors"
	"fmt"

	"github.com/roach88/gapp/internal/copier"
	"github.com/roach88/gapp/internal/ir"
)

// Validation error codes (E100-E199)
const (
	ErrUnpopulated        = "E101" // required field missing
	ErrSelectorRange      = "E102" // selector index outside the algebra basis
	ErrSelectorSign       = "E103" // selector sign not +1 or -1
	ErrAssignArity        = "E104" // selector and value counts differ
	ErrSelectorPairing    = "E105" // destination and source selector counts differ
	ErrCalcArity          = "E106" // operand count does not match the operator
	ErrDotParts           = "E107" // dot product with fewer than two vectors
	ErrEmptySelectors     = "E108" // selector list required but empty
	ErrDuplicateSelector  = "E109" // destination selector written twice
	ErrUnaryUsedSelectors = "E110" // unary calculation with second-operand selectors
)

// ValidationError represents a rule violation in a compiled program.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks every statement of prog. blades is the basis size of the
// algebra; a non-positive value skips range checks.
// Returns all errors found (does not fail-fast).
func Validate(prog *Program, blades int) []ValidationError {
	var errs []ValidationError
	for i, s := range prog.Statements {
		for _, e := range ValidateInstruction(s.Instruction, blades) {
			e.Field = fmt.Sprintf("instructions[%d].%s", i, e.Field)
			e.Line = s.Line
			errs = append(errs, e)
		}
	}
	return errs
}

// ValidateInstruction checks one instruction. Field names in the result are
// relative to the instruction.
func ValidateInstruction(inst ir.Instruction, blades int) []ValidationError {
	if _, err := copier.Copy(inst); err != nil {
		var ce *copier.ContractError
		if errors.As(err, &ce) {
			return []ValidationError{{Field: ce.Field, Message: "required field is not populated", Code: ErrUnpopulated}}
		}
		return []ValidationError{{Field: "instruction", Message: err.Error(), Code: ErrUnpopulated}}
	}

	v := &validator{blades: blades}
	inst.Accept(v, nil)
	return v.errs
}

// validator collects rule violations of a populated instruction.
type validator struct {
	blades int
	errs   []ValidationError
}

var _ ir.Visitor = (*validator)(nil)

func (v *validator) add(code, field, format string, args ...any) {
	v.errs = append(v.errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Code: code})
}

func (v *validator) selector(field string, s ir.Selector) {
	if !s.Sign.Valid() {
		v.add(ErrSelectorSign, field, "sign %d is not +1 or -1", s.Sign)
	}
	if s.Index < 0 || (v.blades > 0 && s.Index >= v.blades) {
		v.add(ErrSelectorRange, field, "index %d outside basis of %d blades", s.Index, v.blades)
	}
}

func (v *validator) selectors(field string, set ir.Selectorset) {
	for i, s := range set {
		v.selector(fmt.Sprintf("%s[%d]", field, i), s)
	}
}

// destination checks a selector list that is written to: non-empty and
// without repeated indices.
func (v *validator) destination(field string, set ir.Selectorset) {
	if len(set) == 0 {
		v.add(ErrEmptySelectors, field, "at least one selector is required")
		return
	}
	seen := make(map[int]bool, len(set))
	for _, s := range set {
		if seen[s.Index] {
			v.add(ErrDuplicateSelector, field, "component %d assigned more than once", s.Index)
		}
		seen[s.Index] = true
	}
}

func (v *validator) values(field string, vs ir.Variableset) {
	for i, op := range vs {
		if c, ok := op.(*ir.MvComponent); ok {
			v.selector(fmt.Sprintf("%s[%d]", field, i), c.Selector)
		}
	}
}

func (v *validator) pairing(dst, src ir.Selectorset) {
	v.destination("selectors_dest", dst)
	v.selectors("selectors_dest", dst)
	v.selectors("selectors_src", src)
	if len(dst) != len(src) {
		v.add(ErrSelectorPairing, "selectors_src", "%d destination selectors but %d source selectors", len(dst), len(src))
	}
}

func (v *validator) calcArity(t ir.CalculationType, unary bool) {
	switch {
	case t.Arity() == 2 && unary:
		v.add(ErrCalcArity, "operand2", "%s needs two operands", t)
	case t.Arity() == 1 && !unary:
		v.add(ErrCalcArity, "operand2", "%s takes one operand", t)
	}
}

func (v *validator) VisitResetMv(*ir.ResetMv, any) (any, error) {
	return nil, nil
}

func (v *validator) VisitSetMv(inst *ir.SetMv, _ any) (any, error) {
	v.pairing(inst.SelectorsDest, inst.SelectorsSrc)
	return nil, nil
}

func (v *validator) VisitAddMv(inst *ir.AddMv, _ any) (any, error) {
	v.pairing(inst.SelectorsDest, inst.SelectorsSrc)
	return nil, nil
}

func (v *validator) VisitAssignMv(inst *ir.AssignMv, _ any) (any, error) {
	v.destination("selectors", inst.Selectors)
	v.selectors("selectors", inst.Selectors)
	v.values("values", inst.Values)
	if len(inst.Selectors) != len(inst.Values) {
		v.add(ErrAssignArity, "values", "%d selectors but %d values", len(inst.Selectors), len(inst.Values))
	}
	return nil, nil
}

func (v *validator) VisitDotVectors(inst *ir.DotVectors, _ any) (any, error) {
	v.selector("dest_selector", inst.DestSelector)
	if len(inst.Parts) < 2 {
		v.add(ErrDotParts, "parts", "dot product needs at least two vectors, got %d", len(inst.Parts))
	}
	return nil, nil
}

func (v *validator) VisitSetVector(inst *ir.SetVector, _ any) (any, error) {
	if len(inst.SelectorsSrc) == 0 {
		v.add(ErrEmptySelectors, "selectors_src", "at least one selector is required")
	}
	v.selectors("selectors_src", inst.SelectorsSrc)
	return nil, nil
}

func (v *validator) VisitAssignVector(inst *ir.AssignVector, _ any) (any, error) {
	if len(inst.Values) == 0 {
		v.add(ErrEmptySelectors, "values", "at least one value is required")
	}
	v.values("values", inst.Values)
	return nil, nil
}

func (v *validator) VisitCalculate(inst *ir.Calculate, _ any) (any, error) {
	v.calcArity(inst.Type, inst.Unary())
	v.selectors("used1", inst.Used1)
	v.selectors("used2", inst.Used2)
	if inst.Unary() && len(inst.Used2) > 0 {
		v.add(ErrUnaryUsedSelectors, "used2", "unary %s has selectors for a second operand", inst.Type)
	}
	return nil, nil
}

func (v *validator) VisitCalculateMv(inst *ir.CalculateMv, _ any) (any, error) {
	v.calcArity(inst.Type, inst.Unary())
	return nil, nil
}
