package parser

import (
	"strconv"
	"strings"

	"github.com/roach88/gapp/internal/ir"
)

// Resolver maps names found in instruction text to IR values.
// It is implemented by the symbol table of the enclosing pass; an unknown
// name is reported by returning an error.
type Resolver interface {
	ResolveMultivector(name string) (ir.Multivector, error)
	ResolveVector(name string) (ir.Vector, error)
	// ResolveOperand resolves one token of an assignment right-hand side:
	// a variable, a literal constant or a multivector component.
	ResolveOperand(token string) (ir.Operand, error)
}

// Parser populates instruction shells from their textual encoding.
// The arg passed to Accept must be the instruction text; the visit
// result is always nil.
type Parser struct {
	resolver Resolver
}

var _ ir.Visitor = (*Parser)(nil)

// New creates a parser resolving names through r.
func New(r Resolver) *Parser {
	return &Parser{resolver: r}
}

// Resolver returns the resolver used for names.
func (p *Parser) Resolver() Resolver {
	return p.resolver
}

// Parse fills inst from text. On error inst is left unchanged.
func (p *Parser) Parse(inst ir.Instruction, text string) error {
	_, err := inst.Accept(p, text)
	return err
}

// ParseNew allocates a shell of the given kind and parses text into it.
func (p *Parser) ParseNew(kind ir.Kind, text string) (ir.Instruction, error) {
	inst, err := ir.NewInstruction(kind)
	if err != nil {
		return nil, err
	}
	if err := p.Parse(inst, text); err != nil {
		return nil, err
	}
	return inst, nil
}

func textArg(kind ir.Kind, arg any) (string, error) {
	text, ok := arg.(string)
	if !ok {
		return "", &ParseError{Code: ErrCodeBadArgument, Instruction: kind, Message: "argument must be the instruction text"}
	}
	return text, nil
}

func (p *Parser) multivector(name string) (ir.Multivector, error) {
	if name == "" {
		return ir.Multivector{}, newError(ErrCodeEmptyName, "missing multivector name")
	}
	mv, err := p.resolver.ResolveMultivector(name)
	if err != nil {
		return ir.Multivector{}, &ParseError{Code: ErrCodeUnresolved, Message: "unknown multivector " + strconv.Quote(name), Err: err}
	}
	return mv, nil
}

func (p *Parser) vector(name string) (ir.Vector, error) {
	if name == "" {
		return ir.Vector{}, newError(ErrCodeEmptyName, "missing vector name")
	}
	v, err := p.resolver.ResolveVector(name)
	if err != nil {
		return ir.Vector{}, &ParseError{Code: ErrCodeUnresolved, Message: "unknown vector " + strconv.Quote(name), Err: err}
	}
	return v, nil
}

// multivectorTerm parses "name[...]" and resolves the name.
func (p *Parser) multivectorTerm(s string) (ir.Multivector, ir.Selectorset, error) {
	name, sels, err := splitSelectorTerm(s)
	if err != nil {
		return ir.Multivector{}, nil, err
	}
	mv, err := p.multivector(name)
	if err != nil {
		return ir.Multivector{}, nil, err
	}
	return mv, sels, nil
}

// variables resolves each token of a comma separated operand list.
func (p *Parser) variables(s string) (ir.Variableset, error) {
	tokens, err := splitList(s)
	if err != nil {
		return nil, err
	}
	values := make(ir.Variableset, 0, len(tokens))
	for _, tok := range tokens {
		op, err := p.resolver.ResolveOperand(tok)
		if err != nil {
			return nil, &ParseError{Code: ErrCodeUnresolved, Message: "unknown operand " + strconv.Quote(tok), Err: err}
		}
		values = append(values, op)
	}
	return values, nil
}

// calcOperand parses a calculate operand, "a" or "a[...]".
func (p *Parser) calcOperand(s string) (ir.Multivector, ir.Selectorset, error) {
	if strings.ContainsRune(s, '[') {
		return p.multivectorTerm(s)
	}
	mv, err := p.multivector(s)
	return mv, nil, err
}

func (p *Parser) VisitResetMv(inst *ir.ResetMv, arg any) (any, error) {
	text, err := textArg(ir.KindResetMv, arg)
	if err != nil {
		return nil, err
	}
	dst, err := p.multivector(strings.TrimSpace(text))
	if err != nil {
		return nil, annotate(err, ir.KindResetMv, text)
	}
	inst.Destination = dst
	return nil, nil
}

// selectorCopy parses the shared setMv/addMv form.
func (p *Parser) selectorCopy(text string) (dst, src ir.Multivector, selDst, selSrc ir.Selectorset, err error) {
	lhs, rhs, err := splitEquation(text)
	if err != nil {
		return
	}
	if dst, selDst, err = p.multivectorTerm(lhs); err != nil {
		return
	}
	src, selSrc, err = p.multivectorTerm(rhs)
	return
}

func (p *Parser) VisitSetMv(inst *ir.SetMv, arg any) (any, error) {
	text, err := textArg(ir.KindSetMv, arg)
	if err != nil {
		return nil, err
	}
	dst, src, selDst, selSrc, err := p.selectorCopy(text)
	if err != nil {
		return nil, annotate(err, ir.KindSetMv, text)
	}
	inst.Destination, inst.Source = dst, src
	inst.SelectorsDest, inst.SelectorsSrc = selDst, selSrc
	return nil, nil
}

func (p *Parser) VisitAddMv(inst *ir.AddMv, arg any) (any, error) {
	text, err := textArg(ir.KindAddMv, arg)
	if err != nil {
		return nil, err
	}
	dst, src, selDst, selSrc, err := p.selectorCopy(text)
	if err != nil {
		return nil, annotate(err, ir.KindAddMv, text)
	}
	inst.Destination, inst.Source = dst, src
	inst.SelectorsDest, inst.SelectorsSrc = selDst, selSrc
	return nil, nil
}

func (p *Parser) VisitAssignMv(inst *ir.AssignMv, arg any) (any, error) {
	text, err := textArg(ir.KindAssignMv, arg)
	if err != nil {
		return nil, err
	}
	fail := func(err error) (any, error) { return nil, annotate(err, ir.KindAssignMv, text) }

	lhs, rhs, err := splitEquation(text)
	if err != nil {
		return fail(err)
	}
	dst, sels, err := p.multivectorTerm(lhs)
	if err != nil {
		return fail(err)
	}
	values, err := p.variables(rhs)
	if err != nil {
		return fail(err)
	}
	inst.Destination, inst.Selectors, inst.Values = dst, sels, values
	return nil, nil
}

func (p *Parser) VisitDotVectors(inst *ir.DotVectors, arg any) (any, error) {
	text, err := textArg(ir.KindDotVectors, arg)
	if err != nil {
		return nil, err
	}
	fail := func(err error) (any, error) { return nil, annotate(err, ir.KindDotVectors, text) }

	lhs, rhs, err := splitEquation(text)
	if err != nil {
		return fail(err)
	}
	dst, sels, err := p.multivectorTerm(lhs)
	if err != nil {
		return fail(err)
	}
	if len(sels) != 1 {
		return fail(newError(ErrCodeDestSelector, "destination needs exactly one selector, got %d", len(sels)))
	}

	if len(rhs) < 2 || rhs[0] != '<' || rhs[len(rhs)-1] != '>' {
		return fail(newError(ErrCodeBadDotProduct, "right-hand side must be <v1,v2,...>, got %q", rhs))
	}
	inner := strings.TrimSpace(rhs[1 : len(rhs)-1])
	if inner == "" {
		return fail(newError(ErrCodeBadDotProduct, "dot product without vectors"))
	}
	names, err := splitList(inner)
	if err != nil {
		return fail(err)
	}
	parts := make([]ir.Vector, 0, len(names))
	for _, name := range names {
		v, err := p.vector(name)
		if err != nil {
			return fail(err)
		}
		parts = append(parts, v)
	}

	inst.Destination, inst.DestSelector, inst.Parts = dst, sels[0], parts
	return nil, nil
}

func (p *Parser) VisitSetVector(inst *ir.SetVector, arg any) (any, error) {
	text, err := textArg(ir.KindSetVector, arg)
	if err != nil {
		return nil, err
	}
	fail := func(err error) (any, error) { return nil, annotate(err, ir.KindSetVector, text) }

	lhs, rhs, err := splitEquation(text)
	if err != nil {
		return fail(err)
	}
	dst, err := p.vector(lhs)
	if err != nil {
		return fail(err)
	}
	src, sels, err := p.multivectorTerm(rhs)
	if err != nil {
		return fail(err)
	}
	inst.Destination, inst.Source, inst.SelectorsSrc = dst, src, sels
	return nil, nil
}

func (p *Parser) VisitAssignVector(inst *ir.AssignVector, arg any) (any, error) {
	text, err := textArg(ir.KindAssignVector, arg)
	if err != nil {
		return nil, err
	}
	fail := func(err error) (any, error) { return nil, annotate(err, ir.KindAssignVector, text) }

	lhs, rhs, err := splitEquation(text)
	if err != nil {
		return fail(err)
	}
	dst, err := p.vector(lhs)
	if err != nil {
		return fail(err)
	}
	values, err := p.variables(rhs)
	if err != nil {
		return fail(err)
	}
	inst.Destination, inst.Values = dst, values
	return nil, nil
}

func (p *Parser) VisitCalculate(inst *ir.Calculate, arg any) (any, error) {
	text, err := textArg(ir.KindCalculate, arg)
	if err != nil {
		return nil, err
	}
	fail := func(err error) (any, error) { return nil, annotate(err, ir.KindCalculate, text) }

	lhs, rhs, err := splitEquation(text)
	if err != nil {
		return fail(err)
	}
	target, err := p.multivector(lhs)
	if err != nil {
		return fail(err)
	}
	c, err := parseCall(rhs)
	if err != nil {
		return fail(err)
	}

	out := ir.Calculate{Type: c.op, Target: target}
	if out.Operand1, out.Used1, err = p.calcOperand(c.args[0]); err != nil {
		return fail(err)
	}
	if len(c.args) == 2 {
		if out.Operand2, out.Used2, err = p.calcOperand(c.args[1]); err != nil {
			return fail(err)
		}
	}
	*inst = out
	return nil, nil
}

func (p *Parser) VisitCalculateMv(inst *ir.CalculateMv, arg any) (any, error) {
	text, err := textArg(ir.KindCalculateMv, arg)
	if err != nil {
		return nil, err
	}
	fail := func(err error) (any, error) { return nil, annotate(err, ir.KindCalculateMv, text) }

	lhs, rhs, err := splitEquation(text)
	if err != nil {
		return fail(err)
	}
	target, err := p.multivector(lhs)
	if err != nil {
		return fail(err)
	}
	c, err := parseCall(rhs)
	if err != nil {
		return fail(err)
	}

	out := ir.CalculateMv{Type: c.op, Target: target}
	if out.Operand1, err = p.multivector(c.args[0]); err != nil {
		return fail(err)
	}
	if len(c.args) == 2 {
		if out.Operand2, err = p.multivector(c.args[1]); err != nil {
			return fail(err)
		}
	}
	*inst = out
	return nil, nil
}

