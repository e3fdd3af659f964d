package testutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/gapp/internal/ir"
)

// Resolver is a permissive name resolver for parser tests.
// Every name resolves except those listed in Unknown. Numeric tokens become
// constants and "name[i]" tokens become multivector components.
type Resolver struct {
	Unknown map[string]bool
}

// NewResolver creates a resolver rejecting the given names.
func NewResolver(unknown ...string) *Resolver {
	r := &Resolver{Unknown: make(map[string]bool, len(unknown))}
	for _, name := range unknown {
		r.Unknown[name] = true
	}
	return r
}

func (r *Resolver) check(name string) error {
	if r.Unknown[name] {
		return fmt.Errorf("unknown name %q", name)
	}
	return nil
}

// ResolveMultivector resolves any name not in Unknown.
func (r *Resolver) ResolveMultivector(name string) (ir.Multivector, error) {
	if err := r.check(name); err != nil {
		return ir.Multivector{}, err
	}
	return ir.MV(name), nil
}

// ResolveVector resolves any name not in Unknown.
func (r *Resolver) ResolveVector(name string) (ir.Vector, error) {
	if err := r.check(name); err != nil {
		return ir.Vector{}, err
	}
	return ir.Vec(name), nil
}

// ResolveOperand resolves literals, components and variables.
func (r *Resolver) ResolveOperand(token string) (ir.Operand, error) {
	if err := r.check(token); err != nil {
		return nil, err
	}
	if v, err := strconv.ParseFloat(token, 64); err == nil {
		return ir.Const(v), nil
	}
	if open := strings.IndexByte(token, '['); open > 0 && strings.HasSuffix(token, "]") {
		idx := token[open+1 : len(token)-1]
		sign := ir.Positive
		if strings.HasPrefix(idx, "-") {
			sign, idx = ir.Negative, idx[1:]
		}
		n, err := strconv.Atoi(idx)
		if err != nil {
			return nil, err
		}
		return &ir.MvComponent{Multivector: ir.MV(token[:open]), Selector: ir.Selector{Index: n, Sign: sign}}, nil
	}
	return ir.Var(token), nil
}
