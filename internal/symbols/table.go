package symbols

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/gapp/internal/ir"
	"github.com/roach88/gapp/internal/parser"
)

// Mode controls how undeclared names are treated.
type Mode string

const (
	// ModeStrict rejects names that were not declared.
	ModeStrict Mode = "strict"

	// ModePermissive declares names on first use.
	ModePermissive Mode = "permissive"
)

// ValidateMode checks that mode is strict, permissive or empty (strict).
func ValidateMode(mode string) error {
	switch Mode(mode) {
	case ModeStrict, ModePermissive, "":
		return nil
	default:
		return fmt.Errorf("invalid symbol mode %q: must be strict or permissive", mode)
	}
}

// Namespace identifies which kind of symbol a name refers to.
type Namespace string

const (
	NamespaceMultivector Namespace = "multivector"
	NamespaceVector      Namespace = "vector"
	NamespaceVariable    Namespace = "variable"
)

var (
	// ErrUnknownName is matched when a name was never declared.
	ErrUnknownName = errors.New("unknown name")

	// ErrInvalidName is matched when a name is not an identifier.
	ErrInvalidName = errors.New("invalid name")
)

// ResolutionError reports a name that could not be resolved.
type ResolutionError struct {
	Namespace Namespace
	Name      string
	Err       error // ErrUnknownName or ErrInvalidName
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Namespace, e.Name, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Table is a symbol table over the three namespaces.
// It is not safe for concurrent use in permissive mode, since resolving
// may declare names.
type Table struct {
	mode  Mode
	names map[Namespace]map[string]struct{}
}

var _ parser.Resolver = (*Table)(nil)

// NewTable creates an empty table. An empty mode means strict.
func NewTable(mode Mode) *Table {
	if mode == "" {
		mode = ModeStrict
	}
	return &Table{
		mode: mode,
		names: map[Namespace]map[string]struct{}{
			NamespaceMultivector: {},
			NamespaceVector:      {},
			NamespaceVariable:    {},
		},
	}
}

// Mode returns the table's mode.
func (t *Table) Mode() Mode {
	return t.mode
}

// Declare adds names to a namespace. Invalid identifiers are rejected and
// nothing is declared.
func (t *Table) Declare(ns Namespace, names ...string) error {
	set, ok := t.names[ns]
	if !ok {
		return fmt.Errorf("unknown namespace %q", ns)
	}
	for _, name := range names {
		if !isIdentifier(name) {
			return &ResolutionError{Namespace: ns, Name: name, Err: ErrInvalidName}
		}
	}
	for _, name := range names {
		set[name] = struct{}{}
	}
	return nil
}

// Declared reports whether name is declared in ns.
func (t *Table) Declared(ns Namespace, name string) bool {
	_, ok := t.names[ns][name]
	return ok
}

// Names returns the declared names of ns in sorted order.
func (t *Table) Names(ns Namespace) []string {
	out := make([]string, 0, len(t.names[ns]))
	for name := range t.names[ns] {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func (t *Table) lookup(ns Namespace, name string) error {
	if !isIdentifier(name) {
		return &ResolutionError{Namespace: ns, Name: name, Err: ErrInvalidName}
	}
	if t.Declared(ns, name) {
		return nil
	}
	if t.mode == ModePermissive {
		t.names[ns][name] = struct{}{}
		return nil
	}
	return &ResolutionError{Namespace: ns, Name: name, Err: ErrUnknownName}
}

// ResolveMultivector implements parser.Resolver.
func (t *Table) ResolveMultivector(name string) (ir.Multivector, error) {
	if err := t.lookup(NamespaceMultivector, name); err != nil {
		return ir.Multivector{}, err
	}
	return ir.MV(name), nil
}

// ResolveVector implements parser.Resolver.
func (t *Table) ResolveVector(name string) (ir.Vector, error) {
	if err := t.lookup(NamespaceVector, name); err != nil {
		return ir.Vector{}, err
	}
	return ir.Vec(name), nil
}

// ResolveOperand implements parser.Resolver. Tokens starting with a
// digit, sign or '.' and the token NaN are numeric literals, "name[i]" is
// a multivector component and anything else is a variable.
func (t *Table) ResolveOperand(token string) (ir.Operand, error) {
	if token == "" {
		return nil, &ResolutionError{Namespace: NamespaceVariable, Name: token, Err: ErrInvalidName}
	}

	if looksNumeric(token) || token == nanLiteral {
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid literal %q: %w", token, err)
		}
		return ir.Const(v), nil
	}

	if open := strings.IndexByte(token, '['); open >= 0 && strings.HasSuffix(token, "]") {
		name := token[:open]
		if err := t.lookup(NamespaceMultivector, name); err != nil {
			return nil, err
		}
		sel, err := parser.ParseSelector(token[open+1 : len(token)-1])
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", token, err)
		}
		return &ir.MvComponent{Multivector: ir.MV(name), Selector: sel}, nil
	}

	if err := t.lookup(NamespaceVariable, token); err != nil {
		return nil, err
	}
	return ir.Var(token), nil
}

// nanLiteral is how ir.Constant prints NaN. The infinities print with a
// sign and are caught by looksNumeric.
const nanLiteral = "NaN"

func looksNumeric(s string) bool {
	c := s[0]
	return (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.'
}

// isIdentifier accepts [A-Za-z_][A-Za-z0-9_]*.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
