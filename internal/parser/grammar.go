package parser

import (
	"strconv"
	"strings"

	"github.com/roach88/gapp/internal/ir"
)

// ParseSelector parses "3" as (3, +1) and "-3" as (3, -1).
// Surrounding whitespace is ignored; anything else is an error.
func ParseSelector(s string) (ir.Selector, error) {
	t := strings.TrimSpace(s)
	sign := ir.Positive
	if strings.HasPrefix(t, "-") {
		sign = ir.Negative
		t = t[1:]
	}
	if t == "" || t[0] < '0' || t[0] > '9' {
		return ir.Selector{}, newError(ErrCodeBadSelector, "invalid selector %q", s)
	}
	n, err := strconv.Atoi(t)
	if err != nil {
		return ir.Selector{}, &ParseError{Code: ErrCodeBadSelector, Message: "invalid selector " + strconv.Quote(s), Err: err}
	}
	return ir.Selector{Index: n, Sign: sign}, nil
}

// parseSelectorList parses the inside of a [...] term. An empty list
// yields a nil Selectorset.
func parseSelectorList(s string) (ir.Selectorset, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	sels := make(ir.Selectorset, 0, len(parts))
	for _, part := range parts {
		sel, err := ParseSelector(part)
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
	}
	return sels, nil
}

// splitEquation splits on the first '=' and trims both sides.
func splitEquation(text string) (lhs, rhs string, err error) {
	idx := strings.IndexByte(text, '=')
	if idx < 0 {
		return "", "", newError(ErrCodeMissingEquals, "missing '='")
	}
	return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+1:]), nil
}

// splitSelectorTerm splits "name[...]" into its name and selectors.
func splitSelectorTerm(s string) (string, ir.Selectorset, error) {
	t := strings.TrimSpace(s)
	open := strings.IndexByte(t, '[')
	if open < 0 || !strings.HasSuffix(t, "]") {
		return "", nil, newError(ErrCodeBadSelectorTerm, "expected name[selectors], got %q", t)
	}
	name := strings.TrimSpace(t[:open])
	if name == "" {
		return "", nil, newError(ErrCodeEmptyName, "missing name in %q", t)
	}
	sels, err := parseSelectorList(t[open+1 : len(t)-1])
	if err != nil {
		return "", nil, err
	}
	return name, sels, nil
}

// splitList splits a comma separated list and trims each element.
// Empty elements are rejected.
func splitList(s string) ([]string, error) {
	parts := strings.Split(s, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
		if parts[i] == "" {
			return nil, newError(ErrCodeEmptyName, "empty element %d in list %q", i, s)
		}
	}
	return parts, nil
}

// splitTopLevel splits on commas that are not inside [...].
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}

// call is a parsed "OP(arg,...)" expression.
type call struct {
	op   ir.CalculationType
	args []string
}

// parseCall parses an operator application. Only one or two operands
// are accepted.
func parseCall(s string) (call, error) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return call{}, newError(ErrCodeBadCalculation, "expected OPERATOR(operands), got %q", s)
	}
	name := strings.TrimSpace(s[:open])
	op, err := ir.ParseCalculationType(name)
	if err != nil {
		return call{}, &ParseError{Code: ErrCodeUnknownOperator, Message: "unknown operator " + strconv.Quote(name), Err: err}
	}

	inner := strings.TrimSpace(s[open+1 : len(s)-1])
	var args []string
	if inner != "" {
		args = splitTopLevel(inner)
	}
	if len(args) != 1 && len(args) != 2 {
		return call{}, newError(ErrCodeArity, "%s needs one or two operands, got %d", name, len(args))
	}
	for i, a := range args {
		if a == "" {
			return call{}, newError(ErrCodeEmptyName, "empty operand %d", i+1)
		}
	}
	return call{op: op, args: args}, nil
}
