// Package parser turns the textual operand encoding of GAPP instructions
// into populated instructions.
//
// The parser is an ir.Visitor: a pass allocates an empty shell with
// ir.NewInstruction and calls Parse, which dispatches on the shell's
// variant and fills its fields from the text.
//
// Grammar, per variant (whitespace around '=' and inside lists is trimmed):
//
//	resetMv       name
//	setMv, addMv  dst[s,...] = src[s,...]
//	assignMv      dst[s,...] = tok,tok,...
//	dotVectors    dst[s] = <v,v,...>
//	setVector     vec = src[s,...]
//	assignVector  vec = tok,tok,...
//	calculate     t = OP(a[s,...][,b[s,...]])
//	calculateMv   t = OP(a[,b])
//
// A selector s is a non-negative integer, optionally prefixed with '-'
// for a negative sign. The first '=' splits an equation.
//
// Names are never interpreted by the parser itself. Every multivector,
// vector and operand token is handed to a Resolver, so the same grammar
// serves different naming scopes.
//
// Errors are reported as *ParseError. A failed parse leaves the shell
// untouched.
package parser
