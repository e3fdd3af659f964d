// Package compiler turns GAPP program sources into instruction sequences.
//
// Two source forms are accepted.
//
// Text programs hold one statement per line. Blank lines and lines starting
// with '#' or '//' are ignored. A statement is an instruction mnemonic
// followed by its operand encoding, or a declaration:
//
//	multivector x, y, t
//	vector u, v
//	variable y, z
//	assignMv x[0,-1] = y,3.5,z
//	calculateMv t = GP(x,y)
//
// CUE programs carry the same content as data:
//
//	gapp_version: ">=1.0.0"
//	name:         "demo"
//	multivectors: ["x", "y", "t"]
//	variables:    ["y", "z"]
//	instructions: [
//		{assignMv:    "x[0,-1] = y,3.5,z"},
//		{calculateMv: "t = GP(x,y)"},
//	]
//
// Compiling allocates an instruction shell per statement and hands the
// encoding to the parser; names resolve through a symbols.Table.
// Validate checks the compiled instructions against the algebra.
package compiler
