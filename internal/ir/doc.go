// Package ir provides the GAPP intermediate representation.
//
// GAPP is the back-end instruction set of the geometric-algebra compiler:
// a handful of instructions over multivectors and vectors whose components
// are addressed sparsely through selectors.
//
// This package contains the data model, the visitor contract every
// IR-consuming pass implements, the canonical printer and content
// addressing. All other internal packages import ir; ir imports nothing
// internal.
//
// Key design constraints:
//   - Multivector and Vector handles are values compared by name
//   - Instructions own their Selectorsets and Variablesets exclusively
//   - The instruction set is closed: Visitor has one method per variant,
//     so adding a variant breaks every pass until it handles it
//   - Format is the exact inverse of the parser grammar
package ir
