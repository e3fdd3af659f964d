// Package symbols provides the symbol table used to resolve names in
// GAPP instruction text. Table implements parser.Resolver.
//
// Names fall in three namespaces: multivectors, vectors and scalar
// variables. In strict mode every name must be declared before use; in
// permissive mode a name is declared on first use, which suits ad-hoc
// programs and tests.
package symbols
