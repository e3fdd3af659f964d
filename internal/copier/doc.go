// Package copier implements structural (deep) copying of GAPP instructions.
//
// A copy is structurally equal to its original but shares no mutable
// storage with it: Selectorsets, Variablesets, vector part lists and
// operands are all freshly allocated. Multivector and Vector handles are
// values and are copied as such.
//
// Optimization passes copy an instruction before transforming it so that
// the original graph is never modified through an alias.
//
// Copying an instruction with an unpopulated required field is a contract
// violation and is reported as a *ContractError.
package copier
