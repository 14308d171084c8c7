// Package core defines the lowered tree the translator produces: Kind plus
// a per-kind payload, one Line per node, clause lists shared by every
// dispatch construct, and the ReturnsBoolean static check the boolean-case
// rewrite relies on.
//
// Block-shaped positions (try/after bodies, clause bodies) hold packed flat
// statement lists rather than nested Block nodes.
package core
