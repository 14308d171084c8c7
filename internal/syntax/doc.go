// Package syntax defines the quoted surface tree the parser produces and
// the translator consumes.
//
// The model is homoiconic: every form is data. A Term is an Atom, Int,
// Float, Str, List, Pair or *Node. Nodes follow the {tag, meta, args}
// convention — Args == nil is an identifier occurrence, Args != nil is a
// call shape — so `case`, `defmodule` and friends arrive as ordinary calls
// and only the translator gives them meaning.
package syntax
