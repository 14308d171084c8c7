package syntax

import "encoding/json"

// JSON shapes: atoms wrap as {"atom": name} so they stay distinguishable
// from strings; a node's "args": null marks an identifier occurrence.

func (a Atom) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Atom string `json:"atom"`
	}{string(a)})
}

func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key   string `json:"key"`
		Value Term   `json:"value"`
	}{string(p.Key), p.Value})
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Tag    string `json:"tag"`
		Line   uint32 `json:"line"`
		Column uint32 `json:"column"`
		Args   []Term `json:"args"`
	}{string(n.Tag), n.Meta.Line, n.Meta.Column, n.Args})
}

// ToJSON renders a surface tree as indented JSON.
func ToJSON(t Term) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}
