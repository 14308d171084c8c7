package treewire

import (
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// WriteMsgpack streams the envelope in msgpack framing.
func WriteMsgpack(w io.Writer, t *Tree) error {
	return msgpack.NewEncoder(w).Encode(t)
}

// ReadMsgpack decodes one envelope. Schema validation happens in
// Tree.Core, not here, so callers can still inspect foreign envelopes.
func ReadMsgpack(r io.Reader) (*Tree, error) {
	var t Tree
	if err := msgpack.NewDecoder(r).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// WriteJSON renders the envelope as indented JSON for tooling and the
// --emit json output.
func WriteJSON(w io.Writer, t *Tree) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// ReadJSON decodes one JSON envelope.
func ReadJSON(r io.Reader) (*Tree, error) {
	var t Tree
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}
