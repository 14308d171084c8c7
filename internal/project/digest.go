package project

import "crypto/sha256"

// Digest is a fixed 256-bit hash, layout-compatible with
// source.File.Hash.
type Digest [32]byte

// HashBytes digests raw content.
func HashBytes(b []byte) Digest {
	return sha256.Sum256(b)
}

// Combine builds a compound key: H(first || rest...). Callers fix the
// order of the parts; the cache relies on it being deterministic.
func Combine(first Digest, rest ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(first[:])
	for _, d := range rest {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
