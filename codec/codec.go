// Package codec converts keys and values to and from bytes for snapshot
// persistence and byte-backed stores.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
