package codec

import "fmt"

// Limit wraps another codec to cap the payload size accepted at Decode
// time; Encode passes through unchanged. Snapshot files live on shared
// disk - a truncation-free but bloated or hostile payload should fail fast
// instead of ballooning memory. MaxDecode <= 0 disables the cap.
type Limit[V any] struct {
	// Inner is the codec being wrapped. Must be set.
	Inner Codec[V]
	// MaxDecode is the largest accepted payload, in bytes.
	MaxDecode int
}

func (c Limit[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }

func (c Limit[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("payload too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
