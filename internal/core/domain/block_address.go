package domain

import "fmt"

// BlockAddress locates a block written to the block value store.
// It is opaque to the model cache: only the store that produced it knows how
// to interpret the fields.
type BlockAddress struct {
	Offset int64 `json:"offset"`
	Length int64 `json:"length"`
}

// IsZero reports whether the address was never assigned.
func (a BlockAddress) IsZero() bool {
	return a.Length == 0
}

// String returns a compact representation, e.g. "@128+64".
func (a BlockAddress) String() string {
	return fmt.Sprintf("@%d+%d", a.Offset, a.Length)
}
