package pc

import (
	"fmt"
	"math/bits"
	"strconv"
)

// Hash is the bit-packed encoding of a field and its cleared line count.
// It is not a cryptographic hash.
type Hash uint64

// MaxHash is the largest hash a Width x PlayHeight field can encode.
const MaxHash Hash = 1<<(Width*PlayHeight) - 1

func (h Hash) String() string {
	return strconv.FormatUint(uint64(h), 10)
}

// Minos counts the occupied cells the hash accounts for, cleared rows
// included.
func (h Hash) Minos() int {
	return bits.OnesCount64(uint64(h))
}

// Validate reports whether h could have been produced by placing whole pieces
// on an empty field.
func (h Hash) Validate() error {
	if h > MaxHash {
		return fmt.Errorf("%w: %d exceeds %d", ErrInvalidHash, h, MaxHash)
	}
	if n := h.Minos(); n%PieceSize != 0 {
		return fmt.Errorf("%w: %d has %d minos, not a multiple of %d",
			ErrInvalidHash, h, n, PieceSize)
	}
	return nil
}

// ParseHash parses a decimal hash and validates it.
func ParseHash(s string) (Hash, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHash, s)
	}
	h := Hash(v)
	if err := h.Validate(); err != nil {
		return 0, err
	}
	return h, nil
}
