package oracle

import (
	"context"
	"crypto/rand"
	"encoding/binary"
)

// Crypto answers randomness requests locally from crypto/rand. The seed is
// only a request tag and does not affect the value
type Crypto struct{}

// Random returns a uniformly random value
func (c Crypto) Random(_ context.Context, _ uint64) (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint64(b[:]), nil
}
