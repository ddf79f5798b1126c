package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSecureID returns "<prefix>_<random>" where the random part is
// drawn from crypto/rand over [0-9a-z]. Collisions are not checked.
func GenerateSecureID(prefix string, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("idgen: length must be positive, got %d", length)
	}

	max := big.NewInt(int64(len(idCharset)))
	suffix := make([]byte, length)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("idgen: read random source: %w", err)
		}
		suffix[i] = idCharset[n.Int64()]
	}

	return prefix + "_" + string(suffix), nil
}
