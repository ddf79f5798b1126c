package jobid

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyOnce sync.Once
	entropyMu   sync.Mutex
	entropy     *ulid.MonotonicEntropy
)

func newEntropy() *ulid.MonotonicEntropy {
	entropyOnce.Do(func() {
		source := rand.NewSource(time.Now().UnixNano())
		entropy = ulid.Monotonic(rand.New(source), 0)
	})
	return entropy
}

// New returns a dl_* ULID string. Safe for concurrent use; the monotonic
// entropy source is not, so mints are serialized.
func New() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), newEntropy())
	return "dl_" + strings.ToLower(id.String())
}

// IsValid reports whether the string is a dl_* ULID.
func IsValid(value string) bool {
	if !strings.HasPrefix(value, "dl_") {
		return false
	}
	_, err := Parse(value)
	return err == nil
}

// Parse strips the dl_ prefix and returns the ULID.
func Parse(value string) (ulid.ULID, error) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "dl_")
	value = strings.TrimPrefix(value, "DL_")
	return ulid.Parse(value)
}
