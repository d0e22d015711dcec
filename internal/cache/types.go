package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/dgnsrekt/audiooverview/internal/ttypes"
)

// ErrItemTooLarge is returned when an item exceeds the cache capacity
var ErrItemTooLarge = errors.New("item too large for cache")

// DefaultCapacity bounds a narration's memo at 64 MiB of encoded audio.
const DefaultCapacity = 64 * 1024 * 1024

// Stats holds cache performance metrics
type Stats struct {
	Capacity  int64 // Maximum capacity in bytes
	Size      int64 // Current size in bytes
	ItemCount int64 // Number of items in cache

	Hits      int64
	Misses    int64
	Evictions int64
	HitRate   float64 // hits / (hits + misses)
}

// Key identifies one synthesized line.
type Key struct {
	Engine string
	Model  string
	Voice  ttypes.Voice
	Text   string
}

// String returns a fixed-size digest of the key.
func (k Key) String() string {
	h := sha256.New()
	for _, part := range []string{k.Engine, k.Model, string(k.Voice), k.Text} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
