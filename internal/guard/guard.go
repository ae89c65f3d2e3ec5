// Package guard blocks a caller from ordering the same product twice within
// the duplicate window.
package guard

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// DefaultWindow is how long a claim blocks repeat orders.
const DefaultWindow = 24 * time.Hour

// Guard claims (ip, product) pairs.
type Guard interface {
	// Claim returns true when the key was free (or expired) and is now held
	// for orderID. It returns false when a live claim exists.
	Claim(ctx context.Context, key, orderID string) (bool, error)
	// Release drops a claim, used when the order insert fails after Claim.
	Release(ctx context.Context, key string) error
}

// Key derives the guard key for a caller IP and product. The IP is hashed so
// the guard table does not hold raw addresses.
func Key(ip, productID string) string {
	sum := sha256.Sum256([]byte(ip + "|" + productID))
	return hex.EncodeToString(sum[:])
}
