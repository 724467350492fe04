package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher derives and verifies bcrypt password digests. The digest embeds
// the cost and salt, so verification needs no state beyond the digest.
type Hasher struct {
	cost int
}

// NewHasher constructs a Hasher with the given work factor. Costs outside
// the bcrypt range fall back to the library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash derives a digest from the plaintext password.
func (h *Hasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether the plaintext matches the digest. A malformed
// digest counts as a mismatch rather than an error; the underlying
// comparison is constant-time.
func (h *Hasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
