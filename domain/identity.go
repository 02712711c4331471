package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// DocumentID derives the store document id for an article from its canonical
// URL. The store restricts document ids to [A-Za-z0-9_-], so the URL itself
// cannot be the key; a fixed-width digest of it keeps the id deterministic
// per URL, which makes a repeated insert of the same URL collide on id.
// Dedup itself is decided by URL equality on the stored url field, never by
// comparing derived ids.
func DocumentID(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// NumericID derives a compact numeric id from a store document id for
// display contexts. First 8 hex characters of the digest, reduced modulo
// 100000. The result collides across distinct ids at non-negligible
// probability, so it is never used for dedup.
func NumericID(id string) int {
	sum := sha256.Sum256([]byte(id))
	prefix := hex.EncodeToString(sum[:])[:8]
	n, err := strconv.ParseInt(prefix, 16, 64)
	if err != nil {
		return 0
	}
	return int(n % 100000)
}
