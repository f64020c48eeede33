package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Key builds a cache key from a namespace and the parameters of a query.
// Without parts the namespace itself is the key. With parts the key is
// namespace:sha256(json(parts)), so two queries share an entry only when
// their parameters are equal.
//
//	cache.Key("stats")                  // "stats"
//	cache.Key("launches", values)       // "launches:3f9a..."
func Key(namespace string, parts ...any) string {
	if len(parts) == 0 {
		return namespace
	}
	data, err := json.Marshal(parts)
	if err != nil {
		// Unmarshalable parts fall back to their printed form.
		data = []byte(fmt.Sprint(parts...))
	}
	return namespace + ":" + Hash(data)
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
