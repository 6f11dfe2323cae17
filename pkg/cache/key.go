package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Key builds a namespaced cache key from the parts that identify an entry.
// The parts are hashed rather than concatenated, so manifest contents and
// whole command lines can serve as identity without producing huge keys:
//
//	Key("metadata", manifestPath, string(manifest))  // "metadata:41ca..."
func Key(namespace string, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return namespace + ":" + hex.EncodeToString(sum[:])
}
