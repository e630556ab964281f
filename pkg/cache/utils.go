package cache

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

const maxKeyLen = 200

// Key joins prefix and parts with colons. Over-long keys become the prefix
// plus an md5 of the whole key.
func Key(prefix string, parts ...string) string {
	key := strings.Join(append([]string{prefix}, parts...), ":")
	if len(key) <= maxKeyLen {
		return key
	}
	sum := md5.Sum([]byte(key))
	return prefix + ":" + hex.EncodeToString(sum[:])
}
