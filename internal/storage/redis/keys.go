package redis

import (
	"fmt"

	"github.com/mcoot/tictacgo/internal/storage"
)

// Key prefix for all game-related data
const keyPrefix = "tictac"

// redisKey namespaces a logical storage key
func redisKey(key string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, key)
}

// isSessionKey reports whether key is the last-session pointer, which is the
// only key subject to a TTL
func isSessionKey(key string) bool {
	return key == storage.SessionKey
}
