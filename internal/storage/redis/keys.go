package redis

import (
	"fmt"

	"github.com/kmuir/dirtyminds-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "dirtyminds"

// sessionKey returns the Redis key for a Session
func sessionKey(code model.SessionCode) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, code)
}

// riddlePoolKey returns the Redis key for the riddle pool
func riddlePoolKey() string {
	return fmt.Sprintf("%s:riddle_pool", keyPrefix)
}
