// Package kvs provides the key-value stores backing the runner's cached
// query results.
package kvs

import (
	"errors"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/mgutz/logxi"
)

var logger logxi.Logger

func init() {
	logger = logxi.New("mysqlstmt.kvs")
}

// KeyValueStore is simple key value storage with per-key expiry.
type KeyValueStore interface {
	Set(key, value string, ttl time.Duration) error
	Get(key string) (string, error)
	Del(key string) error
	FlushDB() error
}

// TTLNever means do not expire a key.
const TTLNever time.Duration = -1

// ErrNotFound is returned when a key is not in the store.
var ErrNotFound = errors.New("key not found")

// Hash returns a short hash of s, useful as a cache key for SQL text.
func Hash(s string) string {
	h := fnv.New32a()
	h.Write([]byte(s))
	return strconv.FormatUint(uint64(h.Sum32()), 16)
}
