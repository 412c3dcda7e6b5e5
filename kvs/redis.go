package kvs

import (
	"time"

	"github.com/garyburd/redigo/redis"
)

const nanosecondsPerMillisecond = 1000000

func newRedisPool(host, password string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     3,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			c, err := redis.Dial("tcp", host)
			if err != nil {
				return nil, err
			}
			if password != "" {
				if _, err := c.Do("AUTH", password); err != nil {
					c.Close()
					return nil, err
				}
			}
			return c, err
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			_, err := c.Do("PING")
			return err
		},
	}
}

// RedisStore is a KeyValueStore backed by Redis. Keys are namespaced so
// multiple services can share an instance.
type RedisStore struct {
	pool *redis.Pool
	ns   string
}

// NewDefaultRedisStore connects to Redis on localhost without a namespace.
func NewDefaultRedisStore() (KeyValueStore, error) {
	return NewRedisStore("", ":6379", "")
}

// NewRedisStore creates a RedisStore with a key namespace.
func NewRedisStore(ns, host, password string) (*RedisStore, error) {
	logger.Info("creating redis pool", "ns", ns, "host", host, "usingPassword", password != "")
	return &RedisStore{ns: ns + ":", pool: newRedisPool(host, password)}, nil
}

// Set sets a key's value with TTL. Use TTLNever to never expire.
func (rs *RedisStore) Set(key, value string, ttl time.Duration) error {
	conn := rs.pool.Get()
	defer conn.Close()

	key = rs.ns + key
	var err error
	if ttl == TTLNever {
		_, err = conn.Do("SET", key, value)
	} else {
		_, err = conn.Do("SET", key, value, "PX", ttl.Nanoseconds()/nanosecondsPerMillisecond)
	}
	return err
}

// Get retrieves the value for key, or ErrNotFound.
func (rs *RedisStore) Get(key string) (string, error) {
	conn := rs.pool.Get()
	defer conn.Close()

	s, err := redis.String(conn.Do("GET", rs.ns+key))
	if err == redis.ErrNil {
		return "", ErrNotFound
	} else if err != nil {
		return "", err
	}
	return s, nil
}

// Del deletes a key.
func (rs *RedisStore) Del(key string) error {
	conn := rs.pool.Get()
	defer conn.Close()

	_, err := conn.Do("DEL", rs.ns+key)
	return err
}

// FlushDB removes all keys, including those of other namespaces.
func (rs *RedisStore) FlushDB() error {
	conn := rs.pool.Get()
	defer conn.Close()

	_, err := conn.Do("FLUSHDB")
	return err
}
