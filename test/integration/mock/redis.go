package mock

import (
	"context"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisConn *redis.Client
var miniRedis *miniredis.Miniredis

// NewRedis returns a client for a process-wide miniredis instance.
func NewRedis() *redis.Client {
	redisConnOnce.Do(func() {
		var err error
		miniRedis, err = miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisConn = redis.NewClient(&redis.Options{Addr: miniRedis.Addr()})
	})
	return redisConn
}

// FastForwardRedis advances miniredis' clock so TTL-bound keys expire.
func FastForwardRedis(d time.Duration) {
	if miniRedis != nil {
		miniRedis.FastForward(d)
	}
}

// ClearRedis removes every key.
func ClearRedis(conn *redis.Client) error {
	return conn.FlushAll(context.TODO()).Err()
}
