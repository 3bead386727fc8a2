package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "bucketsync:"

// redisScanCount is the page size used when summing stored bytes.
const redisScanCount = 64

type redisStore struct {
	client       *redis.Client
	maxValueSize int
	quota        int
}

// NewRedisStore connects to the Redis server described by the redis:// url.
// A quota of 0 disables the total size limit. The quota is checked before
// each write and is not atomic across several writers to one database.
func NewRedisStore(ctx context.Context, url string, maxValueSize, quota int) (PersistentStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return newRedisStore(client, maxValueSize, quota), nil
}

func newRedisStore(client *redis.Client, maxValueSize, quota int) *redisStore {
	if maxValueSize <= 0 {
		maxValueSize = MaxValueSize
	}
	return &redisStore{client: client, maxValueSize: maxValueSize, quota: quota}
}

func redisKey(key Key) string {
	return fmt.Sprintf("%s%d", redisKeyPrefix, key)
}

func (r *redisStore) Exists(ctx context.Context, key Key) (bool, error) {
	n, err := r.client.Exists(ctx, redisKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %d: %w", key, err)
	}
	return n > 0, nil
}

func (r *redisStore) Read(ctx context.Context, key Key, maxLen int) ([]byte, error) {
	data, err := r.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("read key %d: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %d: %w", key, err)
	}
	if maxLen >= 0 && len(data) > maxLen {
		data = data[:maxLen]
	}
	return data, nil
}

func (r *redisStore) Write(ctx context.Context, key Key, data []byte) error {
	if len(data) > r.maxValueSize {
		return fmt.Errorf("write key %d (%d bytes): %w", key, len(data), ErrValueTooLarge)
	}
	if r.quota > 0 {
		used, err := r.usedBytes(ctx, key)
		if err != nil {
			return err
		}
		if used+len(data) > r.quota {
			return fmt.Errorf("write key %d (%d bytes, %d used of %d): %w", key, len(data), used, r.quota, ErrStorageFull)
		}
	}
	if err := r.client.Set(ctx, redisKey(key), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %d: %w", key, err)
	}
	return nil
}

// usedBytes sums the values stored under the store prefix, except the one
// at skip that a write is about to replace.
func (r *redisStore) usedBytes(ctx context.Context, skip Key) (int, error) {
	skipKey := redisKey(skip)
	used := 0

	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", redisScanCount).Iterator()
	for iter.Next(ctx) {
		if iter.Val() == skipKey {
			continue
		}
		n, err := r.client.StrLen(ctx, iter.Val()).Result()
		if err != nil {
			return 0, fmt.Errorf("redis strlen %s: %w", iter.Val(), err)
		}
		used += int(n)
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("redis scan: %w", err)
	}
	return used, nil
}

func (r *redisStore) Delete(ctx context.Context, key Key) error {
	if err := r.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del %d: %w", key, err)
	}
	return nil
}

func (r *redisStore) SizeOf(ctx context.Context, key Key) (int, error) {
	n, err := r.client.StrLen(ctx, redisKey(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis strlen %d: %w", key, err)
	}
	return int(n), nil
}

func (r *redisStore) Close() error {
	return r.client.Close()
}
