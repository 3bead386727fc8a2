package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"slices"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis answers the commands the store issues from memory, through a
// client hook, so no server is needed.
type fakeRedis struct {
	data map[string][]byte
	down error
}

func (f *fakeRedis) DialHook(redis.DialHook) redis.DialHook {
	return func(context.Context, string, string) (net.Conn, error) {
		return nil, errors.New("fake redis does not dial")
	}
}

func (f *fakeRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (f *fakeRedis) ProcessHook(redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		if f.down != nil {
			cmd.SetErr(f.down)
			return f.down
		}

		args := cmd.Args()
		key := func(i int) string { return fmt.Sprint(args[i]) }

		switch c := cmd.(type) {
		case *redis.StringCmd: // get
			v, ok := f.data[key(1)]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			c.SetVal(string(v))
		case *redis.StatusCmd: // set
			v, _ := args[2].([]byte)
			f.data[key(1)] = slices.Clone(v)
			c.SetVal("OK")
		case *redis.IntCmd: // exists, del, strlen
			switch cmd.Name() {
			case "exists":
				c.SetVal(0)
				if _, ok := f.data[key(1)]; ok {
					c.SetVal(1)
				}
			case "del":
				delete(f.data, key(1))
				c.SetVal(1)
			case "strlen":
				c.SetVal(int64(len(f.data[key(1)])))
			}
		case *redis.ScanCmd:
			prefix := strings.TrimSuffix(key(3), "*")
			var keys []string
			for k := range f.data {
				if strings.HasPrefix(k, prefix) {
					keys = append(keys, k)
				}
			}
			slices.Sort(keys)
			c.SetVal(keys, 0)
		default:
			return fmt.Errorf("fake redis: unsupported command %q", cmd.Name())
		}
		return nil
	}
}

func newFakeRedisStore(t *testing.T, maxValueSize, quota int) (*redisStore, *fakeRedis) {
	t.Helper()
	fake := &fakeRedis{data: map[string][]byte{}}
	client := redis.NewClient(&redis.Options{Addr: "fake:6379"})
	client.AddHook(fake)
	t.Cleanup(func() { _ = client.Close() })
	return newRedisStore(client, maxValueSize, quota), fake
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "bucketsync:1000", redisKey(KeyBucketList))
	assert.Equal(t, "bucketsync:2003", redisKey(BucketKey(3)))
}

func TestNewRedisStore_BadURL(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "http://not-redis", 0, 0)
	assert.Error(t, err)
}

func TestRedisStore_ReadWriteDelete(t *testing.T) {
	ctx := context.Background()
	s, fake := newFakeRedisStore(t, 0, 0)

	ok, err := s.Exists(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Write(ctx, 7, []byte{1, 2, 3}))
	assert.Equal(t, []byte{1, 2, 3}, fake.data["bucketsync:7"])

	ok, err = s.Exists(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := s.Read(ctx, 7, 10)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	n, err := s.SizeOf(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, s.Delete(ctx, 7))
	ok, err = s.Exists(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_MissingKey(t *testing.T) {
	ctx := context.Background()
	s, _ := newFakeRedisStore(t, 0, 0)

	_, err := s.Read(ctx, KeyBucketList, MaxValueSize)
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := s.SizeOf(ctx, BucketKey(4))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRedisStore_ReadTruncatesToMaxLen(t *testing.T) {
	ctx := context.Background()
	s, _ := newFakeRedisStore(t, 0, 0)
	require.NoError(t, s.Write(ctx, 1, []byte{1, 2, 3, 4}))

	data, err := s.Read(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, data)
}

func TestRedisStore_ValueTooLarge(t *testing.T) {
	s, fake := newFakeRedisStore(t, 4, 0)

	err := s.Write(context.Background(), 1, make([]byte, 5))
	assert.ErrorIs(t, err, ErrValueTooLarge)
	assert.Empty(t, fake.data)
}

func TestRedisStore_Quota(t *testing.T) {
	ctx := context.Background()
	s, fake := newFakeRedisStore(t, 0, 10)
	fake.data["other:1"] = make([]byte, 100) // outside the prefix

	require.NoError(t, s.Write(ctx, 1, make([]byte, 6)))
	assert.ErrorIs(t, s.Write(ctx, 2, make([]byte, 5)), ErrStorageFull)

	// replacing a value only counts the new size
	require.NoError(t, s.Write(ctx, 1, make([]byte, 10)))
	assert.Len(t, fake.data["bucketsync:1"], 10)
	assert.NotContains(t, fake.data, "bucketsync:2")
}

func TestRedisStore_ServerErrors(t *testing.T) {
	ctx := context.Background()
	s, fake := newFakeRedisStore(t, 0, 10)
	fake.down = errors.New("connection refused")

	_, err := s.Read(ctx, 1, 1)
	assert.ErrorIs(t, err, fake.down)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Write(ctx, 1, []byte{1}), fake.down)
	assert.ErrorIs(t, s.Delete(ctx, 1), fake.down)
	_, err = s.Exists(ctx, 1)
	assert.ErrorIs(t, err, fake.down)
}
