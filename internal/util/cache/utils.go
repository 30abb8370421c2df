package cache_utils

import (
	"context"
	"encoding/json"
	"time"

	"agilcurn/internal/cache"
	"agilcurn/internal/util/logger"

	"github.com/valkey-io/valkey-go"
)

const (
	DefaultCacheTimeout = 10 * time.Second
	DefaultCacheExpiry  = 10 * time.Minute
	DefaultQueueTimeout = 30 * time.Second
)

type CacheUtil[T any] struct {
	client  valkey.Client
	prefix  string
	timeout time.Duration
	expiry  time.Duration
}

func NewCacheUtil[T any](client valkey.Client, prefix string) *CacheUtil[T] {
	return &CacheUtil[T]{
		client:  client,
		prefix:  prefix,
		timeout: DefaultCacheTimeout,
		expiry:  DefaultCacheExpiry,
	}
}

func TestCacheConnection() {
	client := cache.GetCache()
	cacheUtil := NewCacheUtil[string](client, "test:")

	testKey := "connection_test"
	testValue := "valkey_is_working"

	cacheUtil.Set(testKey, &testValue)

	retrievedValue := cacheUtil.Get(testKey)
	if retrievedValue == nil {
		panic("Cache test failed: could not retrieve cached value")
	}

	if *retrievedValue != testValue {
		panic("Cache test failed: retrieved value does not match expected")
	}
}

func (c *CacheUtil[T]) Get(key string) *T {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	cmd := c.client.B().Get().Key(c.prefix + key).Build()
	result := c.client.Do(ctx, cmd)

	if result.Error() != nil {
		return nil
	}

	data, err := result.AsBytes()
	if err != nil {
		return nil
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		logger.GetLogger().Warn("failed to unmarshal cached value", "key", key, "error", err)
		return nil
	}

	return &value
}

func (c *CacheUtil[T]) Set(key string, value *T) {
	if value == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		logger.GetLogger().Warn("failed to marshal value for cache", "key", key, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	cmd := c.client.B().Set().
		Key(c.prefix + key).
		Value(string(data)).
		Ex(c.expiry).
		Build()

	if result := c.client.Do(ctx, cmd); result.Error() != nil {
		logger.GetLogger().Warn("failed to set cache value", "key", key, "error", result.Error())
	}
}

func (c *CacheUtil[T]) Invalidate(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	cmd := c.client.B().Del().Key(c.prefix + key).Build()
	if result := c.client.Do(ctx, cmd); result.Error() != nil {
		logger.GetLogger().Warn("failed to invalidate cache value", "key", key, "error", result.Error())
	}
}
