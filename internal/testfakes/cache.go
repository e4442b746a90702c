package testfakes

import (
	"context"
	"strings"
	"sync"
	"time"

	"campus_link_server/pkg/errorx"
)

// Cache 缓存服务的内存实现
// 过期时间按绝对时间惰性判断，SubmitTask 同步执行便于测试断言
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value    string
	expireAt time.Time
}

// NewCache 创建空的缓存实现
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

func (c *Cache) get(key string) (string, bool) {
	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if !entry.expireAt.IsZero() && time.Now().After(entry.expireAt) {
		delete(c.entries, key)
		return "", false
	}
	return entry.value, true
}

func expireAt(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return time.Now().Add(ttl)
}

func (c *Cache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, expireAt: expireAt(ttl)}
	return nil
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, _ := c.get(key)
	return value, nil
}

func (c *Cache) GetOrError(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.get(key)
	if !ok {
		return "", errorx.New(errorx.CodeNotFound, "key not found")
	}
	return value, nil
}

func (c *Cache) SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.get(key); ok {
		return false, nil
	}
	c.entries[key] = cacheEntry{value: value, expireAt: expireAt(ttl)}
	return true, nil
}

func (c *Cache) GetDel(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.get(key)
	if !ok {
		return "", errorx.New(errorx.CodeNotFound, "key not found")
	}
	delete(c.entries, key)
	return value, nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *Cache) DeleteByPattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

func (c *Cache) DeleteByPatterns(ctx context.Context, patterns []string) error {
	for _, pattern := range patterns {
		if err := c.DeleteByPattern(ctx, pattern); err != nil {
			return err
		}
	}
	return nil
}

// SubmitTask 同步执行任务，测试里不需要真正的异步队列
func (c *Cache) SubmitTask(action func()) {
	if action != nil {
		action()
	}
}
