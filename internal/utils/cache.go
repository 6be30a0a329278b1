package utils

import (
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheItem 包装缓存值和过期时间
type cacheItem[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache 带 TTL 的本地 LRU 缓存
type Cache[V any] struct {
	lruCache *lru.Cache[string, cacheItem[V]]
}

// NewCache 创建指定容量的缓存
func NewCache[V any](size int) *Cache[V] {
	l, err := lru.New[string, cacheItem[V]](size)
	if err != nil {
		log.Fatalf("创建 LRU 缓存失败: %v", err)
	}
	return &Cache[V]{lruCache: l}
}

// Set 写入缓存，ttl 过后失效
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	c.lruCache.Add(key, cacheItem[V]{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
}

// Get 读取缓存，不存在或已过期返回零值和 false
func (c *Cache[V]) Get(key string) (V, bool) {
	item, ok := c.lruCache.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	if time.Now().After(item.expiresAt) {
		c.lruCache.Remove(key)
		var zero V
		return zero, false
	}
	return item.value, true
}

// Delete 删除指定缓存
func (c *Cache[V]) Delete(key string) {
	c.lruCache.Remove(key)
}
