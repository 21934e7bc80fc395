package cache

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Loader 按键缓存加载结果。同一个键在任意时刻最多只有一次加载在途，
// 并发调用者等待并共享该次结果；加载失败不会被缓存。
// 配置了 Redis 时结果会同步写入 Redis，供其他实例复用。
type Loader[V any] struct {
	namespace string
	ttl       time.Duration
	redis     *redis.Client

	group   singleflight.Group
	mu      sync.RWMutex
	entries map[string]entry[V]
	// generations 每次 Invalidate 自增，加载开始前后代数不同则结果作废
	generations map[string]uint64
}

// NewLoader ttl <= 0 表示本地缓存不过期。client 可为 nil。
func NewLoader[V any](namespace string, ttl time.Duration, client *redis.Client) *Loader[V] {
	return &Loader[V]{
		namespace: namespace,
		ttl:       ttl,
		redis:     client,
		entries:   make(map[string]entry[V]),

		generations: make(map[string]uint64),
	}
}

// GetOrLoad 命中缓存直接返回，否则调用 load。
func (l *Loader[V]) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) (V, error)) (V, error) {
	if v, ok := l.lookup(key); ok {
		return v, nil
	}

	result, err, _ := l.group.Do(key, func() (interface{}, error) {
		// 等待期间可能已有其他调用完成加载
		if v, ok := l.lookup(key); ok {
			return v, nil
		}
		gen := l.generation(key)
		if v, ok := l.fromRedis(ctx, key); ok {
			l.storeIfCurrent(key, v, gen)
			return v, nil
		}
		v, err := load(ctx)
		if err != nil {
			return v, err
		}
		if l.storeIfCurrent(key, v, gen) {
			l.toRedis(ctx, key, v)
			// 写 Redis 期间发生了失效，撤回刚写入的值
			if l.generation(key) != gen {
				l.delRedis(ctx, key)
			}
		}
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

// Loaded 判断键是否已有未过期的缓存。
func (l *Loader[V]) Loaded(key string) bool {
	_, ok := l.lookup(key)
	return ok
}

// Invalidate 删除本地与 Redis 中的缓存。
// 此时仍在途的加载结果只返回给它的调用者，不会写入缓存。
func (l *Loader[V]) Invalidate(ctx context.Context, key string) {
	l.mu.Lock()
	delete(l.entries, key)
	l.generations[key]++
	l.mu.Unlock()
	l.group.Forget(key)
	l.delRedis(ctx, key)
}

func (l *Loader[V]) delRedis(ctx context.Context, key string) {
	if l.redis == nil {
		return
	}
	if err := l.redis.Del(ctx, RedisKey(l.namespace, key)).Err(); err != nil {
		log.Printf("⚠️ 清除 Redis 缓存失败 %s: %v", key, err)
	}
}

func (l *Loader[V]) generation(key string) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.generations[key]
}

func (l *Loader[V]) lookup(key string) (V, bool) {
	l.mu.RLock()
	e, ok := l.entries[key]
	l.mu.RUnlock()
	if !ok {
		var zero V
		return zero, false
	}
	if l.ttl > 0 && time.Now().After(e.expiresAt) {
		l.mu.Lock()
		// 拿到写锁前可能已被重新写入
		if cur, ok := l.entries[key]; ok && time.Now().After(cur.expiresAt) {
			delete(l.entries, key)
		}
		l.mu.Unlock()
		var zero V
		return zero, false
	}
	return e.value, true
}

// storeIfCurrent 仅当加载开始后没有发生 Invalidate 时写入。
func (l *Loader[V]) storeIfCurrent(key string, v V, gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.generations[key] != gen {
		return false
	}
	l.entries[key] = entry[V]{value: v, expiresAt: time.Now().Add(l.ttl)}
	return true
}

func (l *Loader[V]) fromRedis(ctx context.Context, key string) (V, bool) {
	var v V
	if l.redis == nil {
		return v, false
	}
	raw, err := l.redis.Get(ctx, RedisKey(l.namespace, key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("⚠️ 读取 Redis 缓存失败 %s: %v", key, err)
		}
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Printf("⚠️ 解析 Redis 缓存失败 %s: %v", key, err)
		return v, false
	}
	return v, true
}

func (l *Loader[V]) toRedis(ctx context.Context, key string, v V) {
	if l.redis == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("⚠️ 序列化缓存失败 %s: %v", key, err)
		return
	}
	if err := l.redis.Set(ctx, RedisKey(l.namespace, key), raw, l.ttl).Err(); err != nil {
		log.Printf("⚠️ 写入 Redis 缓存失败 %s: %v", key, err)
	}
}
