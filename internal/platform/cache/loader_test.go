package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// 测试内容：验证同一键在首次加载完成前的并发调用只触发一次加载。
func TestLoader_DeduplicatesInFlight(t *testing.T) {
	l := NewLoader[[]string]("test", time.Minute, nil)
	var calls int32
	release := make(chan struct{})
	started := make(chan struct{})

	load := func(ctx context.Context) ([]string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		return []string{"m1"}, nil
	}

	var wg sync.WaitGroup
	results := make([][]string, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = l.GetOrLoad(context.Background(), "p1", load)
	}()
	<-started
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1], _ = l.GetOrLoad(context.Background(), "p1", load)
	}()

	// 给第二个调用者进入等待的时间
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("期望只加载一次，实际为 %d", got)
	}
	for i, r := range results {
		if len(r) != 1 || r[0] != "m1" {
			t.Fatalf("调用者 %d 非预期结果: %v", i, r)
		}
	}
}

// 测试内容：验证已加载的键再次调用直接返回缓存，不再触发加载。
func TestLoader_CachedIsNoop(t *testing.T) {
	l := NewLoader[int]("test", 0, nil)
	var calls int32
	load := func(ctx context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := l.GetOrLoad(context.Background(), "k", load)
		if err != nil || v != 42 {
			t.Fatalf("非预期结果 v=%d err=%v", v, err)
		}
	}
	if calls != 1 {
		t.Fatalf("期望只加载一次，实际为 %d", calls)
	}
	if !l.Loaded("k") {
		t.Fatalf("期望 k 已加载")
	}
}

// 测试内容：验证加载失败不缓存，失效后重新加载。
func TestLoader_ErrorsNotCachedAndInvalidate(t *testing.T) {
	l := NewLoader[int]("test", time.Minute, nil)
	ctx := context.Background()

	_, err := l.GetOrLoad(ctx, "k", func(ctx context.Context) (int, error) {
		return 0, errors.New("network")
	})
	if err == nil {
		t.Fatalf("期望返回加载错误")
	}
	if l.Loaded("k") {
		t.Fatalf("失败结果不应被缓存")
	}

	v, _ := l.GetOrLoad(ctx, "k", func(ctx context.Context) (int, error) { return 1, nil })
	if v != 1 {
		t.Fatalf("期望 1，实际为 %d", v)
	}
	l.Invalidate(ctx, "k")
	v, _ = l.GetOrLoad(ctx, "k", func(ctx context.Context) (int, error) { return 2, nil })
	if v != 2 {
		t.Fatalf("失效后期望重新加载为 2，实际为 %d", v)
	}
}

// 测试内容：验证本地缓存过期后会重新加载。
func TestLoader_TTLExpiry(t *testing.T) {
	l := NewLoader[int]("test", 10*time.Millisecond, nil)
	ctx := context.Background()
	var calls int32
	load := func(ctx context.Context) (int, error) {
		return int(atomic.AddInt32(&calls, 1)), nil
	}

	_, _ = l.GetOrLoad(ctx, "k", load)
	time.Sleep(20 * time.Millisecond)
	v, _ := l.GetOrLoad(ctx, "k", load)
	if v != 2 {
		t.Fatalf("期望过期后重新加载，实际为 %d", v)
	}
}

// 测试内容：验证 Redis 不可达时降级为仅本地缓存，加载照常成功。
func TestLoader_UnreachableRedisDegrades(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})
	defer func() { _ = client.Close() }()

	l := NewLoader[int]("test", time.Minute, client)
	v, err := l.GetOrLoad(context.Background(), "k", func(ctx context.Context) (int, error) { return 7, nil })
	if err != nil || v != 7 {
		t.Fatalf("期望降级后仍返回 7，实际为 v=%d err=%v", v, err)
	}
}

// 测试内容：验证加载途中发生失效时，旧结果只返回给原调用者，不会写入缓存。
func TestLoader_InvalidateDuringLoadDiscardsResult(t *testing.T) {
	l := NewLoader[string]("test", time.Minute, nil)
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan string)
	go func() {
		v, _ := l.GetOrLoad(ctx, "k", func(ctx context.Context) (string, error) {
			close(started)
			<-release
			return "old", nil
		})
		done <- v
	}()

	<-started
	l.Invalidate(ctx, "k")
	close(release)
	if v := <-done; v != "old" {
		t.Fatalf("在途调用者期望拿到 old，实际为 %q", v)
	}
	if l.Loaded("k") {
		t.Fatalf("失效前开始的加载结果不应被缓存")
	}

	v, err := l.GetOrLoad(ctx, "k", func(ctx context.Context) (string, error) { return "new", nil })
	if err != nil || v != "new" {
		t.Fatalf("失效后期望重新加载为 new，实际为 v=%q err=%v", v, err)
	}
}

// 测试内容：验证过期清理不会删除并发刷新后的新条目。
func TestLoader_ExpiredLookupKeepsRefreshedEntry(t *testing.T) {
	l := NewLoader[int]("test", time.Minute, nil)
	l.entries["k"] = entry[int]{value: 1, expiresAt: time.Now().Add(-time.Second)}
	if l.Loaded("k") {
		t.Fatalf("过期条目不应视为已加载")
	}
	if _, ok := l.entries["k"]; ok {
		t.Fatalf("过期条目应被清理")
	}

	if !l.storeIfCurrent("k", 2, l.generation("k")) {
		t.Fatalf("未失效时应写入")
	}
	v, ok := l.lookup("k")
	if !ok || v != 2 {
		t.Fatalf("期望读到刷新后的 2，实际为 v=%d ok=%v", v, ok)
	}
}
