package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestArtifactKey(t *testing.T) {
	src := "digraph {\n\ta\n}\n"
	tests := []struct {
		name   string
		a, b   [2]string
		wantEq bool
	}{
		{"SameInput", [2]string{src, "svg"}, [2]string{src, "svg"}, true},
		{"DifferentFormat", [2]string{src, "svg"}, [2]string{src, "png"}, false},
		{"DifferentSource", [2]string{src, "svg"}, [2]string{src + " ", "svg"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka := ArtifactKey(tt.a[0], tt.a[1])
			kb := ArtifactKey(tt.b[0], tt.b[1])
			if (ka == kb) != tt.wantEq {
				t.Errorf("keys %s and %s: equal = %v, want %v", ka, kb, ka == kb, tt.wantEq)
			}
		})
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get on empty cache should miss")
	}

	if err := c.Set(ctx, "k", []byte("svg bytes"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "svg bytes" {
		t.Errorf("Get = %q, %v, %v; want svg bytes, true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "k", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v; want miss without error", hit, err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{"Empty", Config{}, "*cache.NullCache", false},
		{"None", Config{Backend: BackendNone}, "*cache.NullCache", false},
		{"File", Config{Backend: BackendFile, Dir: t.TempDir()}, "*cache.FileCache", false},
		{"Unknown", Config{Backend: "memcached"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Open(ctx, tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer c.Close()
			if got := typeName(c); got != tt.want {
				t.Errorf("Open() = %s, want %s", got, tt.want)
			}
		})
	}
}

func typeName(c Cache) string {
	switch c.(type) {
	case *NullCache:
		return "*cache.NullCache"
	case *FileCache:
		return "*cache.FileCache"
	case *RedisCache:
		return "*cache.RedisCache"
	}
	return "unknown"
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	calls := 0
	render := func() ([]byte, error) {
		calls++
		return []byte("png"), nil
	}

	data, cached, err := Fetch(ctx, c, "k", time.Hour, render)
	if err != nil || cached || string(data) != "png" {
		t.Fatalf("first Fetch = %q, %v, %v", data, cached, err)
	}
	data, cached, err = Fetch(ctx, c, "k", time.Hour, render)
	if err != nil || !cached || string(data) != "png" {
		t.Fatalf("second Fetch = %q, %v, %v", data, cached, err)
	}
	if calls != 1 {
		t.Errorf("render called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	_, _, err = Fetch(ctx, c, "other", 0, func() ([]byte, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Errorf("Fetch error = %v, want boom", err)
	}
}

func TestRedisCacheKeys(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	c := newRedisCache(client, "")
	defer c.Close()

	if got := c.key("artifact:abc"); got != "gvmanaged:artifact:abc" {
		t.Errorf("key() = %q", got)
	}
	if got := newRedisCache(client, "tenant:").key("k"); got != "tenant:k" {
		t.Errorf("custom prefix key() = %q", got)
	}
}
