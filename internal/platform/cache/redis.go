package cache

import (
	"context"
	"encoding/json"
	"time"

	"library_api/internal/domain/model"
	"library_api/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// Connect builds a redis client and verifies it with a ping.
func Connect(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// BookCache is a redis read cache for book-by-id lookups. Cache failures are
// treated as misses; the database stays the source of truth.
type BookCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewBookCache(rdb *redis.Client, ttl time.Duration) *BookCache {
	return &BookCache{rdb: rdb, ttl: ttl}
}

func bookKey(id string) string {
	return "book:" + id
}

func (c *BookCache) Get(ctx context.Context, id string) (*model.Book, bool) {
	data, err := c.rdb.Get(ctx, bookKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	book := &model.Book{}
	if err := json.Unmarshal(data, book); err != nil {
		return nil, false
	}
	return book, true
}

func (c *BookCache) Set(ctx context.Context, book *model.Book) {
	data, err := json.Marshal(book)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, bookKey(book.ID), data, c.ttl)
}

func (c *BookCache) Invalidate(ctx context.Context, id string) {
	c.rdb.Del(ctx, bookKey(id))
}
