package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "reservation:ratelimit:"

// Config параметры подключения к Redis
type Config struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// Client обёртка над go-redis, используемая для ограничения частоты запросов
type Client struct {
	rdb *goredis.Client
}

// NewClient подключается к Redis и проверяет соединение
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return &Client{rdb: rdb}, nil
}

// NewFromClient оборачивает уже созданный go-redis клиент (без проверки соединения)
func NewFromClient(rdb *goredis.Client) *Client {
	return &Client{rdb: rdb}
}

// Allow увеличивает счётчик ключа в текущем окне и сообщает, не превышен ли лимит
// Окно фиксированное: TTL ставится при первом обращении
func (c *Client) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	fullKey := rateLimitPrefix + key

	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, fullKey)
	pipe.ExpireNX(ctx, fullKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}

	return incr.Val() <= int64(limit), nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
