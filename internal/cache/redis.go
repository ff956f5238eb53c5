package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/barbeariapro/barbearia-api/internal/config"
	"github.com/barbeariapro/barbearia-api/internal/models"
)

const shopTTL = 5 * time.Minute

// Client nil é válido: toda operação vira no-op e a API segue
// funcionando direto no banco quando o Redis está fora.
type Client struct {
	rdb *redis.Client
}

func NewClient(cfg *config.Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

// --------------------------------------------------
// Barbershop por slug (página pública, leitura pesada)
// --------------------------------------------------

func shopKey(slug string) string {
	return fmt.Sprintf("shop:slug:%s", slug)
}

func (c *Client) GetShop(ctx context.Context, slug string) (*models.Barbershop, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, shopKey(slug)).Result()
	if err != nil {
		return nil, false
	}

	var shop models.Barbershop
	if err := json.Unmarshal([]byte(raw), &shop); err != nil {
		return nil, false
	}
	return &shop, true
}

func (c *Client) SetShop(ctx context.Context, shop *models.Barbershop) {
	if c == nil {
		return
	}

	b, err := json.Marshal(shop)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, shopKey(shop.Slug), b, shopTTL)
}

func (c *Client) InvalidateShop(ctx context.Context, slug string) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, shopKey(slug))
}

// --------------------------------------------------
// Settings de branding por tenant
// --------------------------------------------------

func settingsKey(barbershopID uint) string {
	return fmt.Sprintf("settings:shop:%d", barbershopID)
}

func (c *Client) GetSettings(ctx context.Context, barbershopID uint) (map[string]string, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, settingsKey(barbershopID)).Result()
	if err != nil {
		return nil, false
	}

	var out map[string]string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, false
	}
	return out, true
}

func (c *Client) SetSettings(ctx context.Context, barbershopID uint, settings map[string]string) {
	if c == nil {
		return
	}

	b, err := json.Marshal(settings)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, settingsKey(barbershopID), b, shopTTL)
}

func (c *Client) InvalidateSettings(ctx context.Context, barbershopID uint) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, settingsKey(barbershopID))
}
