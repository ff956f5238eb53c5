package keepalive

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/barbeariapro/barbearia-api/internal/cache"
)

const interval = 4 * time.Minute

// Pinger mantém Postgres e Redis acordados em planos free-tier que
// hibernam conexões ociosas. Falha de ping é logada e ignorada; nunca
// derruba a API.
type Pinger struct {
	db    *gorm.DB
	cache *cache.Client
}

func New(db *gorm.DB, cacheClient *cache.Client) *Pinger {
	return &Pinger{db: db, cache: cacheClient}
}

func (p *Pinger) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.ping(ctx)
			}
		}
	}()
}

func (p *Pinger) ping(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if sqlDB, err := p.db.DB(); err == nil {
		if err := sqlDB.PingContext(pingCtx); err != nil {
			log.Println("keepalive: db ping failed:", err)
		}
	}

	if p.cache != nil {
		if err := p.cache.Ping(pingCtx); err != nil {
			log.Println("keepalive: redis ping failed:", err)
		}
	}
}
