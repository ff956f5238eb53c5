package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/barbeariapro/barbearia-api/internal/cache"
	"github.com/barbeariapro/barbearia-api/internal/config"
	dbpkg "github.com/barbeariapro/barbearia-api/internal/db"
	"github.com/barbeariapro/barbearia-api/internal/keepalive"
	"github.com/barbeariapro/barbearia-api/internal/metrics"
	"github.com/barbeariapro/barbearia-api/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	metrics.Init()

	cacheClient, err := cache.NewClient(cfg)
	if err != nil {
		// Sem Redis a API funciona direto no banco, só perde o cache.
		log.Println("redis unavailable, running without cache:", err)
		cacheClient = nil
	}

	keepalive.New(db, cacheClient).Start(context.Background())

	r := gin.Default()
	routes.RegisterRoutes(r, db, cfg, cacheClient)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
