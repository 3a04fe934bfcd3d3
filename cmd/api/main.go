package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/emergent-labs/coder-backend/config"
	"github.com/emergent-labs/coder-backend/internal/bootstrap"
	"github.com/emergent-labs/coder-backend/internal/deployment"
	deployrepo "github.com/emergent-labs/coder-backend/internal/deployment/repository"
	"github.com/emergent-labs/coder-backend/internal/execution"
	"github.com/emergent-labs/coder-backend/internal/generation"
	"github.com/emergent-labs/coder-backend/internal/history"
	"github.com/emergent-labs/coder-backend/internal/maintenance"
	"github.com/emergent-labs/coder-backend/internal/projects"
)

const serviceName = "coder-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)
	ctx := context.Background()

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Printf("Warning: redis unavailable, history disabled: %v", err)
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	var pool *pgxpool.Pool
	if cfg.Database.DSN != "" {
		pool, err = bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN})
		if err != nil {
			log.Printf("Warning: database unavailable, deployment history disabled: %v", err)
			pool = nil
		} else {
			defer pool.Close()
		}
	}

	store, err := projects.NewStore(cfg.Store.BasePath)
	if err != nil {
		log.Fatalf("project store: %v", err)
	}

	var providers []generation.Provider
	if cfg.Providers.OpenAIKey != "" {
		providers = append(providers, generation.NewOpenAI(cfg.Providers.OpenAIKey))
	}
	if cfg.Providers.AnthropicKey != "" {
		providers = append(providers, generation.NewAnthropic(cfg.Providers.AnthropicKey))
	}
	if cfg.Providers.GroqKey != "" {
		providers = append(providers, generation.NewGroq(cfg.Providers.GroqKey))
	}
	generator := generation.NewService(generation.NewChain(providers...))

	var deployRepo *deployrepo.Repo
	if pool != nil {
		deployRepo = deployrepo.NewRepo(pool)
	}

	sweeper := maintenance.NewSweeper(store.BasePath(), cfg.Store.ExportRetention)
	sweeper.Start()
	defer sweeper.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:  serviceName,
		Version:      cfg.App.Version,
		Store:        store,
		Generator:    generator,
		Runner:       execution.NewRunner(cfg.Exec.Timeout),
		Deployer:     deployment.NewService(cfg.Deploy.VercelToken, cfg.Deploy.NetlifyToken),
		History:      history.NewRepo(rdb),
		DeployRepo:   deployRepo,
		Redis:        rdb,
		DB:           pool,
		DeployAPIKey: cfg.Deploy.APIKey,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	log.Fatal(r.Run(":" + cfg.Server.Port))
}
