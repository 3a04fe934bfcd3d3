package bootstrap

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/emergent-labs/coder-backend/internal/api/http"
	"github.com/emergent-labs/coder-backend/internal/api/http/middleware"
	"github.com/emergent-labs/coder-backend/internal/deployment"
	deployrepo "github.com/emergent-labs/coder-backend/internal/deployment/repository"
	"github.com/emergent-labs/coder-backend/internal/execution"
	"github.com/emergent-labs/coder-backend/internal/generation"
	"github.com/emergent-labs/coder-backend/internal/history"
	"github.com/emergent-labs/coder-backend/internal/projects"
)

type RouterDeps struct {
	ServiceName string
	Version     string

	Store     *projects.Store
	Generator *generation.Service
	Runner    *execution.Runner
	Deployer  *deployment.Service

	History    *history.Repo
	DeployRepo *deployrepo.Repo

	Redis *redis.Client
	DB    *pgxpool.Pool

	// DeployAPIKey gates the deploy routes when set.
	DeployAPIKey string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id", "X-API-Key"},
		AllowCredentials: false,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Redis, dep.DB)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")
	api.Use(middleware.RequestID())

	api.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": dep.ServiceName + " API",
			"version": dep.Version,
			"features": []string{
				"AI Code Generation",
				"Code Execution",
				"Project Management",
				"Cloud Deployment",
				"Code Analysis",
			},
		})
	})

	generation.Register(api, dep.Generator, dep.History)
	execution.Register(api, dep.Runner, dep.History)
	projects.Register(api.Group("/projects"), dep.Store, dep.Generator)

	deployGroup := api.Group("")
	if dep.DeployAPIKey != "" {
		deployGroup.Use(middleware.APIKey(dep.DeployAPIKey))
	}
	deployment.Register(deployGroup, dep.Deployer, dep.Store, dep.DeployRepo)

	return r
}
