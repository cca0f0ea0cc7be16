package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"tripmate/cmd/fx/config_fx"
	"tripmate/cmd/fx/controllers_fx"
	"tripmate/cmd/fx/db_fx"
	"tripmate/cmd/fx/documents_fx"
	"tripmate/cmd/fx/llm_fx"
	"tripmate/cmd/fx/memcache_fx"
	"tripmate/cmd/fx/planner_fx"
	"tripmate/cmd/fx/prompt_fx"
	"tripmate/cmd/fx/ratelimit_fx"
	"tripmate/internal/api/controllers"
	"tripmate/internal/config"
	"tripmate/pkg/middleware"
)

const ingestScope = "ingest"

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		llm_fx.Module,
		memcache_fx.Module,
		prompt_fx.Module,
		documents_fx.Module,
		planner_fx.Module,
		controllers_fx.Module,
		ratelimit_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	limiter *middleware.RateLimiter,
	plannerController *controllers.PlannerController,
	documentController *controllers.DocumentController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, cfg, limiter, plannerController, documentController)

	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.TraceIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.TraceIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func RegisterRoutes(r *gin.Engine,
	cfg *config.Config,
	limiter *middleware.RateLimiter,
	plannerController *controllers.PlannerController,
	documentController *controllers.DocumentController) {

	secret := []byte(cfg.JWTSecret)

	r.GET("/health", plannerController.HealthHandler)

	api := r.Group("/")
	api.Use(middleware.JWTAuthMiddleware(secret))
	api.Use(middleware.RateLimitMiddleware(limiter))

	plansGroup := api.Group("/plans")
	plansGroup.POST("", plannerController.CreatePlanHandler)
	plansGroup.GET("", plannerController.ListPlansHandler)
	plansGroup.POST("/demo", plannerController.DemoPlanHandler)
	plansGroup.GET("/:id", plannerController.GetPlanHandler)

	api.POST("/itineraries/normalize", plannerController.NormalizeHandler)
	api.GET("/destinations/:destination/tips", plannerController.DestinationTipsHandler)

	documentsGroup := api.Group("/documents")
	documentsGroup.GET("/search", documentController.SearchHandler)
	documentsGroup.POST("", middleware.ScopeMiddleware(secret, ingestScope), documentController.IngestHandler)
}
