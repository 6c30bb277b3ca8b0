package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/dondesalimos/donde-salimos/internal/config"
	"github.com/dondesalimos/donde-salimos/internal/database"
	"github.com/dondesalimos/donde-salimos/internal/external"
	"github.com/dondesalimos/donde-salimos/internal/handler"
	"github.com/dondesalimos/donde-salimos/internal/middleware"
	"github.com/dondesalimos/donde-salimos/internal/queue"
	"github.com/dondesalimos/donde-salimos/internal/repository"
	"github.com/dondesalimos/donde-salimos/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("timezone %q: %v", cfg.Timezone, err)
	}

	// Redis is optional: rate limiting and response caching degrade to
	// pass-through middlewares when it is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and caching disabled")
	}

	// Repositories.
	usuarios := repository.NewUsuarioRepo(db)
	tokens := repository.NewTokenRepo(db)
	comercios := repository.NewComercioRepo(db)
	reservas := repository.NewReservaRepo(db)
	resenias := repository.NewReseniaRepo(db)
	publicidades := repository.NewPublicidadRepo(db)
	pagos := repository.NewPagoRepo(db)

	// Checkout provider client; nil disables the pay endpoint.
	var pagosClient *external.PagosClient
	if cfg.PagosBaseURL != "" && cfg.PagosAccessToken != "" {
		pagosClient = external.NewPagosClient(external.PagosConfig{
			BaseURL:     cfg.PagosBaseURL,
			AccessToken: cfg.PagosAccessToken,
			ReturnURL:   cfg.PagosReturnURL,
		})
	} else {
		log.Printf("payments not configured; POST /v1/comercio/publicidades/:id/pagar will return 503")
	}

	// Handlers.
	auth := handler.NewAuthHandler(cfg, usuarios, tokens)
	public := &handler.PublicHandler{
		ComercioRepo:   comercios,
		ReseniaRepo:    resenias,
		PublicidadRepo: publicidades,
	}
	customer := handler.NewCustomerHandler(reservas, comercios, loc)
	reseniaH := handler.NewReseniaHandler(resenias, comercios)
	ownerComercio := handler.NewOwnerComercioHandler(comercios)
	ownerReserva := handler.NewOwnerReservaHandler(reservas, comercios, loc)
	ownerPublicidad := handler.NewOwnerPublicidadHandler(publicidades, pagos, comercios, pagosClient)
	admin := handler.NewAdminHandler(usuarios, comercios, publicidades, resenias, reservas)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Metrics())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterPublic(e, public, ownerPublicidad)
	router.RegisterCustomer(e, customer, reseniaH, cfg.JWTSecret)
	router.RegisterOwner(e, ownerComercio, ownerPublicidad, cfg.JWTSecret)
	router.RegisterOwnerReservations(e, ownerReserva, cfg.JWTSecret)
	router.RegisterAdmin(e, admin, cfg.JWTSecret)

	// Background consumer writing notification log lines; reconnects forever.
	go func() {
		if err := queue.StartNotificacionesConsumer(); err != nil {
			log.Printf("notificaciones consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
