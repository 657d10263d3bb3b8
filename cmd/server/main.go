package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farmer-market/internal/auth"
	"farmer-market/internal/config"
	httpctl "farmer-market/internal/controllers/http"
	"farmer-market/internal/infra/database"
	"farmer-market/internal/infra/events"
	"farmer-market/internal/infra/kafka"
	"farmer-market/internal/infra/rabbitmq"
	"farmer-market/internal/infra/redisx"
	"farmer-market/internal/infra/uploads"
	"farmer-market/internal/repository/gormrepo"
	"farmer-market/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}
	if err := database.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("db: seed admin: %v", err)
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("uploads: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cache services.SuggestCache
	if cfg.RedisAddr != "" {
		rdb, err := redisx.New(ctx, cfg.RedisAddr)
		if err != nil {
			log.Printf("redis unavailable, suggest cache disabled: %v", err)
		} else {
			defer rdb.Close()
			cache = redisx.NewSuggestCache(rdb)
		}
	}

	publisher := newPublisher(cfg)
	defer publisher.Close()

	users := gormrepo.NewUserRepository(db)
	products := gormrepo.NewProductRepository(db)

	chain := auth.NewChain(
		auth.NewDeveloperProvider(cfg.DevAdminEmail, cfg.DevAdminPassword),
		auth.NewStoreProvider(users),
	)
	cart := services.NewCartService(gormrepo.NewCartRepository(db), products, publisher, cache)

	handler := httpctl.NewHandler(
		services.NewAuthService(users, chain, auth.NewTokenCodec(cfg.SessionSecret, cfg.SessionTTL)),
		services.NewCatalogService(products, uploads.NewStore(cfg.UploadDir, cfg.AllowedImageTypes), cache),
		services.NewSearchService(products, cache),
		cart,
		services.NewReviewService(gormrepo.NewReviewRepository(db), products, cache),
		services.NewNotificationService(gormrepo.NewNotificationRepository(db)),
		services.NewAdminService(users, products, cache),
		httpctl.Options{
			UploadDir:     cfg.UploadDir,
			MaxBodyBytes:  cfg.MaxUploadBytes,
			SecureCookies: cfg.SecureCookies,
		},
	)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if err := handler.RegisterRoutes(r); err != nil {
		log.Fatalf("routes: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting farmer market on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		cart.Wait()
		return err
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// newPublisher picks the order event sink; a broker that cannot be reached
// at boot degrades to dropping events.
func newPublisher(cfg *config.Config) events.Publisher {
	switch cfg.EventsBroker {
	case "rabbitmq":
		pub, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, "market.exchange")
		if err != nil {
			log.Printf("rabbitmq unavailable, events disabled: %v", err)
			return events.NopPublisher{}
		}
		return pub
	case "kafka":
		if len(cfg.KafkaBrokers) == 0 {
			log.Println("KAFKA_BROKERS not set, events disabled")
			return events.NopPublisher{}
		}
		return kafka.NewProducer(cfg.KafkaBrokers, 1024)
	default:
		return events.NopPublisher{}
	}
}
