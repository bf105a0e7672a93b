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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/treenow/treenowbackend/config"
	"github.com/treenow/treenowbackend/database"
	"github.com/treenow/treenowbackend/middleware"
	"github.com/treenow/treenowbackend/routes"
	"github.com/treenow/treenowbackend/store"
	"github.com/treenow/treenowbackend/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := utils.RegisterValidators(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	var st *store.Store
	switch cfg.StoreDriver {
	case "memory":
		log.Println("Using in-memory store, data is lost on restart")
		st = store.NewMemory()
	default:
		client, err := database.Connect(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Disconnect(context.Background())

		db := client.Database(cfg.DatabaseName)
		if err := database.EnsureIndexes(ctx, db); err != nil {
			log.Fatal(err)
		}
		st = store.NewMongo(db)
	}

	//seeding admin user
	if err := utils.SeedAdminUser(ctx, st.Users, cfg); err != nil {
		log.Fatal(err)
	}

	var images utils.ImageStore
	if is, err := utils.NewImageStore(ctx, cfg.Storage); err == nil {
		images = is
	} else if errors.Is(err, utils.ErrStorageDisabled) {
		log.Println("STORAGE_DRIVER not set, image uploads are disabled")
	} else {
		log.Fatal(err)
	}

	r := gin.New()

	allowedOrigins := map[string]bool{}
	for _, origin := range cfg.AllowedOrigins {
		allowedOrigins[origin] = true
	}
	log.Printf("Allowed origins: %v", cfg.AllowedOrigins)
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	routes.Register(r, routes.Deps{
		Store:         st,
		JWTSecret:     cfg.JWTSecret,
		Images:        images,
		FileValidator: utils.NewImageValidator(cfg.Storage.MaxUploadSizeMB),
		AuthLimiter:   middleware.NewRateLimiter(cfg.LoginRatePerMinute),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
