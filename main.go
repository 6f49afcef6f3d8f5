package main

import (
	"database/sql"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"scarlett-api/handlers"
	"scarlett-api/initializers"
	"scarlett-api/middleware"
	"scarlett-api/pkg/notify"
	"scarlett-api/pkg/scanner"
	"scarlett-api/repository"
	"scarlett-api/types"
	"scarlett-api/websocket"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

func main() {
	initializers.LoadEnv()

	dbURL := initializers.MustGetenv("DATABASE_URL")

	// The public base URL feeds pagination links and media URLs; without
	// it every listing response would be wrong, so fail at startup.
	publicHost := initializers.MustGetenv("PUBLIC_HOST")
	publicBase, err := url.Parse(publicHost)
	if err != nil || publicBase.Scheme == "" || publicBase.Host == "" {
		log.Fatalf("PUBLIC_HOST must be an absolute URL, got %q", publicHost)
	}

	photosPath := initializers.MustGetenv("PHOTOS_PATH")

	var db *sql.DB
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", dbURL)
		if err == nil {
			err = db.Ping()
			if err == nil {
				break
			}
		}
		log.Printf("DB connection failed: %v, retrying in 2s...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatal("Could not connect to database:", err)
	}
	defer db.Close()

	// Bounded pool: listing requests contend only on the store, and
	// exhaustion should surface as an error instead of hanging forever.
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal("Migration driver error:", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		log.Fatal("Migration init error:", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("Migration failed:", err)
	}

	if err := initializers.InitDefaults(db); err != nil {
		log.Fatal("Failed to initialize default data:", err)
	}

	photosRepo := repository.NewPhotosRepository(db, publicBase)
	collectionsRepo := repository.NewCollectionsRepository(db)
	tagsRepo := repository.NewTagsRepository(db)
	entitiesRepo := repository.NewEntitiesRepository(db)

	// Photos added outside a scan (or before this release) still need
	// shuffle positions before the listing can see them.
	if err := photosRepo.EnsureOrdering(); err != nil {
		log.Fatal("Failed to initialize photo ordering:", err)
	}

	photoLinks, err := types.NewLinkBuilder(publicHost, "/photos")
	if err != nil {
		log.Fatal("Invalid PUBLIC_HOST:", err)
	}

	if os.Getenv("GIN_MODE") == "release" || strings.ToLower(os.Getenv("APP_ENV")) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Structured request ID and JSON access logs
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	// Panic recovery
	r.Use(gin.Recovery())

	// Configure trusted proxies for correct client IP handling in production
	trustedProxies := os.Getenv("TRUSTED_PROXIES")
	if trustedProxies != "" {
		parts := strings.Split(trustedProxies, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if err := r.SetTrustedProxies(parts); err != nil {
			log.Fatalf("Invalid TRUSTED_PROXIES: %v", err)
		}
	} else {
		// Default to loopback only; override via TRUSTED_PROXIES in production
		_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	}

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	hub := websocket.NewHub()
	notifier := &notify.WSNotifier{Hub: hub}

	photosHandler := handlers.NewPhotosHandler(photosRepo, collectionsRepo, photoLinks).WithNotifier(notifier)
	collectionsHandler := handlers.NewCollectionsHandler(collectionsRepo)
	tagsHandler := handlers.NewTagsHandler(tagsRepo)
	entitiesHandler := handlers.NewEntitiesHandler(entitiesRepo)
	scanHandler := handlers.NewScanHandler(scanner.New(photosPath), photosRepo, notifier)

	r.GET("/health", handlers.HealthCheck)
	r.GET("/ws", websocket.ServeWS(hub))

	// photos
	r.GET("/photos", photosHandler.GetPhotos)
	r.GET("/photos/:id", photosHandler.GetPhoto)
	r.DELETE("/photos/:id", photosHandler.DeletePhoto)
	r.POST("/photos/:id/rating/:rating", photosHandler.UpdateRating)
	r.POST("/photos/:id/viewed", photosHandler.UpdateLastViewed)
	r.POST("/photos/:id/tags/:tagId", photosHandler.AddTag)
	r.DELETE("/photos/:id/tags/:tagId", photosHandler.RemoveTag)
	r.POST("/photos/:id/entities/:entityId", photosHandler.AddEntity)
	r.DELETE("/photos/:id/entities/:entityId", photosHandler.RemoveEntity)
	r.POST("/photos/:id/wallpapers/:sizeId", photosHandler.AddWallpaper)
	r.DELETE("/photos/:id/wallpapers/:sizeId", photosHandler.RemoveWallpaper)

	// shuffle ordering reset (administrative)
	r.GET("/resetseed", photosHandler.ResetOrdering)
	r.POST("/resetseed", photosHandler.ResetOrdering)

	// collections
	r.GET("/collections", collectionsHandler.List)
	r.GET("/collections/:id", collectionsHandler.Get)
	r.POST("/collections", collectionsHandler.Create)
	r.PATCH("/collections/:id", collectionsHandler.Update)
	r.DELETE("/collections/:id", collectionsHandler.Delete)

	// tags
	r.GET("/tags", tagsHandler.List)
	r.GET("/tags/search", tagsHandler.Search)
	r.GET("/tags/:id", tagsHandler.Get)
	r.POST("/tags", tagsHandler.Create)
	r.PATCH("/tags/:id", tagsHandler.Update)
	r.DELETE("/tags/:id", tagsHandler.Delete)

	// entities
	r.GET("/entities", entitiesHandler.List)
	r.GET("/entities/:id", entitiesHandler.Get)
	r.POST("/entities", entitiesHandler.Create)
	r.PATCH("/entities/:id", entitiesHandler.Update)
	r.DELETE("/entities/:id", entitiesHandler.Delete)

	// filesystem scan
	r.GET("/scan", scanHandler.Scan)

	r.Run(":8080")
}
