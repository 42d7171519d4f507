package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"notifyhub/internal/config"
	"notifyhub/internal/contenttype"
	"notifyhub/internal/database"
	"notifyhub/internal/domain"
	"notifyhub/internal/middleware"
	"notifyhub/internal/modules/auth"
	"notifyhub/internal/modules/notification"
	jwtsvc "notifyhub/internal/pkg/jwt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(&domain.User{}, &notification.Notification{}); err != nil {
		log.Fatal(err)
	}

	if cfg.ExtraData {
		if err := notification.EnsureExtraDataSupport(db); err != nil {
			log.Fatal(err)
		}
		log.Println("extended data storage enabled")
	}

	registry := contenttype.NewRegistry()
	domain.RegisterEntities(registry, db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(db, j)
	authHandler := auth.NewHandler(authService)

	notifRepo := notification.NewRepository(db)
	notifier := notification.NewNotifier(notifRepo, cfg.ExtraData)
	renderer := notification.NewRenderer(registry)
	notifService := notification.NewService(notifRepo, notifier, renderer)
	notifHandler := notification.NewHandler(notifService, registry)

	r := gin.Default()

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			notification.RegisterRoutes(protected, notifHandler)
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
