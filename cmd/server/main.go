package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/machineapp/machine-backend/internal/config"
	"github.com/machineapp/machine-backend/internal/database"
	"github.com/machineapp/machine-backend/internal/handlers"
	"github.com/machineapp/machine-backend/internal/middleware"
	"github.com/machineapp/machine-backend/internal/routes"
	"github.com/machineapp/machine-backend/internal/services"
	"github.com/machineapp/machine-backend/internal/store"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Connect to PostgreSQL
	log.Printf("Connecting to PostgreSQL...")
	db, err := database.ConnectPostgres(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	redisClient, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	if cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		log.Println("⚠️  WARNING: EMAIL_USER/EMAIL_PASS not set. OTP emails will not be delivered.")
	}

	st := store.New(db)
	sessions := services.NewSessions(redisClient)
	mailer := services.NewMailer(cfg)
	h := handlers.New(st, sessions, mailer, cfg)

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimit(redisClient))

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.Setup(r, h, sessions)

	// Log registered routes for debugging
	log.Println("📋 Registered routes:")
	log.Println("  GET    /health")
	log.Println("  POST   /api/country/create")
	log.Println("  POST   /api/country/list")
	log.Println("  GET    /api/country/{id}")
	log.Println("  POST   /api/country/{id}")
	log.Println("  DELETE /api/country/{id}")
	log.Println("  POST   /api/state/create")
	log.Println("  POST   /api/state/getAllStates")
	log.Println("  GET    /api/state/get/{id}")
	log.Println("  GET    /api/state/{id}")
	log.Println("  POST   /api/state/{id}")
	log.Println("  DELETE /api/state/{id}")
	log.Println("  POST   /api/city/create")
	log.Println("  POST   /api/city/list")
	log.Println("  GET    /api/city/get/{id}")
	log.Println("  GET    /api/city/{id}")
	log.Println("  POST   /api/city/{id}")
	log.Println("  DELETE /api/city/{id}")
	log.Println("  POST   /api/user/create")
	log.Println("  GET    /api/user/{id}")
	log.Println("  POST   /api/user/{id}")
	log.Println("  DELETE /api/user/{id}")
	log.Println("  POST   /api/login/create")
	log.Println("  POST   /api/login/verify-otp")
	log.Println("  POST   /api/password/forget-password")
	log.Println("  POST   /api/password/reset-password")

	log.Printf("🚀 Machine backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
