package main

import (
	"log"
	"net/http"

	"github.com/JoelBarbosa07/nomina-variable/config"
	"github.com/JoelBarbosa07/nomina-variable/database"
	"github.com/JoelBarbosa07/nomina-variable/handlers"
	"github.com/JoelBarbosa07/nomina-variable/middleware"
	"github.com/JoelBarbosa07/nomina-variable/models"
	"github.com/JoelBarbosa07/nomina-variable/notify"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database
	if err := database.Init(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize handlers
	notifier := notify.NewNotifier(cfg.WebhookTimeout)
	authHandler := handlers.NewAuthHandler(cfg)
	reportHandler := handlers.NewReportHandler(cfg)
	supervisorHandler := handlers.NewSupervisorHandler(cfg, notifier)

	// Setup router
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           600,
	}))

	router.Route("/api", func(r chi.Router) {
		// Public routes
		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/reset-password", authHandler.ResetPassword)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware)

			r.Post("/work-reports", reportHandler.Create)
			r.Get("/work-reports", reportHandler.List)
			r.Get("/dashboard-stats", reportHandler.DashboardStats)
			r.Patch("/users/{id}/webhook", authHandler.UpdateWebhook)

			// Supervisor only routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleSupervisor))
				r.Get("/supervision-reports", supervisorHandler.List)
				r.Get("/supervision-reports/export", supervisorHandler.Export)
				r.Patch("/work-reports/{id}/approve", supervisorHandler.Approve)
				r.Patch("/work-reports/{id}/reject", supervisorHandler.Reject)
			})
		})
	})

	log.Printf("Server starting on port %s", cfg.ServerPort)
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}
