package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"clinica-salud-api/internal/db"
	"clinica-salud-api/internal/handlers"
	"clinica-salud-api/internal/middleware"
	"clinica-salud-api/internal/models"
	"clinica-salud-api/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	port := getenv("PORT", "5000")
	databaseURL := getenv("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	dbConn, err := db.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer dbConn.Close()

	// best-effort schema setup, the statements are idempotent
	if migration, err := os.ReadFile("db/migrations/001_init.sql"); err != nil {
		log.Printf("migration file not found, skipping: %v", err)
	} else if _, err := dbConn.Exec(string(migration)); err != nil {
		log.Printf("migration warning: %v", err)
	}

	st := store.New(dbConn)
	h := handlers.New(st, secret)

	auth := middleware.AuthMiddleware(secret)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleDoctor, models.RoleSecretaria)
	medical := middleware.RequireRoles(models.RoleAdmin, models.RoleDoctor)

	r := chi.NewRouter()
	r.Use(cors)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth, adminOnly)
			r.Post("/auth/register", h.Auth.Register)
			r.Get("/auth/users", h.Auth.ListUsers)
			r.Get("/auth/users/{id}", h.Auth.GetUser)
			r.Put("/auth/users/{id}", h.Auth.UpdateUser)
			r.Delete("/auth/users/{id}", h.Auth.DeleteUser)
		})

		r.Route("/pacientes", func(r chi.Router) {
			r.Use(auth)
			r.Group(func(r chi.Router) {
				r.Use(staff)
				r.Post("/", h.Patients.Create)
				r.Get("/", h.Patients.List)
				r.Get("/{id}", h.Patients.Get)
				r.Put("/{id}", h.Patients.Update)
			})
			// deleting a patient is destructive, admin only
			r.With(adminOnly).Delete("/{id}", h.Patients.Delete)
		})

		r.Route("/servicios", func(r chi.Router) {
			r.Use(auth, adminOnly)
			r.Post("/", h.Services.Create)
			r.Get("/", h.Services.List)
			r.Get("/{id}", h.Services.Get)
			r.Put("/{id}", h.Services.Update)
			r.Delete("/{id}", h.Services.Delete)
		})

		r.Route("/citas", func(r chi.Router) {
			r.Use(auth, medical)
			r.Post("/", h.Appointments.Create)
			r.Get("/", h.Appointments.List)
			r.Get("/{id}", h.Appointments.Get)
			r.Patch("/{id}", h.Appointments.Update)
			r.Put("/{id}", h.Appointments.Update)
			r.Delete("/{id}", h.Appointments.Delete)
		})
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", getenv("CORS_ORIGIN", "*"))
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
