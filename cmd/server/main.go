// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/forohub/go-foro-api/internal/config"
	"github.com/forohub/go-foro-api/internal/domain"
	"github.com/forohub/go-foro-api/internal/handlers"
	"github.com/forohub/go-foro-api/internal/markdown"
	"github.com/forohub/go-foro-api/internal/middleware"
	messagerepo "github.com/forohub/go-foro-api/internal/repository/message"
	topicrepo "github.com/forohub/go-foro-api/internal/repository/topic"
	userrepo "github.com/forohub/go-foro-api/internal/repository/user"
	"github.com/forohub/go-foro-api/internal/services"
	"github.com/forohub/go-foro-api/internal/services/user_services"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Topic{}, &domain.Message{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	logger := services.NewLogger("go_foro_api")

	// --- Repositories ---
	userRepo := userrepo.NewUserRepository(db)
	topicRepo := topicrepo.NewTopicRepository(db)
	messageRepo := messagerepo.NewMessageRepository(db)

	// --- Services ---
	authService := user_services.NewAuthService(
		userRepo,
		cfg.JWTSecretKey,
		time.Duration(cfg.TokenTTLHours)*time.Hour,
		logger,
	)

	topicService, err := services.NewTopicService(topicRepo, messageRepo, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Topic Service: %v", err)
	}

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	topicHandler := handlers.NewTopicHandler(topicService, markdown.NewRenderer())

	// --- Router Setup ---
	r := mux.NewRouter()
	authMiddleware := middleware.NewJWTMiddleware(authService)

	r.Use(corsMiddleware)
	r.Use(middleware.RequestID)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	// --- Public Routes ---
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// --- Protected Routes ---
	topics := r.PathPrefix("/topicos").Subrouter()
	topics.Use(authMiddleware)
	topics.HandleFunc("", topicHandler.RegisterTopic).Methods("POST")
	topics.HandleFunc("", topicHandler.ListTopics).Methods("GET")
	topics.HandleFunc("/buscar", topicHandler.SearchByCourse).Methods("GET")
	topics.HandleFunc("/{id:[0-9]+}", topicHandler.GetTopic).Methods("GET")
	topics.HandleFunc("/{id:[0-9]+}", topicHandler.UpdateTopic).Methods("PUT")
	topics.HandleFunc("/{id:[0-9]+}", topicHandler.CloseTopic).Methods("DELETE")
	topics.HandleFunc("/{id:[0-9]+}/mensajes", topicHandler.AddMessage).Methods("POST")
	topics.HandleFunc("/{idTopico:[0-9]+}/mensajes/{idMensaje:[0-9]+}", topicHandler.DeleteMessage).Methods("DELETE")

	// --- Server Configuration ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Foro API starting on port %s", cfg.ServerPort)

	// --- Start Server in Goroutine ---
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}
