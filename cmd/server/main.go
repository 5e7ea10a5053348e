package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"smartparking/internal/api"
	"smartparking/internal/auth"
	"smartparking/internal/config"
	"smartparking/internal/geoapify"
	"smartparking/internal/llm"
	"smartparking/internal/repository"
	"smartparking/internal/service"
	"smartparking/internal/session"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	profileRepo := repository.NewProfileRepository(database)
	bookingRepo := repository.NewBookingRepository(database)
	jobRepo := repository.NewJobRepository(database)

	provider := llm.NewProvider(cfg)
	if provider == nil {
		log.Println("No language model configured, assistant runs on rule-based fallbacks")
	}
	sessions := session.NewStore()
	places := geoapify.NewClient(cfg.GeoapifyAPIKey)

	assistantSvc := service.NewAssistantService(provider, sessions, places)
	parkingSvc := service.NewParkingService(places)
	authSvc := service.NewAuthService(profileRepo, cfg.GoogleClientID, cfg.SupabaseJWTSecret)
	stripeSvc := service.NewStripeService(cfg.StripeSecretKey)
	senderSvc := service.NewSenderService(cfg)
	bookingSvc := service.NewBookingService(bookingRepo, profileRepo, stripeSvc, senderSvc)
	jobSvc := service.NewJobService(jobRepo, sessions)

	aiHandler := api.NewAIHandler(assistantSvc)
	parkingHandler := api.NewParkingHandler(parkingSvc)
	authHandler := api.NewAuthHandler(authSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)

	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","message":"Smart Parking API is running"}`))
	}).Methods("GET")

	r.HandleFunc("/api/ai/query", aiHandler.ProcessQuery).Methods("POST")
	r.HandleFunc("/api/ai/suggestions", aiHandler.GetSuggestions).Methods("GET")

	r.HandleFunc("/api/parking/search", parkingHandler.Search).Methods("GET")
	r.HandleFunc("/api/parking/search-by-address", parkingHandler.SearchByAddress).Methods("GET")
	r.HandleFunc("/api/parking/filter", parkingHandler.Filter).Methods("POST")
	r.HandleFunc("/api/parking/{id}", parkingHandler.GetByID).Methods("GET")

	r.HandleFunc("/api/auth/google", authHandler.GoogleSignIn).Methods("POST")
	r.HandleFunc("/api/auth/sync", authHandler.SyncProfile).Methods("POST")
	r.HandleFunc("/api/auth/register", authHandler.RegisterProfile).Methods("POST")
	r.HandleFunc("/api/auth/profile/{userId}", authHandler.CheckProfile).Methods("GET")

	bookings := r.PathPrefix("/api/bookings").Subrouter()
	bookings.Use(auth.BookingAuthMiddleware(cfg.SupabaseJWTSecret))
	bookings.HandleFunc("/create", bookingHandler.Create).Methods("POST")
	bookings.HandleFunc("/user/{userId}", bookingHandler.ListByUser).Methods("GET")
	bookings.HandleFunc("/{id}/cancel", bookingHandler.Cancel).Methods("PUT")
	bookings.HandleFunc("/{id}/complete", bookingHandler.Complete).Methods("PUT")

	scheduler := cron.New()
	if _, err := scheduler.AddFunc("*/10 * * * *", func() {
		if err := jobSvc.CompleteFinishedBookings(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule booking completion job: %v", err)
	}
	if _, err := scheduler.AddFunc("@hourly", jobSvc.SweepSessions); err != nil {
		log.Fatalf("Failed to schedule session sweep job: %v", err)
	}
	scheduler.Start()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handlers.LoggingHandler(os.Stdout, corsHandler(r))))
}
