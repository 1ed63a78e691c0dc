package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"

	"parkfinder/internal/api"
	"parkfinder/internal/repository"
	"parkfinder/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	spaceRepo := repository.NewSpaceRepository(db)
	ownerRepo := repository.NewOwnerRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	radiusKm := service.DefaultRadiusKm
	if v := os.Getenv("SEARCH_RADIUS_KM"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			log.Fatalf("Invalid SEARCH_RADIUS_KM: %q", v)
		}
		radiusKm = parsed
	}

	// SEARCH_INDEX=memory serves radius queries from an in-process grid index
	// rebuilt from Postgres by the cron job, instead of hitting Postgres per search.
	var store service.SpaceStore = spaceRepo
	var memIndex *repository.MemorySpaceStore
	if os.Getenv("SEARCH_INDEX") == "memory" {
		memIndex = repository.NewMemorySpaceStore()
		store = memIndex
	}

	searchSvc := service.NewSearchService(store, radiusKm)
	spaceSvc := service.NewSpaceService(spaceRepo, ownerRepo)
	ownerSvc := service.NewOwnerService(ownerRepo)
	reviewSvc := service.NewReviewService(reviewRepo, spaceRepo, ownerRepo)
	jobSvc := service.NewJobService(spaceRepo, reviewRepo, memIndex)

	if memIndex != nil {
		if err := jobSvc.RebuildSearchIndex(); err != nil {
			log.Fatalf("Failed to build initial search index: %v", err)
		}
	}

	c := cron.New()
	c.AddFunc("@hourly", func() {
		if err := jobSvc.RefreshSpaceRatings(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	if memIndex != nil {
		c.AddFunc("@every 5m", func() {
			if err := jobSvc.RebuildSearchIndex(); err != nil {
				log.Printf("Cron Job error: %v", err)
			}
		})
	}
	c.Start()

	spaceHandler := api.NewSpaceHandler(searchSvc, spaceSvc)
	reviewHandler := api.NewReviewHandler(reviewSvc)
	ownerHandler := api.NewOwnerHandler(ownerSvc)

	r := mux.NewRouter()

	r.HandleFunc("/api/spaces/search", spaceHandler.SearchSpaces).Methods("GET")
	r.HandleFunc("/api/spaces", spaceHandler.CreateSpace).Methods("POST")
	r.HandleFunc("/api/spaces/{id}", spaceHandler.GetSpace).Methods("GET")
	r.HandleFunc("/api/spaces/{id}/schedule", spaceHandler.UpdateSchedule).Methods("PUT")
	r.HandleFunc("/api/spaces/{id}/availability", spaceHandler.SetAvailability).Methods("PUT")

	r.HandleFunc("/api/spaces/{id}/reviews", reviewHandler.CreateReview).Methods("POST")
	r.HandleFunc("/api/spaces/{id}/reviews", reviewHandler.ListReviews).Methods("GET")

	r.HandleFunc("/api/owners", ownerHandler.CreateOwner).Methods("POST")
	r.HandleFunc("/api/owners", ownerHandler.GetOwnerByEmail).Methods("GET")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	handler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(handlers.LoggingHandler(os.Stdout, r))

	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
