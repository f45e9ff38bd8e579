package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/stevepenney/LBDesign/internal/auth"
	"github.com/stevepenney/LBDesign/internal/batch"
	"github.com/stevepenney/LBDesign/internal/catalog"
	"github.com/stevepenney/LBDesign/internal/engine/calc"
	"github.com/stevepenney/LBDesign/internal/importer"
	"github.com/stevepenney/LBDesign/internal/project"
	"github.com/stevepenney/LBDesign/internal/report"
	"github.com/stevepenney/LBDesign/internal/repo"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(router *mux.Router, db *sql.DB) {
	userRepo := repo.NewPostgresUserDB(db)
	projectRepo := repo.NewPostgresProjectDB(db)
	beamRepo := repo.NewPostgresBeamDB(db)
	productRepo := repo.NewPostgresProductDB(db)

	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.Env{JWTKey: []byte(tokenKey), Repo: userRepo}
	catalogSvc := &catalog.Service{Products: productRepo}

	limiter := auth.NewIPRateLimiter(1, 3)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.LoginHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.Middleware)

	calcH := &calc.Handler{}
	batchH := &batch.Handler{}
	reportH := &report.Handler{}
	catalogH := &catalog.Handler{Svc: catalogSvc}
	importH := &importer.Handler{Repo: productRepo}
	projectH := &project.Handler{Projects: projectRepo, Beams: beamRepo, Catalog: catalogSvc}

	secureApi.HandleFunc("/tools/beam/preview", calcH.Preview).Methods("POST")
	secureApi.HandleFunc("/tools/beam/batch", batchH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")

	secureApi.HandleFunc("/products", catalogH.List).Methods("GET")
	secureApi.HandleFunc("/products/{code}", catalogH.Get).Methods("GET")
	secureApi.HandleFunc("/products/import", importH.Products).Methods("POST")
	secureApi.HandleFunc("/tools/recommend", catalogH.Recommend).Methods("POST")

	secureApi.HandleFunc("/projects", projectH.ListProjects).Methods("GET")
	secureApi.HandleFunc("/projects", projectH.CreateProject).Methods("POST")
	secureApi.HandleFunc("/projects/{id:[0-9]+}", projectH.GetProject).Methods("GET")
	secureApi.HandleFunc("/projects/{id:[0-9]+}", projectH.DeleteProject).Methods("DELETE")
	secureApi.HandleFunc("/projects/{id:[0-9]+}/beams", projectH.CreateBeam).Methods("POST")

	secureApi.HandleFunc("/beams/{id:[0-9]+}", projectH.GetBeam).Methods("GET")
	secureApi.HandleFunc("/beams/{id:[0-9]+}", projectH.UpdateBeam).Methods("PUT", "PATCH")
	secureApi.HandleFunc("/beams/{id:[0-9]+}", projectH.DeleteBeam).Methods("DELETE")
	secureApi.HandleFunc("/beams/{id:[0-9]+}/calculate", projectH.Calculate).Methods("POST")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment")
	}

	db := repo.InitDB()
	defer db.Close()

	router := mux.NewRouter()
	HandleList(router, db)
	handler := CORS(router)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Println("Starting server on", addr)

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
