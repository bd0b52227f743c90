package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"poirec-server/middleware"
	"poirec-server/search"
	"poirec-server/services"
	"poirec-server/utils/errors"
)

// Services are the dependencies the HTTP layer dispatches to.
type Services struct {
	POIs         *services.PoiService
	Users        *services.UserService
	Auth         *services.AuthService
	Checkins     *services.CheckinService
	Orchestrator *search.Orchestrator
}

type RouterConfig struct {
	JWTSecret       string
	AllowedOrigins  []string
	RateLimit       int
	RateLimitWindow time.Duration
	CategoryLimit   int
}

// NewRouter wires every route. CORS and rate limiting wrap the whole router
// so preflight requests never reach route matching.
func NewRouter(svc Services, cfg RouterConfig) http.Handler {
	poiHandler := NewPOIHandler(svc.POIs, cfg.CategoryLimit)
	authHandler := NewAuthHandler(svc.Auth)
	userHandler := NewUserHandler(svc.Users, svc.Checkins)
	recommendHandler := NewRecommendHandler(svc.Orchestrator)
	requireAuth := middleware.JWTMiddleware(cfg.JWTSecret)

	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(), middleware.ErrorMiddleware())
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		middleware.WriteError(w, req, errors.ErrNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		middleware.WriteError(w, req, errors.NewAPIError("METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed))
	})

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Auth routes
	authRouter := r.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/register", authHandler.RegisterUser).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", authHandler.LoginUser).Methods(http.MethodPost)
	authRouter.Handle("/password", requireAuth(http.HandlerFunc(authHandler.ChangePassword))).Methods(http.MethodPost)

	// POI routes; the fixed paths precede /poi/{id}.
	poiRouter := r.PathPrefix("/poi").Subrouter()
	poiRouter.HandleFunc("/search", poiHandler.SearchPOIs).Methods(http.MethodGet)
	poiRouter.HandleFunc("/search/name/{query}", poiHandler.SuggestPOINames).Methods(http.MethodGet)
	poiRouter.HandleFunc("/category", poiHandler.SearchCategoryNames).Methods(http.MethodGet)
	poiRouter.HandleFunc("", poiHandler.CreatePOI).Methods(http.MethodPost)
	poiRouter.HandleFunc("/{id}", poiHandler.GetPOI).Methods(http.MethodGet)
	poiRouter.HandleFunc("/{id}", poiHandler.EditPOI).Methods(http.MethodPut)
	poiRouter.HandleFunc("/{id}", poiHandler.DeletePOI).Methods(http.MethodDelete)

	r.HandleFunc("/recommend", recommendHandler.Recommend).Methods(http.MethodPost)

	// User routes; check-ins require a token.
	userRouter := r.PathPrefix("/user").Subrouter()
	checkinRouter := userRouter.PathPrefix("/checkins").Subrouter()
	checkinRouter.Use(requireAuth)
	checkinRouter.HandleFunc("", userHandler.ListCheckins).Methods(http.MethodGet)
	checkinRouter.HandleFunc("", userHandler.CreateCheckin).Methods(http.MethodPost)
	checkinRouter.HandleFunc("/{id}", userHandler.DeleteCheckin).Methods(http.MethodDelete)
	userRouter.HandleFunc("/{id}", userHandler.GetUser).Methods(http.MethodGet)

	var handler http.Handler = r
	handler = middleware.RateLimit(cfg.RateLimit, cfg.RateLimitWindow)(handler)
	handler = middleware.CORSMiddleware(cfg.AllowedOrigins)(handler)
	return handler
}
