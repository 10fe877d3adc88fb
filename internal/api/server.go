// Package api exposes Forkcast over a JSON HTTP API.
//
// Handlers are thin: they decode requests, resolve the acting session
// from the JWT, call into the planner or auth layers, and map the
// planner's error taxonomy onto status codes. All domain behavior lives
// below this package.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"forkcast/internal/auth"
	"forkcast/internal/images"
	"forkcast/internal/middleware"
	"forkcast/internal/planner"
	"forkcast/internal/realtime"
	"forkcast/internal/storage"
)

// Server wires the HTTP surface to the application layers.
type Server struct {
	store    storage.Store
	authn    auth.Authenticator
	jwt      *auth.JWTManager
	planners *planner.Manager
	hub      *realtime.Hub
	uploader *images.Uploader // nil disables image upload
}

// New creates the API server. uploader may be nil.
func New(store storage.Store, authn auth.Authenticator, jwt *auth.JWTManager,
	planners *planner.Manager, hub *realtime.Hub, uploader *images.Uploader) *Server {
	return &Server{
		store:    store,
		authn:    authn,
		jwt:      jwt,
		planners: planners,
		hub:      hub,
		uploader: uploader,
	}
}

// Router builds the Gin engine with the full route table and middleware
// chain.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)
	}

	api := r.Group("/api")
	api.Use(middleware.RequireAuth(s.jwt))
	{
		api.POST("/household", s.createHousehold)
		api.POST("/household/join", s.joinHousehold)

		api.GET("/snapshot", s.getSnapshot)
		api.GET("/shopping", s.getShoppingList)

		api.POST("/entries", s.assign)
		api.DELETE("/entries/:id", s.removeEntry)
		api.POST("/planner/copy-week", s.copyWeek)

		api.POST("/slots", s.addSlot)
		api.DELETE("/slots/:id", s.removeSlot)

		api.POST("/foods", s.addFood)
		api.PUT("/foods/:id", s.updateFood)
		api.DELETE("/foods/:id", s.deleteFood)
		api.POST("/foods/:id/favorite", s.toggleFavorite)
		api.POST("/foods/:id/image", s.uploadFoodImage)

		api.GET("/ws", s.serveWS)
	}

	return r
}

// session resolves the acting user's session and planner. Users without
// a household get a 400 before any planner is touched.
func (s *Server) session(c *gin.Context) (planner.Session, *planner.Planner, bool) {
	userID := middleware.GetUserID(c)
	user, err := s.store.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return planner.Session{}, nil, false
	}
	if user.HouseholdID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "join a household first"})
		return planner.Session{}, nil, false
	}

	p, err := s.planners.ForHousehold(c.Request.Context(), user.HouseholdID)
	if err != nil {
		slog.Error("failed to load planner", "household_id", user.HouseholdID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "planner unavailable"})
		return planner.Session{}, nil, false
	}

	return planner.Session{UserID: user.ID, HouseholdID: user.HouseholdID}, p, true
}

// respondError maps the planner's error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var ve *planner.ValidationError
	var nfe *planner.NotFoundError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
	case errors.As(err, &nfe):
		c.JSON(http.StatusNotFound, gin.H{"error": nfe.Error()})
	default:
		// Store failures: detail stays in the logs, the client gets a
		// generic message and may simply retry the gesture.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}
