package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"forkcast/internal/middleware"
	"forkcast/internal/models"
)

type registerReq struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/register
func (s *Server) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	user, err := s.authn.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		slog.Error("token generation failed", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": toUserDTO(user)})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (s *Server) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	user, err := s.authn.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		slog.Error("token generation failed", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": toUserDTO(user)})
}

type createHouseholdReq struct {
	Name string `json:"name" binding:"required"`
}

// POST /api/household
func (s *Server) createHousehold(c *gin.Context) {
	var req createHouseholdReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)

	h := &models.Household{Name: req.Name}
	if err := s.store.CreateHousehold(ctx, h); err != nil {
		slog.Error("create household failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
		return
	}
	if err := s.store.SetUserHousehold(ctx, userID, h.ID); err != nil {
		slog.Error("join own household failed", "household_id", h.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": h.ID, "name": h.Name})
}

type joinHouseholdReq struct {
	HouseholdID string `json:"household_id" binding:"required"`
}

// POST /api/household/join
func (s *Server) joinHousehold(c *gin.Context) {
	var req joinHouseholdReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	ctx := c.Request.Context()
	if _, err := s.store.GetHousehold(ctx, req.HouseholdID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "household not found"})
		return
	}

	userID := middleware.GetUserID(c)
	if err := s.store.SetUserHousehold(ctx, userID, req.HouseholdID); err != nil {
		slog.Error("join household failed", "household_id", req.HouseholdID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"household_id": req.HouseholdID})
}
