package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// POST /api/foods
func (s *Server) addFood(c *gin.Context) {
	sess, p, ok := s.session(c)
	if !ok {
		return
	}

	var req foodReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	id, err := p.AddFood(c.Request.Context(), sess, req.toDraft())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/foods/:id
func (s *Server) updateFood(c *gin.Context) {
	sess, p, ok := s.session(c)
	if !ok {
		return
	}

	var req foodReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if err := p.UpdateFood(c.Request.Context(), sess, c.Param("id"), req.toDraft()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/foods/:id
func (s *Server) deleteFood(c *gin.Context) {
	sess, p, ok := s.session(c)
	if !ok {
		return
	}
	if err := p.DeleteFood(c.Request.Context(), sess, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/foods/:id/favorite
func (s *Server) toggleFavorite(c *gin.Context) {
	sess, p, ok := s.session(c)
	if !ok {
		return
	}
	if err := p.ToggleFavorite(c.Request.Context(), sess, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type imageReq struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// POST /api/foods/:id/image  { "image_base64": "data:image/jpeg;base64,..." }
func (s *Server) uploadFoodImage(c *gin.Context) {
	sess, p, ok := s.session(c)
	if !ok {
		return
	}
	if s.uploader == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "image uploads are not configured"})
		return
	}

	var req imageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	url, err := s.uploader.UploadDataURL(c.Request.Context(), req.ImageBase64, "foods/"+sess.HouseholdID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := p.SetFoodImage(c.Request.Context(), sess, c.Param("id"), url); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}
