package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forkcast/internal/models"
	"forkcast/internal/planner"
)

// GET /api/snapshot
func (s *Server) getSnapshot(c *gin.Context) {
	_, p, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toSnapshotDTO(p.Snapshot()))
}

// GET /api/shopping?start=YYYY-MM-DD&end=YYYY-MM-DD
func (s *Server) getShoppingList(c *gin.Context) {
	_, p, ok := s.session(c)
	if !ok {
		return
	}

	start, err := models.ParseDate(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date"})
		return
	}
	end, err := models.ParseDate(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": toShoppingDTO(p.ShoppingList(start, end))})
}

type dropTargetReq struct {
	Date   string `json:"date"`
	SlotID string `json:"slot_id"`
}

type assignReq struct {
	FoodID  string         `json:"food_id"`
	EntryID string         `json:"entry_id"`
	Target  *dropTargetReq `json:"target"`
}

// POST /api/entries
//
// A null target mirrors a drop outside any slot cell: the planner treats
// it as a silent no-op and the response is 204.
func (s *Server) assign(c *gin.Context) {
	sess, p, ok := s.session(c)
	if !ok {
		return
	}

	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	var target *planner.DropTarget
	if req.Target != nil {
		date, err := models.ParseDate(req.Target.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target date"})
			return
		}
		target = &planner.DropTarget{Date: date, SlotID: req.Target.SlotID}
	}

	src := planner.DragSource{FoodID: req.FoodID, EntryID: req.EntryID}
	if err := p.Assign(c.Request.Context(), sess, src, target); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/entries/:id
func (s *Server) removeEntry(c *gin.Context) {
	sess, p, ok := s.session(c)
	if !ok {
		return
	}
	if err := p.Remove(c.Request.Context(), sess, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type copyWeekReq struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// POST /api/planner/copy-week
func (s *Server) copyWeek(c *gin.Context) {
	sess, p, ok := s.session(c)
	if !ok {
		return
	}

	var req copyWeekReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	from, err := models.ParseDate(req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return
	}
	to, err := models.ParseDate(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return
	}

	if err := p.CopyWeek(c.Request.Context(), sess, from, to); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addSlotReq struct {
	Name string `json:"name" binding:"required"`
}

// POST /api/slots
func (s *Server) addSlot(c *gin.Context) {
	sess, p, ok := s.session(c)
	if !ok {
		return
	}

	var req addSlotReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	slot, err := p.AddSlot(c.Request.Context(), sess, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSlotDTO(slot))
}

// DELETE /api/slots/:id
func (s *Server) removeSlot(c *gin.Context) {
	sess, p, ok := s.session(c)
	if !ok {
		return
	}
	if err := p.RemoveSlot(c.Request.Context(), sess, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
