package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lab-admin-backend/internal/model"
	"lab-admin-backend/internal/store"
)

// createLabRequest is the body for POST /api/labs.
type createLabRequest struct {
	Name         string `json:"name" binding:"required"`
	Building     string `json:"building" binding:"required"`
	Capacity     int    `json:"capacity"`
	HasProjector bool   `json:"has_projector"`
	HasAC        bool   `json:"has_ac"`
	IsAvailable  *bool  `json:"is_available"`
}

// updateLabRequest is the body for PUT /api/labs/:id. Every field is a
// pointer so an absent field is distinguishable from a zero value; only
// the fields present in the request are written.
type updateLabRequest struct {
	Name         *string `json:"name"`
	Building     *string `json:"building"`
	Capacity     *int    `json:"capacity"`
	HasProjector *bool   `json:"has_projector"`
	HasAC        *bool   `json:"has_ac"`
	IsAvailable  *bool   `json:"is_available"`
}

// ListLabs handles GET /api/labs. Rows come back ordered by building,
// then name; an empty collection yields an empty JSON array, not null.
func (h *Handler) ListLabs(c *gin.Context) {
	labs, err := h.store.ListLabs(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve labs"})
		return
	}
	c.JSON(http.StatusOK, labs)
}

// CreateLab handles POST /api/labs. New labs default to available
// unless the request says otherwise.
func (h *Handler) CreateLab(c *gin.Context) {
	var req createLabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	lab := model.Lab{
		Name:         req.Name,
		Building:     req.Building,
		Capacity:     req.Capacity,
		HasProjector: req.HasProjector,
		HasAC:        req.HasAC,
		IsAvailable:  isAvailable,
	}
	if err := h.store.CreateLab(c.Request.Context(), &lab); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lab"})
		return
	}

	c.JSON(http.StatusCreated, lab)
}

// UpdateLab handles PUT /api/labs/:id with a partial record.
func (h *Handler) UpdateLab(c *gin.Context) {
	id, ok := labIDParam(c)
	if !ok {
		return
	}

	var req updateLabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := store.LabUpdate{
		Name:         req.Name,
		Building:     req.Building,
		Capacity:     req.Capacity,
		HasProjector: req.HasProjector,
		HasAC:        req.HasAC,
		IsAvailable:  req.IsAvailable,
	}
	if err := h.store.UpdateLab(c.Request.Context(), id, update); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lab not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lab"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

type setAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// SetLabAvailability handles PATCH /api/labs/:id/availability. A
// successful change is handed to the notification pool so subscribers
// hear about it.
func (h *Handler) SetLabAvailability(c *gin.Context) {
	id, ok := labIDParam(c)
	if !ok {
		return
	}

	var req setAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := store.LabUpdate{IsAvailable: req.IsAvailable}
	if err := h.store.UpdateLab(c.Request.Context(), id, update); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lab not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lab availability"})
		}
		return
	}

	if h.pool != nil {
		h.pool.Dispatch(id)
	}

	c.Status(http.StatusNoContent)
}

// DeleteLab handles DELETE /api/labs/:id.
func (h *Handler) DeleteLab(c *gin.Context) {
	id, ok := labIDParam(c)
	if !ok {
		return
	}

	if err := h.store.DeleteLab(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lab not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lab"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func labIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("lab_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid lab ID"})
		return 0, false
	}
	return id, true
}
