package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"habittracker/internal/model"
	"habittracker/internal/service/habit"
	"habittracker/pkg/logger"
)

const defaultPageSize = 5

type HabitHandler struct {
	svc    *habit.Service
	logger *zap.Logger
}

func NewHabitHandler(svc *habit.Service, logger *zap.Logger) *HabitHandler {
	return &HabitHandler{svc: svc, logger: logger}
}

type habitRequest struct {
	Place           string         `json:"place" binding:"required"`
	Action          string         `json:"action" binding:"required"`
	StartTime       time.Time      `json:"start_time" binding:"required"`
	Interval        model.Interval `json:"interval" binding:"required"`
	IsNice          bool           `json:"is_nice"`
	RelatedTo       *int64         `json:"related_to"`
	Reward          string         `json:"reward"`
	DurationSeconds int            `json:"duration_seconds"`
	IsPublic        bool           `json:"is_public"`
}

// habitPatch distinguishes absent fields from zero values.
// related_to: 0 clears the companion reference.
type habitPatch struct {
	Place           *string         `json:"place"`
	Action          *string         `json:"action"`
	StartTime       *time.Time      `json:"start_time"`
	Interval        *model.Interval `json:"interval"`
	IsNice          *bool           `json:"is_nice"`
	RelatedTo       *int64          `json:"related_to"`
	Reward          *string         `json:"reward"`
	DurationSeconds *int            `json:"duration_seconds"`
	IsPublic        *bool           `json:"is_public"`
}

type habitResponse struct {
	ID              int64          `json:"id"`
	OwnerID         int64          `json:"owner_id"`
	Place           string         `json:"place"`
	Action          string         `json:"action"`
	StartTime       time.Time      `json:"start_time"`
	Interval        model.Interval `json:"interval"`
	IsNice          bool           `json:"is_nice"`
	RelatedTo       *int64         `json:"related_to,omitempty"`
	Reward          string         `json:"reward,omitempty"`
	DurationSeconds int            `json:"duration_seconds"`
	IsPublic        bool           `json:"is_public"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func toResponse(h *model.Habit) habitResponse {
	return habitResponse{
		ID:              h.ID,
		OwnerID:         h.OwnerID,
		Place:           h.Place,
		Action:          h.Action,
		StartTime:       h.StartTime,
		Interval:        h.Interval,
		IsNice:          h.IsNice,
		RelatedTo:       h.RelatedTo,
		Reward:          h.Reward,
		DurationSeconds: int(h.Duration.Seconds()),
		IsPublic:        h.IsPublic,
		CreatedAt:       h.CreatedAt,
		UpdatedAt:       h.UpdatedAt,
	}
}

func toResponses(habits []model.Habit) []habitResponse {
	out := make([]habitResponse, 0, len(habits))
	for i := range habits {
		out = append(out, toResponse(&habits[i]))
	}
	return out
}

// Create handles POST /habits.
func (h *HabitHandler) Create(c *gin.Context) {
	actorID := currentUserID(c)

	var req habitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.DurationSeconds == 0 {
		req.DurationSeconds = int(model.MaxHabitDuration.Seconds())
	}

	draft := &model.Habit{
		Place:     req.Place,
		Action:    req.Action,
		StartTime: req.StartTime,
		Interval:  req.Interval,
		IsNice:    req.IsNice,
		RelatedTo: req.RelatedTo,
		Reward:    req.Reward,
		Duration:  time.Duration(req.DurationSeconds) * time.Second,
		IsPublic:  req.IsPublic,
	}

	created, err := h.svc.Create(c.Request.Context(), actorID, draft)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toResponse(created))
}

// List handles GET /habits: own habits plus public ones, paginated.
func (h *HabitHandler) List(c *gin.Context) {
	actorID := currentUserID(c)
	limit, offset := pagination(c)

	habits, err := h.svc.ListVisible(c.Request.Context(), actorID, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"habits": toResponses(habits)})
}

// ListOwned handles GET /habits/owned.
func (h *HabitHandler) ListOwned(c *gin.Context) {
	actorID := currentUserID(c)

	habits, err := h.svc.ListOwned(c.Request.Context(), actorID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"habits": toResponses(habits)})
}

// Get handles GET /habits/:id.
func (h *HabitHandler) Get(c *gin.Context) {
	actorID := currentUserID(c)
	id, ok := habitID(c)
	if !ok {
		return
	}

	found, err := h.svc.Get(c.Request.Context(), actorID, id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(found))
}

// Update handles PATCH /habits/:id.
func (h *HabitHandler) Update(c *gin.Context) {
	actorID := currentUserID(c)
	id, ok := habitID(c)
	if !ok {
		return
	}

	var req habitPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	patch := habit.Patch{
		Place:     req.Place,
		Action:    req.Action,
		StartTime: req.StartTime,
		Interval:  req.Interval,
		IsNice:    req.IsNice,
		RelatedTo: req.RelatedTo,
		Reward:    req.Reward,
		IsPublic:  req.IsPublic,
	}
	if req.DurationSeconds != nil {
		d := time.Duration(*req.DurationSeconds) * time.Second
		patch.Duration = &d
	}

	updated, err := h.svc.Update(c.Request.Context(), actorID, id, patch)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(updated))
}

// Delete handles DELETE /habits/:id.
func (h *HabitHandler) Delete(c *gin.Context) {
	actorID := currentUserID(c)
	id, ok := habitID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actorID, id); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *HabitHandler) writeError(c *gin.Context, err error) {
	switch {
	case habit.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, habit.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, habit.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
	default:
		requestLogger(c, h.logger).Error("Habit request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// requestLogger annotates the handler logger with the request id assigned by
// the middleware.
func requestLogger(c *gin.Context, base *zap.Logger) *zap.Logger {
	return logger.WithRequestID(base, c.GetString("request_id"))
}

func habitID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit id"})
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = defaultPageSize
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

// currentUserID reads the user id stored by the auth middleware.
func currentUserID(c *gin.Context) int64 {
	v, _ := c.Get("user_id")
	id, _ := v.(int64)
	return id
}
