package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"habittracker/internal/model"
	"habittracker/internal/repository"
	"habittracker/pkg/util"
)

// UserStore is the user persistence surface the profile endpoints need.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdateUser(ctx context.Context, u *model.User) error
}

type UserHandler struct {
	users  UserStore
	logger *zap.Logger
}

func NewUserHandler(users UserStore, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

type userPatch struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password" binding:"omitempty,min=6"`
	TgChatID  *string `json:"tg_chat_id"`
	FirstName *string `json:"first_name"`
}

// Get handles GET /users/:id. Profiles are visible to their owner only.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.selfID(c)
	if !ok {
		return
	}

	u, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		requestLogger(c, h.logger).Error("Get user failed", zap.Int64("user_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, u)
}

// Update handles PATCH /users/:id for the profile owner.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.selfID(c)
	if !ok {
		return
	}

	var req userPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		requestLogger(c, h.logger).Error("Load user failed", zap.Int64("user_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.TgChatID != nil {
		u.TgChatID = *req.TgChatID
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.Password != nil {
		hash, err := util.HashPassword(*req.Password)
		if err != nil {
			requestLogger(c, h.logger).Error("Hash password failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		u.PasswordHash = hash
	}

	if err := h.users.UpdateUser(c.Request.Context(), u); err != nil {
		requestLogger(c, h.logger).Error("Update user failed", zap.Int64("user_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, u)
}

// selfID parses the path id and rejects access to other users' profiles.
func (h *UserHandler) selfID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	if id != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return 0, false
	}
	return id, true
}
