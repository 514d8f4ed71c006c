package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todoapi/internal/models"
	"todoapi/internal/store"
)

// TodoStore is the slice of todo persistence the handlers need.
type TodoStore interface {
	Create(ctx context.Context, text string) (*models.Todo, error)
	FindAll(ctx context.Context) ([]models.Todo, error)
	FindByID(ctx context.Context, id string) (*models.Todo, error)
	DeleteByID(ctx context.Context, id string) (*models.Todo, error)
	UpdateByID(ctx context.Context, id string, patch store.TodoPatch) (*models.Todo, error)
}

// UserStore is the slice of user persistence the handlers and the auth
// gate need.
type UserStore interface {
	Create(ctx context.Context, email, password string) (*models.User, error)
	FindByCredentials(ctx context.Context, email, password string) (*models.User, error)
	FindByToken(ctx context.Context, token string) (*models.User, error)
	IssueToken(ctx context.Context, user *models.User) (string, error)
	RevokeToken(ctx context.Context, user *models.User, token string) error
}

type Handler struct {
	todos  TodoStore
	users  UserStore
	logger *zap.Logger
}

func NewHandler(todos TodoStore, users UserStore, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{todos: todos, users: users, logger: logger}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/todos", h.handleCreateTodo)
	router.GET("/todos", h.handleListTodos)
	router.GET("/todos/:id", h.handleGetTodo)
	router.DELETE("/todos/:id", h.handleDeleteTodo)
	router.PATCH("/todos/:id", h.handleUpdateTodo)

	router.POST("/users/", h.handleRegister)
	router.POST("/users/login", h.handleLogin)

	me := router.Group("/users/me", RequireAuth(h.users))
	me.GET("", h.handleMe)
	me.DELETE("/token", h.handleLogout)
}

type createTodoRequest struct {
	Text string `json:"text" binding:"required"`
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) handleCreateTodo(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	todo, err := h.todos.Create(c.Request.Context(), req.Text)
	if err != nil {
		writeError(c, http.StatusBadRequest, "failed to save todo", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

func (h *Handler) handleListTodos(c *gin.Context) {
	todos, err := h.todos.FindAll(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusBadRequest, "failed to query todos", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

func (h *Handler) handleGetTodo(c *gin.Context) {
	todo, err := h.todos.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		writeError(c, http.StatusBadRequest, "failed to query todo", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

func (h *Handler) handleDeleteTodo(c *gin.Context) {
	todo, err := h.todos.DeleteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		writeError(c, http.StatusBadRequest, "failed to delete todo", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

func (h *Handler) handleUpdateTodo(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	patch := store.DeriveTodoPatch(body, time.Now())

	todo, err := h.todos.UpdateByID(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		writeError(c, http.StatusBadRequest, "failed to update todo", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

func (h *Handler) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.users.Create(ctx, req.Email, req.Password)
	if err != nil {
		writeError(c, http.StatusBadRequest, "failed to register user", err)
		return
	}

	token, err := h.users.IssueToken(ctx, user)
	if err != nil {
		h.logger.Error("issue token after registration", zap.Error(err))
		writeError(c, http.StatusBadRequest, "failed to issue token", err)
		return
	}

	c.Header(HeaderAuth, token)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.users.FindByCredentials(ctx, req.Email, req.Password)
	if err != nil {
		writeError(c, http.StatusBadRequest, "login failed", err)
		return
	}

	token, err := h.users.IssueToken(ctx, user)
	if err != nil {
		h.logger.Error("issue token after login", zap.Error(err))
		writeError(c, http.StatusBadRequest, "failed to issue token", err)
		return
	}

	c.Header(HeaderAuth, token)
	c.JSON(http.StatusOK, user)
}

func (h *Handler) handleMe(c *gin.Context) {
	user, _, ok := currentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) handleLogout(c *gin.Context) {
	user, token, ok := currentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if err := h.users.RevokeToken(c.Request.Context(), user, token); err != nil {
		writeError(c, http.StatusBadRequest, "failed to revoke token", err)
		return
	}

	c.Status(http.StatusOK)
}

func writeError(c *gin.Context, status int, message string, err error) {
	c.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}
