package handler

import (
	"fmt"
	"net/http"

	model "auction-house/internal/models"
	"auction-house/services/session/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

type SessionServiceInterface interface {
	Login(email, password string) (model.User, error)
	Register(name, email, password string) (model.User, error)
	Logout()
	CurrentUser() (model.User, bool)
	IsAuthenticated() bool
	IsLoading() bool
}

type SessionHandler struct {
	service SessionServiceInterface
}

func NewSessionHandler(service SessionServiceInterface) *SessionHandler {
	return &SessionHandler{service: service}
}

// LoginHandler handles POST /auth/login
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	user, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("LoginHandler: login failed", map[string]any{"email": req.Email, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToUserResponse(user), "login successful")
	utils.Info("LoginHandler: login successful", map[string]any{"user_id": user.ID, "email": user.Email})
}

// RegisterHandler handles POST /auth/register
func (h *SessionHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	user, err := h.service.Register(req.Name, req.Email, req.Password)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("RegisterHandler: registration failed", map[string]any{"email": req.Email, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToUserResponse(user), "registration successful")
	utils.Info("RegisterHandler: registration successful", map[string]any{"user_id": user.ID, "email": user.Email})
}

// LogoutHandler handles POST /auth/logout. Always succeeds.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	h.service.Logout()
	utils.JSONResponse(c, http.StatusOK, nil, "logged out")
}

// GetSessionHandler handles GET /auth/session. The presentation layer polls
// this to gate views; it must not assume a user before loading is false.
func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	resp := helpers.SessionResponse{
		Authenticated: h.service.IsAuthenticated(),
		Loading:       h.service.IsLoading(),
	}
	if user, ok := h.service.CurrentUser(); ok {
		u := helpers.ToUserResponse(user)
		resp.User = &u
	}
	utils.JSONResponse(c, http.StatusOK, resp, "session retrieved successfully")
}
