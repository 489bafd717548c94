package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"taskmanager/internal/auth"
	"taskmanager/internal/dto"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	sessions *auth.Store
	userSvc  *service.UserService
	logger   *slog.Logger
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(sessions *auth.Store, userSvc *service.UserService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, userSvc: userSvc, logger: logger}
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.MessageResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindBody(c, h.logger, &req) {
		return
	}

	user, err := h.userSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			writeMessage(c, http.StatusBadRequest, "E-mail e senha são obrigatórios")
		case errors.Is(err, service.ErrInvalidCredentials):
			writeMessage(c, http.StatusUnauthorized, "E-mail ou senha inválidos")
		default:
			writeInternal(c, h.logger, "login", err)
		}
		return
	}
	token, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		writeInternal(c, h.logger, "create session", err)
		return
	}
	h.logger.Info("user logged in", "user_id", user.ID)
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:   token,
		User:    dto.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email},
		Message: "Login realizado com sucesso",
	})
}

// Logout godoc
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.MessageResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Delete(c.Request.Context(), auth.TokenFromContext(c)); err != nil {
		writeInternal(c, h.logger, "logout", err)
		return
	}
	h.logger.Info("user logged out", "user_id", auth.UserIDFromContext(c))
	writeMessage(c, http.StatusOK, "Logout realizado com sucesso")
}
