package api

import (
	"net/http"

	reqdto "turnos-service/internal/handler/dto/request"
	resdto "turnos-service/internal/handler/dto/response"
	"turnos-service/internal/handler/httperr"
	"turnos-service/internal/handler/middleware"
	"turnos-service/internal/pkg/config"
	"turnos-service/internal/pkg/cookie"
	"turnos-service/internal/pkg/errs"
	"turnos-service/internal/pkg/jwt"
	"turnos-service/internal/usecase/commands"
	"turnos-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	msgCredentialsRequired = "Usuario y contraseña son requeridos"
	msgInvalidCredentials  = "Credenciales inválidas"
	msgNotAuthenticated    = "No autenticado"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
	adminQueries queries.AdminQueries
	jwtService   *jwt.Service
	cfg          config.Config
}

func NewAuthHandler(authCommands commands.AuthCommands, adminQueries queries.AdminQueries, jwtService *jwt.Service, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
		adminQueries: adminQueries,
		jwtService:   jwtService,
		cfg:          cfg,
	}
}

// @Summary Administrator login
// @Description Issues a session token as an HttpOnly cookie and in the body
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msgCredentialsRequired, nil)
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrAuthenticationFailed):
			httperr.AbortWithError(c, http.StatusBadRequest, err, msgCredentialsRequired, nil)
		case errs.Is(err, commands.ErrInvalidCredentials):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, msgInvalidCredentials, nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, msgInternal, nil)
		}
		return
	}

	cookie.SetSessionCookie(c, h.cfg.Cookie, result.AccessToken, h.jwtService.Duration())
	c.JSON(http.StatusOK, resdto.LoginResponse{
		Success:     true,
		AccessToken: result.AccessToken,
	})
}

// @Summary Administrator logout
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// Sessions are stateless; dropping the cookie is all there is.
	cookie.ClearSessionCookie(c, h.cfg.Cookie)
	c.Status(http.StatusNoContent)
}

// @Summary Current administrator
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.MeResponse
// @Failure 401 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing account in context"), msgNotAuthenticated, nil)
		return
	}

	account, err := h.adminQueries.GetCurrentAccount(c.Request.Context(), accountID)
	if err != nil {
		if errs.Is(err, queries.ErrAccountNotFound) {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, msgNotAuthenticated, nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msgInternal, nil)
		return
	}

	c.JSON(http.StatusOK, resdto.MeResponse{
		Username: account.Username,
		Role:     string(account.Role),
	})
}
