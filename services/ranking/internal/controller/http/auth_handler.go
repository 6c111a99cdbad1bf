package http

import (
	"crypto/subtle"
	"net/http"
	"time"

	"rankings-admin/pkg/jwt"
	"rankings-admin/pkg/logger"
	"rankings-admin/pkg/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminCredentials are the demo login settings. An empty PasswordHash
// disables login.
type AdminCredentials struct {
	Username     string
	PasswordHash string
	Session      string
}

type AuthHandler struct {
	jwtService  *jwt.Service
	credentials AdminCredentials
	logger      *logger.Logger
	now         func() time.Time
}

func NewAuthHandler(jwtService *jwt.Service, credentials AdminCredentials, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		jwtService:  jwtService,
		credentials: credentials,
		logger:      logger,
		now:         time.Now,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login godoc
// @Summary      Admin login
// @Description  Exchange the demo admin credentials for a bearer token and session cookie
// @Tags         admin-auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  Response{data=LoginResponse}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	if !h.checkCredentials(req.Username, req.Password) {
		h.logger.With("op", "auth.login").Warn("rejected login for %q from %s", req.Username, c.ClientIP())
		fail(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	token, err := h.jwtService.GenerateToken(req.Username, jwt.RoleAdmin)
	if err != nil {
		h.logger.With("op", "auth.login").Error("generate token: %v", err)
		fail(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	ttl := h.jwtService.TTL()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieAdminSession, h.credentials.Session, int(ttl.Seconds()), "/", "", false, true)

	ok(c, http.StatusOK, LoginResponse{Token: token, ExpiresAt: h.now().Add(ttl)}, "Logged in")
}

// Logout godoc
// @Summary      Admin logout
// @Description  Clear the admin session cookie
// @Tags         admin-auth
// @Produce      json
// @Success      200  {object}  Response
// @Router       /admin/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieAdminSession, "", -1, "/", "", false, true)
	ok(c, http.StatusOK, nil, "Logged out")
}

func (h *AuthHandler) checkCredentials(username, password string) bool {
	if h.credentials.PasswordHash == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(h.credentials.Username)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(h.credentials.PasswordHash), []byte(password)) == nil
}
