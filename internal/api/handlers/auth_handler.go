package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobportal/internal/auth"
	"github.com/yoockh/jobportal/internal/services"
)

// SessionCookie writes the HTTP-only session cookie.
type SessionCookie struct {
	TTL    time.Duration
	Secure bool
}

// cross-site cookies need SameSite=None, which browsers only accept with Secure
func (s SessionCookie) sameSite(c *gin.Context) {
	if s.Secure {
		c.SetSameSite(http.SameSiteNoneMode)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
}

func (s SessionCookie) set(c *gin.Context, token string) {
	s.sameSite(c)
	c.SetCookie(auth.CookieName, token, int(s.TTL.Seconds()), "/", "", s.Secure, true)
}

func (s SessionCookie) clear(c *gin.Context) {
	s.sameSite(c)
	c.SetCookie(auth.CookieName, "", -1, "/", "", s.Secure, true)
}

type AuthHandler struct {
	svc    services.AuthService
	cookie SessionCookie
}

func NewAuthHandler(svc services.AuthService, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{svc: svc, cookie: cookie}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, "AuthHandler.Login", &req) {
		return
	}

	sess, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	h.cookie.set(c, sess.Token)
	c.JSON(http.StatusOK, gin.H{"message": "logged in", "user": sess.User})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookie.clear(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	acc, err := h.svc.Me(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

type updateAccountRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email" binding:"omitempty,email"`
	Password        *string `json:"password" binding:"omitempty,min=6"`
	CurrentPassword string  `json:"currentPassword"`
}

func (h *AuthHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req updateAccountRequest
	if !bindJSON(c, "AuthHandler.Update", &req) {
		return
	}

	u, err := h.svc.UpdateAccount(c.Request.Context(), userID, services.UpdateAccountInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		CurrentPassword: req.CurrentPassword,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account updated", "user": u})
}
