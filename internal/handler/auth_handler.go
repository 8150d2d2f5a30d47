package handler

import (
	"net/http"

	"gymref/internal/domain"
	"gymref/internal/middleware"
	"gymref/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionOptions controls the session cookie set on login.
type SessionOptions struct {
	MaxAge int
	Secure bool
}

type AuthHandler struct {
	svc     *service.AuthService
	session SessionOptions
}

func NewAuthHandler(svc *service.AuthService, session SessionOptions) *AuthHandler {
	return &AuthHandler{svc: svc, session: session}
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req service.SignupInput
	if !bindJSON(c, &req) {
		return
	}
	owner, gym, err := h.svc.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"userId": owner.ID, "gymId": gym.ID})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginInput
	if !bindJSON(c, &req) {
		return
	}
	owner, access, refresh, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setSession(c, access, h.session.MaxAge)
	c.JSON(http.StatusOK, gin.H{
		"owner":         owner,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}
	access, refresh, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setSession(c, access, h.session.MaxAge)
	c.JSON(http.StatusOK, gin.H{"access_token": access, "refresh_token": refresh})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSession(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	owner, gym, err := h.svc.Me(c.Request.Context(), middleware.GetOwnerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"owner": owner, "gym": gym})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req service.ChangePasswordInput
	if !bindJSON(c, &req) {
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), middleware.GetOwnerID(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AuthHandler) setSession(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(domain.SessionCookie, token, maxAge, "/", "", h.session.Secure, true)
}
