package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"attendance/internal/auth"
)

func (h *Handler) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.users.ByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.fail(c, err)
		return
	}
	if u == nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	tokens, err := auth.Issue(
		strconv.FormatInt(u.ID, 10), string(u.Role),
		h.cfg.JWTIssuer, h.cfg.JWTSigningKey,
		h.cfg.AccessTTL, h.cfg.RefreshTTL,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}

	h.log.Info("login", zap.Int64("user_id", u.ID))
	c.JSON(http.StatusOK, gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_at":    tokens.AccessExp.Unix(),
	})
}

func (h *Handler) logout(c *gin.Context) {
	token, ok := auth.BearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	claims, err := auth.Parse(token, h.cfg.JWTSigningKey, h.cfg.JWTIssuer)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	if err := h.denylist.Add(c.Request.Context(), token, claims.ExpiresAt.Time); err != nil {
		h.log.Warn("denylist add failed", zap.Error(err))
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, err := auth.Parse(req.RefreshToken, h.cfg.JWTSigningKey, h.cfg.JWTIssuer)
	if err != nil || h.denylist.Contains(c.Request.Context(), req.RefreshToken) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	tokens, err := auth.Issue(
		claims.Subject, claims.Role,
		h.cfg.JWTIssuer, h.cfg.JWTSigningKey,
		h.cfg.AccessTTL, h.cfg.RefreshTTL,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}

	// Rotate: the presented refresh token is revoked once used.
	if err := h.denylist.Add(c.Request.Context(), req.RefreshToken, claims.ExpiresAt.Time); err != nil {
		h.log.Warn("denylist add failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_at":    tokens.AccessExp.Unix(),
	})
}

// subjectID returns the caller's user id from the token claims.
func subjectID(c *gin.Context) (int64, bool) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
