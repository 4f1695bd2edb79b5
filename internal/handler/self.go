package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) checkIn(c *gin.Context) {
	userID, ok := subjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid subject"})
		return
	}

	var req struct {
		LoginOption string `json:"login_option" binding:"required"`
		Institute   string `json:"institute" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.att.CheckIn(c.Request.Context(), userID, req.LoginOption, req.Institute)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.metrics.CheckIns.Inc()
	c.JSON(http.StatusCreated, rec)
}

func (h *Handler) submitLeave(c *gin.Context) {
	userID, ok := subjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid subject"})
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.leaves.Submit(c.Request.Context(), userID, req.Reason)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) myLatestToday(c *gin.Context) {
	userID, ok := subjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid subject"})
		return
	}

	rec, err := h.att.LatestForUserToday(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no attendance today"})
		return
	}
	c.JSON(http.StatusOK, rec)
}
