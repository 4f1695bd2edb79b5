package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"attendance/internal/leave"
	"attendance/internal/user"
)

func (h *Handler) todayAttendance(c *gin.Context) {
	records, err := h.att.Today(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *Handler) allAttendance(c *gin.Context) {
	records, err := h.att.All(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *Handler) attendanceByUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	records, err := h.att.ByUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *Handler) attendanceByDate(c *gin.Context) {
	records, err := h.att.ByDate(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *Handler) presentCount(c *gin.Context) {
	count, err := h.att.CountPresentToday(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"present": count})
}

func (h *Handler) absentees(c *gin.Context) {
	absent, err := h.att.Absentees(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"absentees": absent})
}

func (h *Handler) absenteeCount(c *gin.Context) {
	count, err := h.att.CountAbsentees(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"absent": count})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.NonAdmins(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *Handler) userCount(c *gin.Context) {
	count, err := h.users.CountNonAdmins(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": count})
}

func (h *Handler) userByEmail(c *gin.Context) {
	u, err := h.users.ByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) updateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var upd user.Update
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.users.UpdateAccount(c.Request.Context(), id, upd)
	if err != nil {
		h.fail(c, err)
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.users.DeleteAccount(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listInstitutes(c *gin.Context) {
	institutes, err := h.institutes.All(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"institutes": institutes})
}

func (h *Handler) listLeaveRequests(c *gin.Context) {
	requests, err := h.leaves.All(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leave_requests": requests})
}

func (h *Handler) approveLeave(c *gin.Context) {
	h.decideLeave(c, leave.StatusAccepted)
}

func (h *Handler) rejectLeave(c *gin.Context) {
	h.decideLeave(c, leave.StatusRejected)
}

func (h *Handler) decideLeave(c *gin.Context, status leave.Status) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.leaves.Decide(c.Request.Context(), id, status); err != nil {
		h.fail(c, err)
		return
	}
	h.metrics.LeaveDecided.WithLabelValues(string(status)).Inc()
	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
