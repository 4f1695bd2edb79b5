package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"attendance/internal/attendance"
	"attendance/internal/auth"
	"attendance/internal/config"
	"attendance/internal/institute"
	"attendance/internal/leave"
	"attendance/internal/metrics"
	"attendance/internal/user"
)

// Handler wires the HTTP surface to the services behind it.
type Handler struct {
	cfg        config.App
	users      *user.Service
	att        *attendance.Service
	leaves     *leave.Service
	institutes *institute.Service
	denylist   *auth.Denylist
	metrics    *metrics.Metrics
	log        *zap.Logger
}

// New creates a handler.
func New(
	cfg config.App,
	users *user.Service,
	att *attendance.Service,
	leaves *leave.Service,
	institutes *institute.Service,
	denylist *auth.Denylist,
	m *metrics.Metrics,
	log *zap.Logger,
) *Handler {
	return &Handler{
		cfg:        cfg,
		users:      users,
		att:        att,
		leaves:     leaves,
		institutes: institutes,
		denylist:   denylist,
		metrics:    m,
		log:        log,
	}
}

// Register mounts all routes on the router.
func (h *Handler) Register(r *gin.Engine) {
	authmw := auth.NewMiddleware(h.cfg.JWTSigningKey, h.cfg.JWTIssuer, h.denylist)

	r.POST("/auth/login", h.login)
	r.POST("/auth/logout", h.logout)
	r.POST("/auth/refresh", h.refresh)

	v1 := r.Group("/v1", authmw.Authenticated())
	{
		v1.POST("/checkins", h.checkIn)
		v1.POST("/leave-requests", h.submitLeave)
		v1.GET("/attendance/me/latest", h.myLatestToday)
	}

	admin := r.Group("/admin", authmw.RequireRole(string(user.RoleAdmin)))
	{
		admin.GET("/attendance/today", h.todayAttendance)
		admin.GET("/attendance", h.allAttendance)
		admin.GET("/attendance/user/:id", h.attendanceByUser)
		admin.GET("/attendance/date", h.attendanceByDate)
		admin.GET("/attendance/present/count", h.presentCount)
		admin.GET("/absentees", h.absentees)
		admin.GET("/absentees/count", h.absenteeCount)
		admin.GET("/users", h.listUsers)
		admin.GET("/users/count", h.userCount)
		admin.GET("/user/:email", h.userByEmail)
		admin.PUT("/user/:id", h.updateUser)
		admin.DELETE("/user/:id", h.deleteUser)
		admin.GET("/institutes", h.listInstitutes)
		admin.GET("/leave-requests", h.listLeaveRequests)
		admin.POST("/leave-requests/:id/approve", h.approveLeave)
		admin.POST("/leave-requests/:id/reject", h.rejectLeave)
	}
}

// fail translates service errors into status codes: malformed input is the
// client's fault, unknown ids are 404, everything else is a server failure
// with the message embedded.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, attendance.ErrBadDate), errors.Is(err, leave.ErrBadStatus), errors.Is(err, institute.ErrNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, leave.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, attendance.ErrAlreadyMarked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
