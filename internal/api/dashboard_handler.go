package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"agendia/studio-server/internal/domain"
	"agendia/studio-server/internal/engine"
	"agendia/studio-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DashboardHandler serves the dashboard reads (summary cards, today's
// sessions, notifications) and the notification commands.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// --- Response Structs ---

// SessionSummaryResponse flattens an engine.SessionSummary for the
// session list.
type SessionSummaryResponse struct {
	ID                string  `json:"id"`
	DayOfWeek         string  `json:"dayOfWeek"`
	Time              string  `json:"time"`
	SessionType       string  `json:"sessionType"`
	ActivityName      string  `json:"activityName"`
	SpecialistName    string  `json:"specialistName"`
	SpaceName         string  `json:"spaceName"`
	TimeOfDay         string  `json:"timeOfDay"`
	EnrolledCount     int     `json:"enrolledCount"`
	Capacity          int     `json:"capacity"`
	Utilization       float64 `json:"utilization"`
	IsFull            bool    `json:"isFull"`
	IsNearlyFull      bool    `json:"isNearlyFull"`
	AttendanceAllowed bool    `json:"attendanceAllowed"`
}

// NotificationResponse is a resolved notification ready for display.
type NotificationResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"createdAt"`
	Stale        bool      `json:"stale"`
	CanEnroll    bool      `json:"canEnroll"`
	PersonID     string    `json:"personId,omitempty"`
	PersonName   string    `json:"personName,omitempty"`
	SessionID    string    `json:"sessionId,omitempty"`
	SessionDay   string    `json:"sessionDay,omitempty"`
	SessionTime  string    `json:"sessionTime,omitempty"`
	ActivityName string    `json:"activityName,omitempty"`
}

type EnrollFromWaitlistRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	PersonID  string `json:"personId" binding:"required"`
}

// --- Handler Methods ---

// GetSummary returns the dashboard card counters.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute dashboard summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetSessions returns the (filtered) session list for a date, today by
// default, sorted by start time.
func (h *DashboardHandler) GetSessions(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(domain.AttendanceDateLayout, raw, time.Local)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	filter, err := parseSessionFilter(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	summaries, err := h.dashboardService.SessionsOn(c.Request.Context(), date, filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute session list")
		return
	}

	now := time.Now()
	response := make([]SessionSummaryResponse, 0, len(summaries))
	for _, sum := range summaries {
		response = append(response, SessionSummaryResponse{
			ID:                sum.Session.ID.Hex(),
			DayOfWeek:         sum.Session.DayOfWeek,
			Time:              sum.Session.Time,
			SessionType:       string(sum.Session.SessionType),
			ActivityName:      sum.ActivityName,
			SpecialistName:    sum.SpecialistName,
			SpaceName:         sum.SpaceName,
			TimeOfDay:         string(sum.TimeOfDay),
			EnrolledCount:     sum.EnrolledCount,
			Capacity:          sum.Capacity,
			Utilization:       sum.Utilization,
			IsFull:            sum.IsFull,
			IsNearlyFull:      sum.IsNearlyFull,
			AttendanceAllowed: engine.AttendanceAllowed(sum.Session, date, now),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"dayName":  domain.WeekdayName(date),
		"date":     date.Format(domain.AttendanceDateLayout),
		"sessions": response,
	})
}

// GetNotifications returns the resolved notifications, newest first.
func (h *DashboardHandler) GetNotifications(c *gin.Context) {
	notifications, err := h.dashboardService.Notifications(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve notifications")
		return
	}

	response := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		item := NotificationResponse{
			ID:        n.Notification.ID.Hex(),
			Type:      string(n.Notification.Type),
			CreatedAt: n.Notification.CreatedAt,
			Stale:     n.Stale,
			CanEnroll: n.CanEnroll,
		}
		if n.Person != nil {
			item.PersonID = n.Person.ID.Hex()
			item.PersonName = n.Person.Name
		}
		if n.Session != nil {
			item.SessionID = n.Session.ID.Hex()
			item.SessionDay = n.Session.DayOfWeek
			item.SessionTime = n.Session.Time
		}
		if n.Activity != nil {
			item.ActivityName = n.Activity.Name
		}
		response = append(response, item)
	}

	c.JSON(http.StatusOK, response)
}

// DismissNotification removes a notification.
func (h *DashboardHandler) DismissNotification(c *gin.Context) {
	notificationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid notification ID format")
		return
	}

	err = h.dashboardService.DismissNotification(c.Request.Context(), notificationID)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to dismiss notification")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// EnrollFromWaitlist enrolls the waitlisted person into the session and
// consumes the notification.
func (h *DashboardHandler) EnrollFromWaitlist(c *gin.Context) {
	notificationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid notification ID format")
		return
	}

	var req EnrollFromWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(req.SessionID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format")
		return
	}
	personID, err := primitive.ObjectIDFromHex(req.PersonID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid person ID format")
		return
	}

	err = h.dashboardService.EnrollFromWaitlist(c.Request.Context(), notificationID, sessionID, personID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotificationNotFound),
			errors.Is(err, service.ErrSessionNotFound),
			errors.Is(err, service.ErrPersonNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotWaitlist),
			errors.Is(err, service.ErrNotificationMismatch),
			errors.Is(err, service.ErrPersonInactive):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to enroll from waitlist")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Person enrolled"})
}

// parseSessionFilter reads the optional equality filters off the query
// string. Absent parameters impose no restriction.
func parseSessionFilter(c *gin.Context) (engine.SessionFilter, error) {
	var filter engine.SessionFilter

	parse := func(name string, dst *primitive.ObjectID) error {
		raw := c.Query(name)
		if raw == "" || raw == "all" {
			return nil
		}
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return fmt.Errorf("invalid %s format", name)
		}
		*dst = id
		return nil
	}
	if err := parse("activityId", &filter.ActivityID); err != nil {
		return filter, err
	}
	if err := parse("spaceId", &filter.SpaceID); err != nil {
		return filter, err
	}
	if err := parse("specialistId", &filter.SpecialistID); err != nil {
		return filter, err
	}

	switch tod := c.Query("timeOfDay"); tod {
	case "", "all":
	case string(engine.Morning), string(engine.Afternoon), string(engine.Evening):
		filter.TimeOfDay = engine.TimeOfDay(tod)
	default:
		return filter, errors.New("invalid timeOfDay, expected morning, afternoon or evening")
	}

	return filter, nil
}
