package api

import (
	"errors"
	"fmt"
	"net/http"

	"agendia/studio-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttendanceHandler serves the per-occurrence roster and the attendance
// submission endpoint.
type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

type RecordAttendanceRequest struct {
	Date                string   `json:"date" binding:"required"`
	PresentIDs          []string `json:"presentIds"`
	OneTimeAttendees    []string `json:"oneTimeAttendees"`
	JustifiedAbsenceIDs []string `json:"justifiedAbsenceIds"`
}

type RosterEntryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// GetRoster lists the expected attendees of a session occurrence.
func (h *AttendanceHandler) GetRoster(c *gin.Context) {
	sessionID, err := primitive.ObjectIDFromHex(c.Param("sessionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format")
		return
	}
	date := c.Query("date")
	if date == "" {
		abortWithError(c, http.StatusBadRequest, "Missing date query parameter")
		return
	}

	people, err := h.attendanceService.Roster(c.Request.Context(), sessionID, date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSessionNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to load roster")
		}
		return
	}

	response := make([]RosterEntryResponse, 0, len(people))
	for _, p := range people {
		response = append(response, RosterEntryResponse{
			ID:    p.ID.Hex(),
			Name:  p.Name,
			Phone: p.Phone,
		})
	}
	c.JSON(http.StatusOK, response)
}

// RecordAttendance writes the attendance record for a session
// occurrence, subject to the 20-minute window.
func (h *AttendanceHandler) RecordAttendance(c *gin.Context) {
	sessionID, err := primitive.ObjectIDFromHex(c.Param("sessionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	var req RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	changes, err := parseAttendanceChanges(req)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.attendanceService.RecordAttendance(c.Request.Context(), sessionID, req.Date, changes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate), errors.Is(err, service.ErrWrongWeekday):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrAttendanceWindowClosed):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrSessionNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to record attendance")
		}
		return
	}

	c.JSON(http.StatusOK, record)
}

func parseAttendanceChanges(req RecordAttendanceRequest) (service.AttendanceChanges, error) {
	var changes service.AttendanceChanges

	parse := func(field string, raw []string) ([]primitive.ObjectID, error) {
		ids := make([]primitive.ObjectID, 0, len(raw))
		for _, hex := range raw {
			id, err := primitive.ObjectIDFromHex(hex)
			if err != nil {
				return nil, fmt.Errorf("invalid person ID in %s", field)
			}
			ids = append(ids, id)
		}
		return ids, nil
	}

	var err error
	if changes.PresentIDs, err = parse("presentIds", req.PresentIDs); err != nil {
		return changes, err
	}
	if changes.OneTimeAttendees, err = parse("oneTimeAttendees", req.OneTimeAttendees); err != nil {
		return changes, err
	}
	if changes.JustifiedAbsenceIDs, err = parse("justifiedAbsenceIds", req.JustifiedAbsenceIDs); err != nil {
		return changes, err
	}
	return changes, nil
}
