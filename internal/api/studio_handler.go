package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"agendia/studio-server/internal/domain"
	"agendia/studio-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudioHandler serves the master-data management endpoints: members,
// weekly sessions, the catalog, and profile photos.
type StudioHandler struct {
	studioService service.StudioService
}

// NewStudioHandler creates a new StudioHandler.
func NewStudioHandler(studioService service.StudioService) *StudioHandler {
	return &StudioHandler{studioService: studioService}
}

// --- Request Structs ---

type VacationRangeRequest struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

type PersonRequest struct {
	Name           string                 `json:"name" binding:"required"`
	Phone          string                 `json:"phone"`
	Status         string                 `json:"status" binding:"omitempty,oneof=active inactive"`
	PaymentDueDate *time.Time             `json:"paymentDueDate"`
	Vacations      []VacationRangeRequest `json:"vacations"`
}

type CreateSessionRequest struct {
	DayOfWeek    string   `json:"dayOfWeek" binding:"required"`
	Time         string   `json:"time" binding:"required"`
	SessionType  string   `json:"sessionType" binding:"omitempty,oneof=Individual Group"`
	ActivityID   string   `json:"activityId" binding:"required"`
	SpecialistID string   `json:"specialistId" binding:"required"`
	SpaceID      string   `json:"spaceId" binding:"required"`
	PersonIDs    []string `json:"personIds"`
}

type CreateNamedRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateSpaceRequest struct {
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

type PhotoUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmPhotoRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// --- People ---

func (h *StudioHandler) CreatePerson(c *gin.Context) {
	var req PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	person, err := h.studioService.CreatePerson(c.Request.Context(), personFromRequest(req))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create person")
		return
	}
	c.JSON(http.StatusCreated, person)
}

func (h *StudioHandler) UpdatePerson(c *gin.Context) {
	personID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid person ID format")
		return
	}

	var req PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	person := personFromRequest(req)
	person.ID = personID
	updated, err := h.studioService.UpdatePerson(c.Request.Context(), person)
	if err != nil {
		if errors.Is(err, service.ErrPersonNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update person")
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetPeople lists everyone with their derived payment, vacation and
// make-up credit state.
func (h *StudioHandler) GetPeople(c *gin.Context) {
	overview, err := h.studioService.PeopleOverview(c.Request.Context(), time.Now())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list people")
		return
	}
	c.JSON(http.StatusOK, overview)
}

func personFromRequest(req PersonRequest) *domain.Person {
	person := &domain.Person{
		Name:           req.Name,
		Phone:          req.Phone,
		Status:         domain.PersonStatus(req.Status),
		PaymentDueDate: req.PaymentDueDate,
	}
	if person.Status == "" {
		person.Status = domain.PersonActive
	}
	for _, v := range req.Vacations {
		person.Vacations = append(person.Vacations, domain.VacationRange{Start: v.Start, End: v.End})
	}
	return person
}

// --- Sessions ---

func (h *StudioHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session := &domain.Session{
		DayOfWeek:   req.DayOfWeek,
		Time:        req.Time,
		SessionType: domain.SessionType(req.SessionType),
	}
	var err error
	if session.ActivityID, err = primitive.ObjectIDFromHex(req.ActivityID); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid activity ID format")
		return
	}
	if session.SpecialistID, err = primitive.ObjectIDFromHex(req.SpecialistID); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid specialist ID format")
		return
	}
	if session.SpaceID, err = primitive.ObjectIDFromHex(req.SpaceID); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid space ID format")
		return
	}
	for _, hex := range req.PersonIDs {
		pid, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid person ID in personIds")
			return
		}
		session.PersonIDs = append(session.PersonIDs, pid)
	}

	created, err := h.studioService.CreateSession(c.Request.Context(), session)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDayOfWeek) || errors.Is(err, service.ErrInvalidTime) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create session")
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *StudioHandler) GetSessions(c *gin.Context) {
	sessions, err := h.studioService.ListSessions(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list sessions")
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// --- Catalog ---

func (h *StudioHandler) CreateActivity(c *gin.Context) {
	var req CreateNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	activity, err := h.studioService.CreateActivity(c.Request.Context(), req.Name)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create activity")
		return
	}
	c.JSON(http.StatusCreated, activity)
}

func (h *StudioHandler) GetActivities(c *gin.Context) {
	activities, err := h.studioService.ListActivities(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list activities")
		return
	}
	c.JSON(http.StatusOK, activities)
}

func (h *StudioHandler) CreateSpecialist(c *gin.Context) {
	var req CreateNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	specialist, err := h.studioService.CreateSpecialist(c.Request.Context(), req.Name)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create specialist")
		return
	}
	c.JSON(http.StatusCreated, specialist)
}

func (h *StudioHandler) GetSpecialists(c *gin.Context) {
	specialists, err := h.studioService.ListSpecialists(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list specialists")
		return
	}
	c.JSON(http.StatusOK, specialists)
}

func (h *StudioHandler) CreateSpace(c *gin.Context) {
	var req CreateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	space, err := h.studioService.CreateSpace(c.Request.Context(), req.Name, req.Capacity)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create space")
		return
	}
	c.JSON(http.StatusCreated, space)
}

func (h *StudioHandler) GetSpaces(c *gin.Context) {
	spaces, err := h.studioService.ListSpaces(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list spaces")
		return
	}
	c.JSON(http.StatusOK, spaces)
}

// --- Profile photos ---

func (h *StudioHandler) RequestPhotoUploadURL(c *gin.Context) {
	personID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid person ID format")
		return
	}
	var req PhotoUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	resp, err := h.studioService.RequestPhotoUploadURL(c.Request.Context(), personID, req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPersonNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPhotoURLFailed):
			abortWithError(c, http.StatusInternalServerError, err.Error())
		default:
			abortWithError(c, http.StatusBadRequest, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StudioHandler) ConfirmPhoto(c *gin.Context) {
	personID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid person ID format")
		return
	}
	var req ConfirmPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.studioService.ConfirmPhoto(c.Request.Context(), personID, req.ObjectKey); err != nil {
		if errors.Is(err, service.ErrPersonNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to confirm photo")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Photo updated"})
}

func (h *StudioHandler) GetPhotoURL(c *gin.Context) {
	personID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid person ID format")
		return
	}

	url, err := h.studioService.PhotoURL(c.Request.Context(), personID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPersonNotFound), errors.Is(err, service.ErrPhotoMissing):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate photo URL")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
