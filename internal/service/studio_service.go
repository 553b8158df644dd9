package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"agendia/studio-server/internal/domain"
	"agendia/studio-server/internal/engine"
	"agendia/studio-server/internal/repository"
	"agendia/studio-server/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrInvalidDayOfWeek = errors.New("day of week is not a recognized day name")
	ErrInvalidTime      = errors.New("time must be in HH:MM 24h format")
	ErrPhotoMissing     = errors.New("person has no profile photo")
	ErrPhotoURLFailed   = errors.New("failed to generate photo URL")
)

// UploadURLResponse carries a presigned upload URL and the object key the
// client must report back once the upload succeeded.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// PersonOverview is a person together with the derived facts the member
// list shows.
type PersonOverview struct {
	Person          domain.Person        `json:"person"`
	PaymentStatus   engine.PaymentStatus `json:"paymentStatus"`
	OnVacation      bool                 `json:"onVacation"`
	RecoveryBalance int                  `json:"recoveryBalance"`
}

// StudioService manages the studio's master data: members, weekly
// sessions, and the activity/specialist/space catalog.
type StudioService interface {
	CreatePerson(ctx context.Context, person *domain.Person) (*domain.Person, error)
	UpdatePerson(ctx context.Context, person *domain.Person) (*domain.Person, error)
	ListPeople(ctx context.Context) ([]domain.Person, error)
	// PeopleOverview lists everyone with their derived payment, vacation
	// and make-up credit state at the given instant.
	PeopleOverview(ctx context.Context, now time.Time) ([]PersonOverview, error)

	CreateSession(ctx context.Context, session *domain.Session) (*domain.Session, error)
	ListSessions(ctx context.Context) ([]domain.Session, error)

	CreateActivity(ctx context.Context, name string) (*domain.Activity, error)
	ListActivities(ctx context.Context) ([]domain.Activity, error)
	CreateSpecialist(ctx context.Context, name string) (*domain.Specialist, error)
	ListSpecialists(ctx context.Context) ([]domain.Specialist, error)
	CreateSpace(ctx context.Context, name string, capacity int) (*domain.Space, error)
	ListSpaces(ctx context.Context) ([]domain.Space, error)

	// Profile photo upload flow: the client asks for a presigned PUT URL,
	// uploads directly to object storage, then confirms the object key.
	RequestPhotoUploadURL(ctx context.Context, personID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
	ConfirmPhoto(ctx context.Context, personID primitive.ObjectID, objectKey string) error
	PhotoURL(ctx context.Context, personID primitive.ObjectID) (string, error)
}

// studioService implements the StudioService interface.
type studioService struct {
	personRepo     repository.PersonRepository
	sessionRepo    repository.SessionRepository
	attendanceRepo repository.AttendanceRepository
	activityRepo   repository.ActivityRepository
	specialistRepo repository.SpecialistRepository
	spaceRepo      repository.SpaceRepository
	fileStorage    storage.FileStorage
}

// NewStudioService creates a new instance of studioService.
func NewStudioService(
	personRepo repository.PersonRepository,
	sessionRepo repository.SessionRepository,
	attendanceRepo repository.AttendanceRepository,
	activityRepo repository.ActivityRepository,
	specialistRepo repository.SpecialistRepository,
	spaceRepo repository.SpaceRepository,
	fileStorage storage.FileStorage,
) StudioService {
	return &studioService{
		personRepo:     personRepo,
		sessionRepo:    sessionRepo,
		attendanceRepo: attendanceRepo,
		activityRepo:   activityRepo,
		specialistRepo: specialistRepo,
		spaceRepo:      spaceRepo,
		fileStorage:    fileStorage,
	}
}

// === People ===

func (s *studioService) CreatePerson(ctx context.Context, person *domain.Person) (*domain.Person, error) {
	if person.Name == "" {
		return nil, errors.New("person name is required")
	}
	id, err := s.personRepo.Create(ctx, person)
	if err != nil {
		return nil, err
	}
	return s.personRepo.GetByID(ctx, id)
}

func (s *studioService) UpdatePerson(ctx context.Context, person *domain.Person) (*domain.Person, error) {
	if person.Name == "" {
		return nil, errors.New("person name is required")
	}
	if err := s.personRepo.Update(ctx, person); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}
	return s.personRepo.GetByID(ctx, person.ID)
}

func (s *studioService) ListPeople(ctx context.Context) ([]domain.Person, error) {
	return s.personRepo.GetAll(ctx)
}

// PeopleOverview enriches the member list with derived state.
func (s *studioService) PeopleOverview(ctx context.Context, now time.Time) ([]PersonOverview, error) {
	people, err := s.personRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	attendance, err := s.attendanceRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	snap := &engine.Snapshot{People: people, Attendance: attendance}
	balances := snap.RecoveryBalances()

	overview := make([]PersonOverview, 0, len(people))
	for i := range people {
		p := people[i]
		overview = append(overview, PersonOverview{
			Person:          p,
			PaymentStatus:   engine.PaymentStatusOf(&p, now),
			OnVacation:      engine.OnVacation(&p, now),
			RecoveryBalance: balances[p.ID],
		})
	}
	return overview, nil
}

// === Sessions ===

func (s *studioService) CreateSession(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	if !validDayName(session.DayOfWeek) {
		return nil, ErrInvalidDayOfWeek
	}
	if !engine.ValidClock(session.Time) {
		return nil, ErrInvalidTime
	}
	if session.SessionType == "" {
		session.SessionType = domain.SessionGroup
	}
	id, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	return s.sessionRepo.GetByID(ctx, id)
}

func (s *studioService) ListSessions(ctx context.Context) ([]domain.Session, error) {
	return s.sessionRepo.GetAll(ctx)
}

func validDayName(day string) bool {
	switch day {
	case domain.DaySunday, domain.DayMonday, domain.DayTuesday, domain.DayWednesday,
		domain.DayThursday, domain.DayFriday, domain.DaySaturday:
		return true
	}
	return false
}

// === Catalog ===

func (s *studioService) CreateActivity(ctx context.Context, name string) (*domain.Activity, error) {
	activity := &domain.Activity{Name: name}
	if _, err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *studioService) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	return s.activityRepo.GetAll(ctx)
}

func (s *studioService) CreateSpecialist(ctx context.Context, name string) (*domain.Specialist, error) {
	specialist := &domain.Specialist{Name: name}
	if _, err := s.specialistRepo.Create(ctx, specialist); err != nil {
		return nil, err
	}
	return specialist, nil
}

func (s *studioService) ListSpecialists(ctx context.Context) ([]domain.Specialist, error) {
	return s.specialistRepo.GetAll(ctx)
}

func (s *studioService) CreateSpace(ctx context.Context, name string, capacity int) (*domain.Space, error) {
	space := &domain.Space{Name: name, Capacity: capacity}
	if _, err := s.spaceRepo.Create(ctx, space); err != nil {
		return nil, err
	}
	return space, nil
}

func (s *studioService) ListSpaces(ctx context.Context) ([]domain.Space, error) {
	return s.spaceRepo.GetAll(ctx)
}

// === Profile photos ===

// RequestPhotoUploadURL generates a presigned URL for uploading a
// person's profile photo directly to object storage.
func (s *studioService) RequestPhotoUploadURL(ctx context.Context, personID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	if personID == primitive.NilObjectID {
		return nil, errors.New("person ID is required")
	}
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, errors.New("invalid or missing image content type")
	}

	if _, err := s.personRepo.GetByID(ctx, personID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}

	fileExtension := ""
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("photos", personID.Hex(), fmt.Sprintf("%s.%s", uuid.NewString(), fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrPhotoURLFailed
	}
	return &UploadURLResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmPhoto records the uploaded object key on the person, deleting
// any previously stored photo.
func (s *studioService) ConfirmPhoto(ctx context.Context, personID primitive.ObjectID, objectKey string) error {
	if objectKey == "" {
		return errors.New("object key is required")
	}
	person, err := s.personRepo.GetByID(ctx, personID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPersonNotFound
		}
		return err
	}

	if err := s.personRepo.SetPhotoObjectKey(ctx, personID, objectKey); err != nil {
		return err
	}

	if person.PhotoObjectKey != "" && person.PhotoObjectKey != objectKey {
		// Best effort; an orphaned object is not worth failing the request.
		_ = s.fileStorage.DeleteObject(ctx, person.PhotoObjectKey)
	}
	return nil
}

// PhotoURL generates a temporary download URL for the person's photo.
func (s *studioService) PhotoURL(ctx context.Context, personID primitive.ObjectID) (string, error) {
	person, err := s.personRepo.GetByID(ctx, personID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrPersonNotFound
		}
		return "", err
	}
	if person.PhotoObjectKey == "" {
		return "", ErrPhotoMissing
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, person.PhotoObjectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrPhotoURLFailed
	}
	return url, nil
}
