package repository

import (
	"context"
	"time"

	"agendia/studio-server/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with account data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	SetResetToken(ctx context.Context, userID primitive.ObjectID, token string, expires time.Time) error
	GetByResetToken(ctx context.Context, token string) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID primitive.ObjectID, passwordHash string) error
}

// PersonRepository defines the interface for interacting with member data.
type PersonRepository interface {
	Create(ctx context.Context, person *domain.Person) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Person, error)
	GetAll(ctx context.Context) ([]domain.Person, error)
	Update(ctx context.Context, person *domain.Person) error
	SetPhotoObjectKey(ctx context.Context, personID primitive.ObjectID, objectKey string) error
}

// SessionRepository defines the interface for interacting with session data.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Session, error)
	GetAll(ctx context.Context) ([]domain.Session, error)
	Update(ctx context.Context, session *domain.Session) error
	// AddPersonToSession enrolls a person as a regular attendee. Adding a
	// person who is already enrolled is a no-op, not an error.
	AddPersonToSession(ctx context.Context, sessionID, personID primitive.ObjectID) error
}

// AttendanceRepository defines the interface for interacting with
// attendance records. At most one record exists per (session, date).
type AttendanceRepository interface {
	Upsert(ctx context.Context, record *domain.AttendanceRecord) error
	GetBySessionAndDate(ctx context.Context, sessionID primitive.ObjectID, date string) (*domain.AttendanceRecord, error)
	GetAll(ctx context.Context) ([]domain.AttendanceRecord, error)
}

// NotificationRepository defines the interface for interacting with
// dashboard notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Notification, error)
	GetAll(ctx context.Context) ([]domain.Notification, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ActivityRepository defines the interface for the activity catalog.
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) (primitive.ObjectID, error)
	GetAll(ctx context.Context) ([]domain.Activity, error)
}

// SpecialistRepository defines the interface for the specialist catalog.
type SpecialistRepository interface {
	Create(ctx context.Context, specialist *domain.Specialist) (primitive.ObjectID, error)
	GetAll(ctx context.Context) ([]domain.Specialist, error)
}

// SpaceRepository defines the interface for the space catalog.
type SpaceRepository interface {
	Create(ctx context.Context, space *domain.Space) (primitive.ObjectID, error)
	GetAll(ctx context.Context) ([]domain.Space, error)
}
