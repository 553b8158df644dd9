package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleOwner Role = "owner"
	RoleStaff Role = "staff"
)

// User represents an account that can sign in to manage the studio
// (the studio owner or a staff member).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Password-reset state. The token is emailed to the user and cleared
	// once consumed; an expired token is treated as absent.
	ResetToken        string     `bson:"resetToken,omitempty" json:"-"`
	ResetTokenExpires *time.Time `bson:"resetTokenExpires,omitempty" json:"-"`
}

func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}
