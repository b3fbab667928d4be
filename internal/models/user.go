package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleJobSeeker UserRole = "jobseeker"
	RoleEmployer  UserRole = "employer"
)

func (r UserRole) Valid() bool {
	return r == RoleJobSeeker || r == RoleEmployer
}

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"` // stored lowercased
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         UserRole           `bson:"role" json:"role"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// FileRef locates an uploaded object.
type FileRef struct {
	Key string `bson:"key" json:"key"`
	URL string `bson:"url" json:"url"`
}

func (f *FileRef) Empty() bool { return f == nil || f.Key == "" }
