package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrSchoolExists = errors.New("school already exists")
var ErrSchoolNotFound = errors.New("school not found")
var ErrInvalidCredentials = errors.New("invalid credentials")

// School is a tenant account: the unit of data isolation. Usernames are
// unique across all schools; the password hash is never serialized outward.
type School struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
