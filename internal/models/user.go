package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Name      string
	UserName  string
	IsActive  bool
	IsBanned  bool
	State     string
	City      string
}
