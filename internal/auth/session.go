package auth

import (
	"time"

	"github.com/google/uuid"
)

// Session is the console's logged-in identity. The password is kept because
// account deletion asks the engine to match it again.
type Session struct {
	ID       string
	UserName string
	Password string
	Started  time.Time
}

func NewSession(user, password string) *Session {
	return &Session{
		ID:       uuid.New().String(),
		UserName: user,
		Password: password,
		Started:  time.Now(),
	}
}
