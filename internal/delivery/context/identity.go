package context

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	keyUserID   = "userID"
	keyUsername = "username"
)

// SetIdentity stores the authenticated subject on the echo context.
func SetIdentity(c echo.Context, userID uuid.UUID, username string) {
	c.Set(keyUserID, userID)
	c.Set(keyUsername, username)
}

// GetIdentity returns the subject stored by SetIdentity.
func GetIdentity(c echo.Context) (userID uuid.UUID, username string, ok bool) {
	userID, ok = c.Get(keyUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}

	username, ok = c.Get(keyUsername).(string)

	return userID, username, ok
}
