package model

import "time"

// Session identifies the signed-in user. UserID scopes every remote call.
type Session struct {
	CreatedAt time.Time
	UserID    string
	Email     string
	Name      string
}

// Valid reports whether the session can authenticate remote calls.
func (s *Session) Valid() bool {
	return s != nil && s.UserID != ""
}
