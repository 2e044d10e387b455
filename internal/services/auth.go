package services

import (
	"feirarinos/internal/backend"
	"feirarinos/internal/domain"
)

// AuthService signs vendors in against the identity provider and binds
// the result to the browser session.
type AuthService struct {
	Identity backend.Identity
	Sessions backend.SessionStore
}

func (s *AuthService) Login(sid, email, password string) (string, error) {
	uid, err := s.Identity.SignIn(email, password)
	if err != nil {
		return "", err
	}
	if err := s.Sessions.BindSession(sid, uid); err != nil {
		return "", err
	}
	return uid, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Sessions.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Sessions.SessionUser(sid)
}
