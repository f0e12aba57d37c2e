package services

import (
	"errors"

	"cocobloom/internal/domain"
	"cocobloom/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

// IdentityListener is notified after a session's user changes. u is nil on
// sign-out.
type IdentityListener func(sid string, u *domain.User)

type AuthService struct {
	Users     *repos.UserRepo
	listeners []IdentityListener
}

// Subscribe registers a listener for identity changes. Not safe to call after
// the server starts serving; all subscriptions happen during wiring.
func (s *AuthService) Subscribe(fn IdentityListener) {
	s.listeners = append(s.listeners, fn)
}

func (s *AuthService) fire(sid string, u *domain.User) {
	for _, fn := range s.listeners {
		fn(sid, u)
	}
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	s.fire(sid, u)
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	err := s.Users.UnbindSession(sid)
	s.fire(sid, nil)
	return err
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
