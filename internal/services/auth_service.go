package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"stickerpress/internal/domain"
	"stickerpress/internal/repos"
)

var (
	// ErrBadCreds is deliberately uniform: callers never learn whether the
	// email or the password was wrong.
	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = errors.New("an account with this email already exists")
)

type AuthService struct {
	Users *repos.UserRepo
	// AdminEmail is the single privileged address. Admin is derived from
	// it at session time, never stored on the user record.
	AdminEmail string
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, hash, err := s.Users.ByEmailWithHash(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Register(name, email, password string) (*domain.User, error) {
	if _, err := s.Users.ByEmail(email); err == nil {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	return s.Users.Create(name, email, string(hash))
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}

func (s *AuthService) IsAdmin(u *domain.User) bool {
	return u != nil && s.AdminEmail != "" && strings.EqualFold(u.Email, s.AdminEmail)
}
