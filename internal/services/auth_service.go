package services

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadToken = errors.New("invalid operator token")

// AuthService guards the operator surface. There is a single operator
// credential: configured up front, or self-registered on the first login
// when none is configured. Sessions live in memory; the process serves one
// operator.
type AuthService struct {
	mu       sync.Mutex
	hash     []byte
	sessions map[string]bool
}

func NewAuthService(token string) (*AuthService, error) {
	s := &AuthService{sessions: map[string]bool{}}
	if token != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(token), 12)
		if err != nil {
			return nil, err
		}
		s.hash = h
	}
	return s, nil
}

// Login binds sid to the operator if the token matches. The first login
// registers the credential when none was configured.
func (s *AuthService) Login(sid, token string) error {
	if token == "" {
		return ErrBadToken
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hash == nil {
		h, err := bcrypt.GenerateFromPassword([]byte(token), 12)
		if err != nil {
			return err
		}
		s.hash = h
		s.sessions[sid] = true
		return nil
	}
	if bcrypt.CompareHashAndPassword(s.hash, []byte(token)) != nil {
		return ErrBadToken
	}
	s.sessions[sid] = true
	return nil
}

func (s *AuthService) Logout(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
}

func (s *AuthService) LoggedIn(sid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[sid]
}
