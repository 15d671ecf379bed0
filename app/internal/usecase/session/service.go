package session

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidSession = errors.New("invalid session")

type TokenService interface {
	GenerateToken(sessionID string) (string, error)
	ParseToken(token string) (string, error)
}

type Session struct {
	ID    string
	Token string
}

// Service issues anonymous cart sessions. A session id names the cart's
// persistence slot; the token proves the client owns it.
type Service struct {
	tokens TokenService
	newID  func() string
}

func NewService(tokens TokenService) *Service {
	return &Service{
		tokens: tokens,
		newID:  func() string { return uuid.NewString() },
	}
}

func (s *Service) Start() (*Session, error) {
	id := s.newID()
	token, err := s.tokens.GenerateToken(id)
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, Token: token}, nil
}

func (s *Service) Resolve(token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSession
	}
	id, err := s.tokens.ParseToken(token)
	if err != nil {
		return "", errors.Join(ErrInvalidSession, err)
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", errors.Join(ErrInvalidSession, err)
	}
	return id, nil
}
