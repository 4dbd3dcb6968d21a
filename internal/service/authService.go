package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyspot/studyspot/internal/database"
	"github.com/studyspot/studyspot/internal/entity"
)

// authService — name-only заглушка: имя доверяется как есть, никакой
// проверки подлинности по контракту нет.
type authService struct {
	sessions database.SessionRepository
	toasts   ToastService
}

func NewAuthService(sessions database.SessionRepository, toasts ToastService) AuthService {
	return &authService{
		sessions: sessions,
		toasts:   toasts,
	}
}

func (s *authService) Session(ctx context.Context) entity.Session {
	return s.sessions.Get(ctx)
}

func (s *authService) Login(ctx context.Context, name string) (entity.Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.Session{}, entity.ErrInvalidInput
	}

	session := entity.Session{IsLoggedIn: true, UserName: name}
	if err := s.sessions.Save(ctx, session); err != nil {
		return entity.Session{}, err
	}

	s.toasts.Add(ctx, fmt.Sprintf("Welcome back, %s!", name), entity.ToastSuccess)
	return session, nil
}

func (s *authService) Logout(ctx context.Context) error {
	if err := s.sessions.Save(ctx, entity.Session{}); err != nil {
		return err
	}

	s.toasts.Add(ctx, "Logged out successfully", entity.ToastInfo)
	return nil
}
