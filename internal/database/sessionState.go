package database

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/studyspot/studyspot/internal/entity"
)

// sessionRepository хранит флаг isLoggedIn и userName как отдельные
// ячейки состояния, по одной на ключ.
type sessionRepository struct {
	mu      sync.RWMutex
	session entity.Session
	store   StateStore
}

func NewSessionRepository(ctx context.Context, store StateStore) (SessionRepository, error) {
	repo := &sessionRepository{store: store}

	if _, err := store.Load(ctx, KeyIsLoggedIn, &repo.session.IsLoggedIn); err != nil {
		return nil, err
	}
	if _, err := store.Load(ctx, KeyUserName, &repo.session.UserName); err != nil {
		return nil, err
	}

	return repo, nil
}

func (r *sessionRepository) Get(ctx context.Context) entity.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.session
}

func (r *sessionRepository) Save(ctx context.Context, session entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.session = session
	if err := r.store.Save(ctx, KeyIsLoggedIn, session.IsLoggedIn); err != nil {
		logrus.Errorf("Failed to persist login flag: %v", err)
	}
	if err := r.store.Save(ctx, KeyUserName, session.UserName); err != nil {
		logrus.Errorf("Failed to persist user name: %v", err)
	}
	return nil
}
