package database

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/studyspot/studyspot/internal/entity"
)

type draftRepository struct {
	mu       sync.RWMutex
	draft    entity.BookingDraft
	hasDraft bool
	store    StateStore
}

func NewDraftRepository(ctx context.Context, store StateStore) (DraftRepository, error) {
	repo := &draftRepository{store: store}

	found, err := store.Load(ctx, KeyDraft, &repo.draft)
	if err != nil {
		return nil, err
	}
	repo.hasDraft = found

	return repo, nil
}

func (r *draftRepository) Get(ctx context.Context) (entity.BookingDraft, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.draft, r.hasDraft
}

func (r *draftRepository) Save(ctx context.Context, draft entity.BookingDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.draft = draft
	r.hasDraft = true
	if err := r.store.Save(ctx, KeyDraft, draft); err != nil {
		logrus.Errorf("Failed to persist booking draft: %v", err)
	}
	return nil
}

func (r *draftRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.draft = entity.BookingDraft{}
	r.hasDraft = false
	if err := r.store.Delete(ctx, KeyDraft); err != nil {
		logrus.Errorf("Failed to clear booking draft: %v", err)
	}
	return nil
}
