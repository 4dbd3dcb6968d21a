package database

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/studyspot/studyspot/internal/entity"
)

// bookingRepository держит коллекцию бронирований в памяти и
// синхронизирует ее в StateStore при каждом изменении. Память
// авторитетна для сессии: ошибка записи в хранилище логируется и не
// прерывает операцию.
type bookingRepository struct {
	mu       sync.RWMutex
	bookings []entity.Booking
	store    StateStore
}

// NewBookingRepository гидрирует коллекцию из хранилища; отсутствующий
// ключ означает пустую коллекцию.
func NewBookingRepository(ctx context.Context, store StateStore) (BookingRepository, error) {
	repo := &bookingRepository{store: store}

	found, err := store.Load(ctx, KeyBookings, &repo.bookings)
	if err != nil {
		return nil, err
	}
	if !found {
		repo.bookings = []entity.Booking{}
	}

	return repo, nil
}

// persist вызывается под mu: запись в хранилище происходит в той же
// критической секции, что и изменение памяти, поэтому окна расхождения
// между ними нет.
func (r *bookingRepository) persist(ctx context.Context) {
	if err := r.store.Save(ctx, KeyBookings, r.bookings); err != nil {
		logrus.Errorf("Failed to persist bookings, in-memory state remains authoritative: %v", err)
	}
}

func (r *bookingRepository) GetAll(ctx context.Context) []entity.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Booking, len(r.bookings))
	copy(out, r.bookings)
	return out
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.bookings {
		if r.bookings[i].ID == id {
			b := r.bookings[i]
			return &b, nil
		}
	}
	return nil, entity.ErrBookingNotFound
}

func (r *bookingRepository) Append(ctx context.Context, booking entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bookings = append(r.bookings, booking)
	r.persist(ctx)
	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, status entity.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.bookings {
		if r.bookings[i].ID == id {
			r.bookings[i].Status = status
			r.persist(ctx)
			return nil
		}
	}
	return entity.ErrBookingNotFound
}

// Delete удаляет бронь безвозвратно. Отсутствующий id — no-op.
func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.bookings {
		if r.bookings[i].ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			r.persist(ctx)
			return nil
		}
	}
	return nil
}

func (r *bookingRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bookings = []entity.Booking{}
	r.persist(ctx)
	return nil
}
