package database

import (
	"context"

	"github.com/studyspot/studyspot/internal/entity"
)

// StateStore — типизированная key-value ячейка, долговременное
// хранилище сессии (аналог localStorage). Значения сериализуются в
// JSON. Load возвращает false, когда ключа нет: вызывающий подставляет
// свой дефолт.
type StateStore interface {
	Load(ctx context.Context, key string, dest any) (bool, error)
	Save(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// BookingRepository владеет коллекцией бронирований сессии.
// Все мутации проходят только через него.
type BookingRepository interface {
	GetAll(ctx context.Context) []entity.Booking
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
	Append(ctx context.Context, booking entity.Booking) error
	UpdateStatus(ctx context.Context, id string, status entity.BookingStatus) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// SessionRepository хранит состояние аутентификации сессии.
type SessionRepository interface {
	Get(ctx context.Context) entity.Session
	Save(ctx context.Context, session entity.Session) error
}

// DraftRepository хранит незавершенное состояние панели бронирования.
type DraftRepository interface {
	Get(ctx context.Context) (entity.BookingDraft, bool)
	Save(ctx context.Context, draft entity.BookingDraft) error
	Clear(ctx context.Context) error
}

// Ключи долговременного состояния.
const (
	KeyBookings   = "bookings"
	KeyDraft      = "bookingDraft"
	KeyIsLoggedIn = "isLoggedIn"
	KeyUserName   = "userName"
)
