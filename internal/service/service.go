package service

import (
	"context"
	"time"

	"github.com/studyspot/studyspot/internal/entity"
	"github.com/studyspot/studyspot/internal/slot"
)

// SpaceService — доступ к статическому каталогу пространств.
type SpaceService interface {
	GetAllSpaces(ctx context.Context) []entity.Space
	GetSpace(ctx context.Context, id string) (*entity.Space, error)
	SearchSpaces(ctx context.Context, query string) []entity.Space
}

// BookingService определяет операции над бронированиями: хранилище,
// workflow панели бронирования и аннотацию доступности слотов.
type BookingService interface {
	// Хранилище
	ListBookings(ctx context.Context) []entity.Booking
	AddBooking(ctx context.Context, req *CreateBookingRequest) (*entity.Booking, error)
	CancelBooking(ctx context.Context, id string) error
	RemoveBooking(ctx context.Context, id string) error
	ClearBookings(ctx context.Context) error

	// Доступность
	SlotOptions(ctx context.Context, spaceID, date string, now time.Time) ([]slot.Option, error)

	// Workflow панели бронирования
	GetDraft(ctx context.Context) (*DraftState, error)
	StartDraft(ctx context.Context, spaceID string) (*DraftState, error)
	UpdateDraft(ctx context.Context, field, value string, now time.Time) (*DraftState, error)
	ConfirmDraft(ctx context.Context, now time.Time) (*entity.Booking, error)

	// View-model
	GetOverview(ctx context.Context, filterDate string, mode SortMode, today string) *BookingOverview
}

// AuthService — процессная заглушка аутентификации.
type AuthService interface {
	Session(ctx context.Context) entity.Session
	Login(ctx context.Context, name string) (entity.Session, error)
	Logout(ctx context.Context) error
}

// ToastService — транзиентные уведомления с автоскрытием.
type ToastService interface {
	Add(ctx context.Context, message string, kind entity.ToastKind) *entity.Toast
	Active(ctx context.Context, now time.Time) []entity.Toast
	Dismiss(ctx context.Context, id string)
	DismissExpired(ctx context.Context, now time.Time) int
}

// CreateBookingRequest — данные для создания брони. Снимок
// пространства сервис делает сам.
type CreateBookingRequest struct {
	SpaceID  string `json:"space_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
	TimeSlot string `json:"time_slot" binding:"required"`
}

// DraftState — состояние панели бронирования плюс аннотированные
// варианты слотов под текущую дату черновика.
type DraftState struct {
	Draft       entity.BookingDraft `json:"draft"`
	Options     []slot.Option       `json:"options"`
	CanConfirm  bool                `json:"can_confirm"`
	DefaultSlot string              `json:"default_slot,omitempty"`
}

// TaskPublisher — публикация отложенных задач в очередь.
type TaskPublisher interface {
	Publish(ctx context.Context, task *Task) error
}

// Task — задача для очереди.
type Task struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Data       map[string]any `json:"data"`
	ExecuteAt  time.Time      `json:"execute_at"`
	MaxRetries int            `json:"max_retries"`
	Attempts   int            `json:"attempts"`
}

// Типы задач
const (
	TaskTypeDismissToast     = "dismiss_toast"
	TaskTypeSendNotification = "send_notification"
	TaskTypeBookingReminder  = "booking_reminder"
)
