package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/studyspot/studyspot/internal/database"
	"github.com/studyspot/studyspot/internal/entity"
	"github.com/studyspot/studyspot/internal/slot"
)

type bookingService struct {
	bookings database.BookingRepository
	drafts   database.DraftRepository
	spaces   SpaceService
	toasts   ToastService
	queue    TaskPublisher
}

// NewBookingService создает новый экземпляр BookingService.
func NewBookingService(
	bookings database.BookingRepository,
	drafts database.DraftRepository,
	spaces SpaceService,
	toasts ToastService,
	queue TaskPublisher,
) BookingService {
	return &bookingService{
		bookings: bookings,
		drafts:   drafts,
		spaces:   spaces,
		toasts:   toasts,
		queue:    queue,
	}
}

func (s *bookingService) ListBookings(ctx context.Context) []entity.Booking {
	return s.bookings.GetAll(ctx)
}

// AddBooking создает бронь, предварительно прогнав слот через
// единственный гейтирующий предикат slot.Bookable. Снимок полей
// пространства денормализуется в запись брони.
func (s *bookingService) AddBooking(ctx context.Context, req *CreateBookingRequest) (*entity.Booking, error) {
	booking, err := s.createBooking(ctx, req.SpaceID, req.Date, req.TimeSlot, time.Now())
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) createBooking(ctx context.Context, spaceID, date, timeSlot string, now time.Time) (*entity.Booking, error) {
	if date == "" || timeSlot == "" {
		return nil, entity.ErrDraftIncomplete
	}

	space, err := s.spaces.GetSpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if !space.HasTimeSlot(timeSlot) {
		return nil, entity.ErrUnknownSlot
	}

	existing := s.bookings.GetAll(ctx)
	if slot.IsBooked(existing, spaceID, date, timeSlot) {
		return nil, entity.ErrSlotBooked
	}
	if !slot.TemporallyAvailable(date, timeSlot, now) {
		return nil, entity.ErrSlotUnavailable
	}

	booking := entity.Booking{
		ID:        uuid.New().String(),
		SpaceID:   space.ID,
		SpaceName: space.Name,
		Image:     space.MainImage,
		Price:     space.Price,
		Date:      date,
		TimeSlot:  timeSlot,
		Status:    entity.BookingStatusConfirmed,
		BookedAt:  now,
	}

	if err := s.bookings.Append(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to store booking: %w", err)
	}

	logrus.Infof("Booking created: id=%s space=%s date=%s slot=%q",
		booking.ID, booking.SpaceID, booking.Date, booking.TimeSlot)

	s.toasts.Add(ctx, "Booking added!", entity.ToastSuccess)

	if s.queue != nil {
		if err := s.scheduleReminder(ctx, &booking, now); err != nil {
			logrus.Errorf("Failed to schedule booking reminder: %v", err)
		}
	}

	return &booking, nil
}

// scheduleReminder ставит отложенную задачу-напоминание на час начала
// окна слота. Для слотов без определимого начала сегодня напоминание
// не планируется.
func (s *bookingService) scheduleReminder(ctx context.Context, booking *entity.Booking, now time.Time) error {
	day, err := time.ParseInLocation(entity.DateLayout, booking.Date, now.Location())
	if err != nil {
		return fmt.Errorf("invalid booking date %q: %w", booking.Date, err)
	}

	window := slot.ParseLabel(booking.TimeSlot)
	if window.Kind == slot.KindUnknown {
		return nil
	}

	startsAt := day.Add(time.Duration(window.Start) * time.Hour)
	if !startsAt.After(now) {
		return nil
	}

	task := &Task{
		ID:   fmt.Sprintf("booking_reminder_%s", booking.ID),
		Type: TaskTypeBookingReminder,
		Data: map[string]any{
			"booking_id": booking.ID,
			"space_name": booking.SpaceName,
			"time_slot":  booking.TimeSlot,
		},
		ExecuteAt:  startsAt,
		MaxRetries: 2,
	}
	return s.queue.Publish(ctx, task)
}

// CancelBooking переводит бронь в статус cancelled, освобождая слот.
// Повторная отмена — no-op с тем же наблюдаемым эффектом.
func (s *bookingService) CancelBooking(ctx context.Context, id string) error {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status == entity.BookingStatusCancelled {
		return nil
	}

	if err := s.bookings.UpdateStatus(ctx, id, entity.BookingStatusCancelled); err != nil {
		return err
	}

	logrus.Infof("Booking cancelled: id=%s", id)
	s.toasts.Add(ctx, "Booking cancelled", entity.ToastInfo)
	return nil
}

// RemoveBooking удаляет запись безвозвратно. Неизвестный id — no-op.
func (s *bookingService) RemoveBooking(ctx context.Context, id string) error {
	if _, err := s.bookings.GetByID(ctx, id); err != nil {
		return nil
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}

	s.toasts.Add(ctx, "Booking removed", entity.ToastInfo)
	return nil
}

func (s *bookingService) ClearBookings(ctx context.Context) error {
	if err := s.bookings.Clear(ctx); err != nil {
		return err
	}

	s.toasts.Add(ctx, "All bookings cleared", entity.ToastInfo)
	return nil
}

// SlotOptions аннотирует слоты каталога пространства под заданную дату.
func (s *bookingService) SlotOptions(ctx context.Context, spaceID, date string, now time.Time) ([]slot.Option, error) {
	space, err := s.spaces.GetSpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	return slot.Annotate(space, s.bookings.GetAll(ctx), date, now), nil
}
