package service

import (
	"context"
	"time"

	"github.com/studyspot/studyspot/internal/entity"
	"github.com/studyspot/studyspot/internal/slot"
)

// Workflow панели бронирования: NoDate -> DateChosen -> SlotChosen ->
// Submitted. Черновик живет в persisted-состоянии сессии и
// перевалидируется при каждом изменении.

// Поля черновика, принимаемые UpdateDraft.
const (
	DraftFieldDate     = "date"
	DraftFieldTimeSlot = "time_slot"
)

// StartDraft открывает панель для пространства: дата пуста, слот
// предвыбран первым по каталогу.
func (s *bookingService) StartDraft(ctx context.Context, spaceID string) (*DraftState, error) {
	space, err := s.spaces.GetSpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	draft := entity.BookingDraft{
		SpaceID:  space.ID,
		TimeSlot: space.DefaultTimeSlot(),
	}
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}

	return s.draftState(ctx, draft, time.Now()), nil
}

func (s *bookingService) GetDraft(ctx context.Context) (*DraftState, error) {
	draft, ok := s.drafts.Get(ctx)
	if !ok {
		return nil, entity.ErrNoDraft
	}
	return s.draftState(ctx, draft, time.Now()), nil
}

// UpdateDraft применяет выбор пользователя. Смена даты немедленно
// перевалидирует ранее выбранный слот и сбрасывает его, если под новой
// датой он больше не бронируем.
func (s *bookingService) UpdateDraft(ctx context.Context, field, value string, now time.Time) (*DraftState, error) {
	draft, ok := s.drafts.Get(ctx)
	if !ok {
		return nil, entity.ErrNoDraft
	}

	existing := s.bookings.GetAll(ctx)

	switch field {
	case DraftFieldDate:
		draft.Date = value
		if draft.TimeSlot != "" && !slot.Bookable(existing, draft.SpaceID, draft.Date, draft.TimeSlot, now) {
			draft.TimeSlot = ""
		}

	case DraftFieldTimeSlot:
		if value != "" {
			space, err := s.spaces.GetSpace(ctx, draft.SpaceID)
			if err != nil {
				return nil, err
			}
			if !space.HasTimeSlot(value) {
				return nil, entity.ErrUnknownSlot
			}
			if slot.IsBooked(existing, draft.SpaceID, draft.Date, value) {
				return nil, entity.ErrSlotBooked
			}
			if !slot.TemporallyAvailable(draft.Date, value, now) {
				return nil, entity.ErrSlotUnavailable
			}
		}
		draft.TimeSlot = value

	default:
		return nil, entity.ErrInvalidInput
	}

	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return s.draftState(ctx, draft, now), nil
}

// ConfirmDraft — действие "Book Now": доступно только при заданных
// дате и слоте, проходящих slot.Bookable. После создания брони дата и
// слот сбрасываются, панель возвращается в NoDate.
func (s *bookingService) ConfirmDraft(ctx context.Context, now time.Time) (*entity.Booking, error) {
	draft, ok := s.drafts.Get(ctx)
	if !ok {
		return nil, entity.ErrNoDraft
	}
	if draft.Date == "" || draft.TimeSlot == "" {
		return nil, entity.ErrDraftIncomplete
	}

	booking, err := s.createBooking(ctx, draft.SpaceID, draft.Date, draft.TimeSlot, now)
	if err != nil {
		return nil, err
	}

	draft.Date = ""
	draft.TimeSlot = ""
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}

	return booking, nil
}

func (s *bookingService) draftState(ctx context.Context, draft entity.BookingDraft, now time.Time) *DraftState {
	state := &DraftState{Draft: draft}

	space, err := s.spaces.GetSpace(ctx, draft.SpaceID)
	if err != nil {
		return state
	}

	existing := s.bookings.GetAll(ctx)
	state.Options = slot.Annotate(space, existing, draft.Date, now)
	state.DefaultSlot = space.DefaultTimeSlot()
	state.CanConfirm = draft.Date != "" && draft.TimeSlot != "" &&
		slot.Bookable(existing, draft.SpaceID, draft.Date, draft.TimeSlot, now)

	return state
}
