package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyspot/studyspot/internal/database"
	"github.com/studyspot/studyspot/internal/entity"
)

// Каталог для тестов покрывает оба формата меток слотов.
func testCatalog() []entity.Space {
	return []entity.Space{
		{
			ID:        "lib-1",
			Name:      "Quiet Library Pod",
			Location:  "Downtown",
			Price:     12.5,
			MainImage: "/img/lib-1.jpg",
			TimeSlots: []string{"Morning (8 AM - 12 PM)", "Afternoon (1 PM - 6 PM)", "Full Day"},
		},
		{
			ID:        "loft-2",
			Name:      "Creative Loft",
			Location:  "Arts District",
			Price:     20,
			TimeSlots: []string{"9am - 1pm", "2pm - 6pm"},
		},
	}
}

type bookingTestEnv struct {
	service  BookingService
	bookings database.BookingRepository
	drafts   database.DraftRepository
	store    database.StateStore
	toasts   ToastService
}

func newBookingTestEnv(t *testing.T) *bookingTestEnv {
	t.Helper()
	ctx := context.Background()

	store := database.NewMemoryStateStore()
	bookingRepo, err := database.NewBookingRepository(ctx, store)
	require.NoError(t, err)
	draftRepo, err := database.NewDraftRepository(ctx, store)
	require.NoError(t, err)

	toasts := NewToastService(5*time.Second, nil)
	spaces := NewSpaceService(testCatalog())

	return &bookingTestEnv{
		service:  NewBookingService(bookingRepo, draftRepo, spaces, toasts, nil),
		bookings: bookingRepo,
		drafts:   draftRepo,
		store:    store,
		toasts:   toasts,
	}
}

// futureDate возвращает дату через days дней от текущего момента.
func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(entity.DateLayout)
}

func TestAddBooking(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()
	date := futureDate(2)

	booking, err := env.service.AddBooking(ctx, &CreateBookingRequest{
		SpaceID:  "lib-1",
		Date:     date,
		TimeSlot: "Morning (8 AM - 12 PM)",
	})
	require.NoError(t, err)
	require.NotNil(t, booking)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "lib-1", booking.SpaceID)
	assert.Equal(t, "Quiet Library Pod", booking.SpaceName)
	assert.Equal(t, 12.5, booking.Price)
	assert.Equal(t, entity.BookingStatusConfirmed, booking.Status)

	stored := env.service.ListBookings(ctx)
	require.Len(t, stored, 1)
	assert.Equal(t, booking.ID, stored[0].ID)
}

func TestAddBookingValidation(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()
	date := futureDate(2)

	tests := []struct {
		name    string
		req     *CreateBookingRequest
		wantErr error
	}{
		{
			name:    "unknown space",
			req:     &CreateBookingRequest{SpaceID: "nope", Date: date, TimeSlot: "Full Day"},
			wantErr: entity.ErrSpaceNotFound,
		},
		{
			name:    "slot not in catalog",
			req:     &CreateBookingRequest{SpaceID: "lib-1", Date: date, TimeSlot: "Midnight"},
			wantErr: entity.ErrUnknownSlot,
		},
		{
			name:    "empty date",
			req:     &CreateBookingRequest{SpaceID: "lib-1", Date: "", TimeSlot: "Full Day"},
			wantErr: entity.ErrDraftIncomplete,
		},
		{
			name:    "past date",
			req:     &CreateBookingRequest{SpaceID: "lib-1", Date: futureDate(-1), TimeSlot: "Full Day"},
			wantErr: entity.ErrSlotUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.service.AddBooking(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestAddBookingConflict проверяет, что активная бронь блокирует ровно
// свою тройку (пространство, дата, слот) и ничего больше.
func TestAddBookingConflict(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()
	date := futureDate(2)

	_, err := env.service.AddBooking(ctx, &CreateBookingRequest{
		SpaceID: "lib-1", Date: date, TimeSlot: "Morning (8 AM - 12 PM)",
	})
	require.NoError(t, err)

	// Тот же слот повторно — конфликт
	_, err = env.service.AddBooking(ctx, &CreateBookingRequest{
		SpaceID: "lib-1", Date: date, TimeSlot: "Morning (8 AM - 12 PM)",
	})
	assert.ErrorIs(t, err, entity.ErrSlotBooked)

	// Другой слот той же даты — свободен
	_, err = env.service.AddBooking(ctx, &CreateBookingRequest{
		SpaceID: "lib-1", Date: date, TimeSlot: "Afternoon (1 PM - 6 PM)",
	})
	assert.NoError(t, err)

	// Тот же слот на другую дату — свободен
	_, err = env.service.AddBooking(ctx, &CreateBookingRequest{
		SpaceID: "lib-1", Date: futureDate(3), TimeSlot: "Morning (8 AM - 12 PM)",
	})
	assert.NoError(t, err)
}

// TestCancelBookingFreesSlot: отмененная бронь перестает блокировать
// слот, при этом ее запись сохраняется в истории.
func TestCancelBookingFreesSlot(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()
	date := futureDate(2)

	first, err := env.service.AddBooking(ctx, &CreateBookingRequest{
		SpaceID: "lib-1", Date: date, TimeSlot: "Full Day",
	})
	require.NoError(t, err)

	require.NoError(t, env.service.CancelBooking(ctx, first.ID))

	second, err := env.service.AddBooking(ctx, &CreateBookingRequest{
		SpaceID: "lib-1", Date: date, TimeSlot: "Full Day",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	stored := env.service.ListBookings(ctx)
	require.Len(t, stored, 2)
	assert.Equal(t, entity.BookingStatusCancelled, stored[0].Status)
	assert.Equal(t, entity.BookingStatusConfirmed, stored[1].Status)
}

func TestCancelBookingIdempotent(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()

	booking, err := env.service.AddBooking(ctx, &CreateBookingRequest{
		SpaceID: "lib-1", Date: futureDate(2), TimeSlot: "Full Day",
	})
	require.NoError(t, err)

	require.NoError(t, env.service.CancelBooking(ctx, booking.ID))
	require.NoError(t, env.service.CancelBooking(ctx, booking.ID))

	stored := env.service.ListBookings(ctx)
	require.Len(t, stored, 1)
	assert.Equal(t, entity.BookingStatusCancelled, stored[0].Status)
}

func TestCancelBookingNotFound(t *testing.T) {
	env := newBookingTestEnv(t)

	err := env.service.CancelBooking(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)
}

func TestRemoveBooking(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()

	booking, err := env.service.AddBooking(ctx, &CreateBookingRequest{
		SpaceID: "lib-1", Date: futureDate(2), TimeSlot: "Full Day",
	})
	require.NoError(t, err)

	require.NoError(t, env.service.RemoveBooking(ctx, booking.ID))
	assert.Empty(t, env.service.ListBookings(ctx))

	// Повторное удаление и удаление неизвестного id — no-op
	assert.NoError(t, env.service.RemoveBooking(ctx, booking.ID))
	assert.NoError(t, env.service.RemoveBooking(ctx, "missing"))
}

func TestClearBookings(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()

	for i := 2; i <= 4; i++ {
		_, err := env.service.AddBooking(ctx, &CreateBookingRequest{
			SpaceID: "lib-1", Date: futureDate(i), TimeSlot: "Full Day",
		})
		require.NoError(t, err)
	}

	require.NoError(t, env.service.ClearBookings(ctx))
	assert.Empty(t, env.service.ListBookings(ctx))
}

// TestBookingsSurviveRehydration: брони доживают до нового экземпляра
// репозитория поверх того же хранилища.
func TestBookingsSurviveRehydration(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()

	booking, err := env.service.AddBooking(ctx, &CreateBookingRequest{
		SpaceID: "lib-1", Date: futureDate(2), TimeSlot: "Full Day",
	})
	require.NoError(t, err)

	rehydrated, err := database.NewBookingRepository(ctx, env.store)
	require.NoError(t, err)

	stored := rehydrated.GetAll(ctx)
	require.Len(t, stored, 1)
	assert.Equal(t, booking.ID, stored[0].ID)
	assert.Equal(t, booking.TimeSlot, stored[0].TimeSlot)
}

func TestSlotOptions(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()
	date := futureDate(2)

	_, err := env.service.AddBooking(ctx, &CreateBookingRequest{
		SpaceID: "lib-1", Date: date, TimeSlot: "Morning (8 AM - 12 PM)",
	})
	require.NoError(t, err)

	options, err := env.service.SlotOptions(ctx, "lib-1", date, time.Now())
	require.NoError(t, err)
	require.Len(t, options, 3)

	assert.True(t, options[0].Booked)
	assert.False(t, options[0].Selectable)
	assert.Equal(t, "Morning (8 AM - 12 PM) (Booked)", options[0].Display)

	assert.True(t, options[1].Selectable)
	assert.True(t, options[2].Selectable)

	_, err = env.service.SlotOptions(ctx, "nope", date, time.Now())
	assert.ErrorIs(t, err, entity.ErrSpaceNotFound)
}

func TestDraftWorkflow(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()
	now := time.Now()
	date := futureDate(2)

	// До открытия панели черновика нет
	_, err := env.service.GetDraft(ctx)
	assert.ErrorIs(t, err, entity.ErrNoDraft)

	// Открытие панели: дата пуста, слот предвыбран первым по каталогу
	state, err := env.service.StartDraft(ctx, "lib-1")
	require.NoError(t, err)
	assert.Empty(t, state.Draft.Date)
	assert.Equal(t, "Morning (8 AM - 12 PM)", state.Draft.TimeSlot)
	assert.Equal(t, "Morning (8 AM - 12 PM)", state.DefaultSlot)
	assert.False(t, state.CanConfirm)

	// Подтверждение без даты недоступно
	_, err = env.service.ConfirmDraft(ctx, now)
	assert.ErrorIs(t, err, entity.ErrDraftIncomplete)

	// Выбор даты делает черновик подтверждаемым
	state, err = env.service.UpdateDraft(ctx, DraftFieldDate, date, now)
	require.NoError(t, err)
	assert.Equal(t, date, state.Draft.Date)
	assert.True(t, state.CanConfirm)

	booking, err := env.service.ConfirmDraft(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, date, booking.Date)

	// После подтверждения панель возвращается к пустым дате и слоту
	state, err = env.service.GetDraft(ctx)
	require.NoError(t, err)
	assert.Equal(t, "lib-1", state.Draft.SpaceID)
	assert.Empty(t, state.Draft.Date)
	assert.Empty(t, state.Draft.TimeSlot)
	assert.False(t, state.CanConfirm)
}

// TestDraftDateChangeClearsSlot: смена даты сбрасывает выбранный слот,
// если под новой датой он уже занят.
func TestDraftDateChangeClearsSlot(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()
	now := time.Now()
	busyDate := futureDate(3)

	_, err := env.service.AddBooking(ctx, &CreateBookingRequest{
		SpaceID: "lib-1", Date: busyDate, TimeSlot: "Morning (8 AM - 12 PM)",
	})
	require.NoError(t, err)

	_, err = env.service.StartDraft(ctx, "lib-1")
	require.NoError(t, err)

	state, err := env.service.UpdateDraft(ctx, DraftFieldDate, futureDate(2), now)
	require.NoError(t, err)
	assert.Equal(t, "Morning (8 AM - 12 PM)", state.Draft.TimeSlot)

	// Под занятой датой утренний слот недоступен и сбрасывается
	state, err = env.service.UpdateDraft(ctx, DraftFieldDate, busyDate, now)
	require.NoError(t, err)
	assert.Empty(t, state.Draft.TimeSlot)
	assert.False(t, state.CanConfirm)
}

func TestUpdateDraftSlotValidation(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()
	now := time.Now()
	busyDate := futureDate(3)

	_, err := env.service.AddBooking(ctx, &CreateBookingRequest{
		SpaceID: "lib-1", Date: busyDate, TimeSlot: "Morning (8 AM - 12 PM)",
	})
	require.NoError(t, err)

	_, err = env.service.StartDraft(ctx, "lib-1")
	require.NoError(t, err)
	_, err = env.service.UpdateDraft(ctx, DraftFieldDate, busyDate, now)
	require.NoError(t, err)

	_, err = env.service.UpdateDraft(ctx, DraftFieldTimeSlot, "Midnight", now)
	assert.ErrorIs(t, err, entity.ErrUnknownSlot)

	_, err = env.service.UpdateDraft(ctx, DraftFieldTimeSlot, "Morning (8 AM - 12 PM)", now)
	assert.ErrorIs(t, err, entity.ErrSlotBooked)

	state, err := env.service.UpdateDraft(ctx, DraftFieldTimeSlot, "Afternoon (1 PM - 6 PM)", now)
	require.NoError(t, err)
	assert.True(t, state.CanConfirm)

	_, err = env.service.UpdateDraft(ctx, "color", "red", now)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestStartDraftUnknownSpace(t *testing.T) {
	env := newBookingTestEnv(t)

	_, err := env.service.StartDraft(context.Background(), "nope")
	assert.ErrorIs(t, err, entity.ErrSpaceNotFound)
}
