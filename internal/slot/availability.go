package slot

import (
	"time"

	"github.com/studyspot/studyspot/internal/entity"
)

// IsBooked проверяет, удерживает ли слот существующая активная бронь:
// совпадение по пространству, дате и метке слота со статусом, отличным
// от cancelled. Отмененные брони освобождают слот.
func IsBooked(bookings []entity.Booking, spaceID, date, timeSlot string) bool {
	for i := range bookings {
		b := &bookings[i]
		if b.SpaceID == spaceID && b.Date == date && b.TimeSlot == timeSlot && b.IsActive() {
			return true
		}
	}
	return false
}

// TemporallyAvailable проверяет, что окно слота еще не истекло
// относительно now. Пустые дата или слот трактуются как "доступно" —
// это разрешающий дефолт до полного ввода, а не утверждение о
// доступности.
func TemporallyAvailable(date, timeSlot string, now time.Time) bool {
	if date == "" || timeSlot == "" {
		return true
	}

	// ISO-даты сравниваются лексикографически корректно.
	today := now.Format(entity.DateLayout)
	if date < today {
		return false
	}
	if date > today {
		return true
	}

	return ParseLabel(timeSlot).AvailableAt(now.Hour())
}

// Bookable — единственный предикат, которым обязано гейтиться
// подтверждение брони: слот не занят и его окно не истекло.
func Bookable(bookings []entity.Booking, spaceID, date, timeSlot string, now time.Time) bool {
	return !IsBooked(bookings, spaceID, date, timeSlot) &&
		TemporallyAvailable(date, timeSlot, now)
}

// Option — аннотированный вариант слота для селектора.
type Option struct {
	Label       string `json:"label"`
	Display     string `json:"display"`
	Booked      bool   `json:"booked"`
	Unavailable bool   `json:"unavailable"`
	Selectable  bool   `json:"selectable"`
}

// Annotate строит варианты селектора для каждого слота каталога на
// заданную дату: суффикс "(Booked)" для занятых, "(Unavailable)" для
// истекших, без суффикса для бронируемых.
func Annotate(space *entity.Space, bookings []entity.Booking, date string, now time.Time) []Option {
	options := make([]Option, 0, len(space.TimeSlots))

	for _, label := range space.TimeSlots {
		opt := Option{Label: label, Display: label}

		if date != "" {
			opt.Booked = IsBooked(bookings, space.ID, date, label)
			opt.Unavailable = !opt.Booked && !TemporallyAvailable(date, label, now)
		}

		switch {
		case opt.Booked:
			opt.Display = label + " (Booked)"
		case opt.Unavailable:
			opt.Display = label + " (Unavailable)"
		}
		opt.Selectable = !opt.Booked && !opt.Unavailable

		options = append(options, opt)
	}

	return options
}
