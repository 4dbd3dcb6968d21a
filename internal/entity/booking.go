package entity

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// DateLayout — календарная дата брони без компонента времени.
const DateLayout = "2006-01-02"

// Booking представляет бронирование слота. Поля SpaceName, Image и
// Price — денормализованный снимок пространства на момент создания,
// чтобы история оставалась отображаемой при изменении каталога.
// Запись неизменяема, кроме единственного перехода
// confirmed -> cancelled.
type Booking struct {
	ID        string        `json:"id"`
	SpaceID   string        `json:"space_id"`
	SpaceName string        `json:"space_name"`
	Image     string        `json:"image"`
	Price     float64       `json:"price"`
	Date      string        `json:"date"`
	TimeSlot  string        `json:"time_slot"`
	Status    BookingStatus `json:"status"`
	BookedAt  time.Time     `json:"booked_at"`
}

// IsActive сообщает, удерживает ли бронь слот (не отменена).
func (b *Booking) IsActive() bool {
	return b.Status != BookingStatusCancelled
}

// BookingDraft — состояние панели бронирования: выбранные дата и слот
// до подтверждения. Пустая дата означает состояние NoDate.
type BookingDraft struct {
	SpaceID  string `json:"space_id"`
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
}
