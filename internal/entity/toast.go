package entity

import (
	"time"
)

type ToastKind string

const (
	ToastInfo    ToastKind = "info"
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast — транзиентное уведомление. Fire-and-forget: автоматически
// гаснет после фиксированного интервала, подтверждения не возвращает.
type Toast struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Kind      ToastKind `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired сообщает, истек ли интервал показа уведомления.
func (t *Toast) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
