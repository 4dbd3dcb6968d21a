package queue

import (
	"context"
	"time"
)

// Queue интерфейс очереди отложенных задач.
type Queue interface {
	Publish(ctx context.Context, task *Task) error
	Subscribe(ctx context.Context, handler func(*Task) error) error
	Close() error
}

// Task представляет задачу для очереди.
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
