package queue

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/studyspot/studyspot/internal/entity"
)

// ToastSink — приемник уведомлений. Узкий локальный интерфейс, чтобы
// не тянуть пакет сервисов в очередь.
type ToastSink interface {
	Add(ctx context.Context, message string, kind entity.ToastKind) *entity.Toast
	Dismiss(ctx context.Context, id string)
}

// TaskHandler обрабатывает задачи из очереди.
type TaskHandler struct {
	toasts    ToastSink
	publisher Queue
}

func NewTaskHandler(toasts ToastSink, publisher Queue) *TaskHandler {
	return &TaskHandler{
		toasts:    toasts,
		publisher: publisher,
	}
}

// HandleTask диспетчеризует задачу по типу.
func (h *TaskHandler) HandleTask(task *Task) error {
	logrus.Debugf("Handling task %s of type %s (attempt %d/%d)",
		task.ID, task.Type, task.Attempts, task.MaxRetries)

	switch task.Type {
	case TaskTypeDismissToast:
		return h.handleDismissToast(task)
	case TaskTypeSendNotification:
		return h.handleSendNotification(task)
	case TaskTypeBookingReminder:
		return h.handleBookingReminder(task)
	default:
		return fmt.Errorf("unknown task type: %s", task.Type)
	}
}

// handleDismissToast гасит уведомление по истечении интервала показа.
func (h *TaskHandler) handleDismissToast(task *Task) error {
	toastID, ok := task.Data["toast_id"].(string)
	if !ok {
		return fmt.Errorf("invalid toast_id in task data")
	}

	h.toasts.Dismiss(context.Background(), toastID)
	return nil
}

func (h *TaskHandler) handleSendNotification(task *Task) error {
	message, ok := task.Data["message"].(string)
	if !ok || message == "" {
		return fmt.Errorf("invalid message in task data")
	}

	kind := entity.ToastInfo
	if k, ok := task.Data["kind"].(string); ok && k != "" {
		kind = entity.ToastKind(k)
	}

	h.toasts.Add(context.Background(), message, kind)
	return nil
}

// handleBookingReminder срабатывает в час начала окна брони и
// переправляет напоминание через общий канал уведомлений.
func (h *TaskHandler) handleBookingReminder(task *Task) error {
	spaceName, ok := task.Data["space_name"].(string)
	if !ok {
		return fmt.Errorf("invalid space_name in task data")
	}
	timeSlot, _ := task.Data["time_slot"].(string)

	notification := &Task{
		ID:   fmt.Sprintf("notify_%s", task.ID),
		Type: TaskTypeSendNotification,
		Data: map[string]any{
			"message": fmt.Sprintf("Your booking at %s (%s) is starting", spaceName, timeSlot),
			"kind":    string(entity.ToastInfo),
		},
		MaxRetries: task.MaxRetries,
	}

	return h.publisher.Publish(context.Background(), notification)
}
