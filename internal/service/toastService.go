package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/studyspot/studyspot/internal/entity"
)

// toastService держит активные уведомления в памяти. Автоскрытие
// обеспечивает отложенная задача в очереди; фоновый janitor подметает
// остатки, если очередь недоступна.
type toastService struct {
	mu           sync.RWMutex
	toasts       []entity.Toast
	dismissAfter time.Duration
	queue        TaskPublisher
}

func NewToastService(dismissAfter time.Duration, queue TaskPublisher) ToastService {
	return &toastService{
		dismissAfter: dismissAfter,
		queue:        queue,
	}
}

// Add публикует уведомление. Fire-and-forget: вызывающему ничего не
// подтверждается, ошибка планирования скрытия только логируется.
func (s *toastService) Add(ctx context.Context, message string, kind entity.ToastKind) *entity.Toast {
	now := time.Now()
	toast := entity.Toast{
		ID:        uuid.New().String(),
		Message:   message,
		Kind:      kind,
		CreatedAt: now,
		ExpiresAt: now.Add(s.dismissAfter),
	}

	s.mu.Lock()
	s.toasts = append(s.toasts, toast)
	s.mu.Unlock()

	if s.queue != nil {
		task := &Task{
			ID:   fmt.Sprintf("dismiss_toast_%s", toast.ID),
			Type: TaskTypeDismissToast,
			Data: map[string]any{
				"toast_id": toast.ID,
			},
			ExecuteAt:  toast.ExpiresAt,
			MaxRetries: 2,
		}
		if err := s.queue.Publish(ctx, task); err != nil {
			logrus.Errorf("Failed to schedule toast dismissal: %v", err)
		}
	}

	return &toast
}

func (s *toastService) Active(ctx context.Context, now time.Time) []entity.Toast {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]entity.Toast, 0, len(s.toasts))
	for _, t := range s.toasts {
		if !t.Expired(now) {
			active = append(active, t)
		}
	}
	return active
}

func (s *toastService) Dismiss(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.toasts {
		if s.toasts[i].ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}

// DismissExpired удаляет все уведомления с истекшим интервалом показа
// и возвращает их количество.
func (s *toastService) DismissExpired(ctx context.Context, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.toasts[:0]
	removed := 0
	for _, t := range s.toasts {
		if t.Expired(now) {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.toasts = kept
	return removed
}
