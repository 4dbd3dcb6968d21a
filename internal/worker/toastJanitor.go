package worker

import (
	"context"
	"time"

	"github.com/studyspot/studyspot/internal/service"

	"github.com/sirupsen/logrus"
)

// ToastJanitor подчищает тосты, у которых истёк срок показа.
// Основной путь снятия тоста — отложенная задача в очереди; janitor
// страхует случаи, когда очередь выключена или задача потерялась.
type ToastJanitor struct {
	toastService service.ToastService
	interval     time.Duration
}

func NewToastJanitor(toastService service.ToastService, interval time.Duration) *ToastJanitor {
	return &ToastJanitor{
		toastService: toastService,
		interval:     interval,
	}
}

func (w *ToastJanitor) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Toast janitor started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Toast janitor stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep снимает все тосты, чей ExpiresAt уже в прошлом
func (w *ToastJanitor) sweep(ctx context.Context) {
	dismissed := w.toastService.DismissExpired(ctx, time.Now())
	if dismissed > 0 {
		logrus.Infof("Toast janitor dismissed %d expired toasts", dismissed)
	}
}
