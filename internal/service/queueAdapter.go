package service

import (
	"context"

	"github.com/studyspot/studyspot/pkg/queue"
)

// QueueAdapter адаптирует queue.Queue к TaskPublisher интерфейсу.
type QueueAdapter struct {
	queue queue.Queue
}

func NewQueueAdapter(q queue.Queue) *QueueAdapter {
	return &QueueAdapter{queue: q}
}

// Publish публикует задачу, преобразуя service.Task в queue.Task.
func (a *QueueAdapter) Publish(ctx context.Context, task *Task) error {
	if a.queue == nil {
		return nil
	}

	return a.queue.Publish(ctx, &queue.Task{
		ID:         task.ID,
		Type:       task.Type,
		Data:       task.Data,
		ExecuteAt:  task.ExecuteAt,
		MaxRetries: task.MaxRetries,
		Attempts:   task.Attempts,
	})
}
