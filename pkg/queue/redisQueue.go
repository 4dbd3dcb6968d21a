package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxRetries   = 3
	defaultBaseDelay    = 5 * time.Second
	defaultQueueTimeout = 5 * time.Second
)

// RedisQueue implements Queue interface using Redis: a list for
// immediate tasks and a sorted set for delayed ones.
type RedisQueue struct {
	client       *redis.Client
	mainQueue    string
	delayedQueue string
	retryManager *RetryManager
	config       *RedisQueueConfig
	stopChan     chan struct{}
	stopOnce     sync.Once
	wg           sync.WaitGroup
}

// RedisQueueConfig contains configuration for RedisQueue
type RedisQueueConfig struct {
	MainQueue    string
	DelayedQueue string
	MaxRetries   int
	BaseDelay    time.Duration
	QueueTimeout time.Duration
}

// DefaultRedisQueueConfig returns default configuration
func DefaultRedisQueueConfig() *RedisQueueConfig {
	return &RedisQueueConfig{
		MainQueue:    "studyspot:tasks",
		DelayedQueue: "studyspot:tasks:delayed",
		MaxRetries:   defaultMaxRetries,
		BaseDelay:    defaultBaseDelay,
		QueueTimeout: defaultQueueTimeout,
	}
}

// NewRedisQueue creates a new RedisQueue instance
func NewRedisQueue(client *redis.Client, cfg *RedisQueueConfig, retryManager *RetryManager) (*RedisQueue, error) {
	if cfg == nil {
		cfg = DefaultRedisQueueConfig()
	}
	if cfg.QueueTimeout <= 0 {
		cfg.QueueTimeout = defaultQueueTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = defaultBaseDelay
	}
	if retryManager == nil {
		retryManager = NewRetryManager(cfg.MaxRetries, cfg.BaseDelay)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logrus.Infof("RedisQueue initialized: main=%s, delayed=%s", cfg.MainQueue, cfg.DelayedQueue)

	return &RedisQueue{
		client:       client,
		mainQueue:    cfg.MainQueue,
		delayedQueue: cfg.DelayedQueue,
		retryManager: retryManager,
		config:       cfg,
		stopChan:     make(chan struct{}),
	}, nil
}

// Publish sends a task to the queue
func (r *RedisQueue) Publish(ctx context.Context, task *Task) error {
	if task == nil {
		return fmt.Errorf("task cannot be nil")
	}
	if err := r.validateTask(task); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	taskData, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	// Sorted set for delayed tasks, list for immediate ones
	if !task.ExecuteAt.IsZero() && task.ExecuteAt.After(time.Now()) {
		score := float64(task.ExecuteAt.UnixNano()) / 1e9
		if err := r.client.ZAdd(ctx, r.delayedQueue, redis.Z{
			Score:  score,
			Member: taskData,
		}).Err(); err != nil {
			return fmt.Errorf("failed to publish delayed task: %w", err)
		}
		logrus.Debugf("Task %s scheduled for %s", task.ID, task.ExecuteAt.Format(time.RFC3339))
		return nil
	}

	if err := r.client.LPush(ctx, r.mainQueue, taskData).Err(); err != nil {
		return fmt.Errorf("failed to publish task: %w", err)
	}
	logrus.Debugf("Task %s published to main queue", task.ID)
	return nil
}

func (r *RedisQueue) validateTask(task *Task) error {
	if task.ID == "" {
		return fmt.Errorf("task ID is required")
	}
	if task.Type == "" {
		return fmt.Errorf("task type is required")
	}
	if task.MaxRetries <= 0 {
		task.MaxRetries = r.config.MaxRetries
	}
	return nil
}

// Subscribe starts consuming tasks from the queue
func (r *RedisQueue) Subscribe(ctx context.Context, handler func(*Task) error) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	r.wg.Add(2)
	go r.processDelayedTasks(ctx)
	go r.processMainQueue(ctx, handler)

	logrus.Info("RedisQueue subscriber started")
	return nil
}

func (r *RedisQueue) processMainQueue(ctx context.Context, handler func(*Task) error) {
	defer r.wg.Done()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Main queue processor stopped by context")
			return
		case <-r.stopChan:
			logrus.Info("Main queue processor stopped")
			return
		default:
			if err := r.processNext(ctx, handler); err != nil {
				logrus.Errorf("Error processing task: %v", err)
				time.Sleep(time.Second) // Backoff on error
			}
		}
	}
}

func (r *RedisQueue) processNext(ctx context.Context, handler func(*Task) error) error {
	taskData, err := r.client.BRPop(ctx, r.config.QueueTimeout, r.mainQueue).Result()
	if err == redis.Nil {
		return nil // timeout, no tasks
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to pop task: %w", err)
	}

	var task Task
	// BRPop returns [key, value]
	if err := json.Unmarshal([]byte(taskData[1]), &task); err != nil {
		logrus.Errorf("Dropping malformed task: %v", err)
		return nil
	}

	if err := r.executeWithRetry(ctx, &task, handler); err != nil {
		logrus.Errorf("Task %s failed after %d attempts: %v", task.ID, task.Attempts, err)
	}
	return nil
}

// executeWithRetry executes a task with retry logic
func (r *RedisQueue) executeWithRetry(ctx context.Context, task *Task, handler func(*Task) error) error {
	for {
		task.Attempts++

		err := handler(task)
		if err == nil {
			return nil
		}

		shouldRetry, delay := r.retryManager.ShouldRetry(task, err)
		if !shouldRetry {
			return err
		}

		logrus.Warnf("Task %s failed (attempt %d/%d), retrying in %v: %v",
			task.ID, task.Attempts, task.MaxRetries, delay, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// processDelayedTasks moves ready delayed tasks to the main queue
func (r *RedisQueue) processDelayedTasks(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Delayed tasks processor stopped by context")
			return
		case <-r.stopChan:
			logrus.Info("Delayed tasks processor stopped")
			return
		case <-ticker.C:
			if err := r.moveReadyDelayedTasks(ctx); err != nil {
				logrus.Errorf("Failed to process delayed tasks: %v", err)
			}
		}
	}
}

func (r *RedisQueue) moveReadyDelayedTasks(ctx context.Context) error {
	now := fmt.Sprintf("%f", float64(time.Now().UnixNano())/1e9)

	tasks, err := r.client.ZRangeByScore(ctx, r.delayedQueue, &redis.ZRangeBy{
		Min: "0",
		Max: now,
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to get delayed tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for _, taskData := range tasks {
		pipe.LPush(ctx, r.mainQueue, taskData)
	}
	pipe.ZRemRangeByScore(ctx, r.delayedQueue, "0", now)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to move delayed tasks: %w", err)
	}

	logrus.Debugf("Moved %d delayed tasks to main queue", len(tasks))
	return nil
}

func (r *RedisQueue) Close() error {
	r.stopOnce.Do(func() {
		close(r.stopChan)
	})
	r.wg.Wait()
	return nil
}
