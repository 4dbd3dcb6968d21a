package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyspot/studyspot/internal/entity"
)

func TestToastLifecycle(t *testing.T) {
	ctx := context.Background()
	toasts := NewToastService(5*time.Second, nil)

	toast := toasts.Add(ctx, "Booking added!", entity.ToastSuccess)
	require.NotNil(t, toast)
	assert.NotEmpty(t, toast.ID)
	assert.Equal(t, toast.CreatedAt.Add(5*time.Second), toast.ExpiresAt)

	active := toasts.Active(ctx, time.Now())
	require.Len(t, active, 1)
	assert.Equal(t, "Booking added!", active[0].Message)

	// После интервала показа тост неактивен
	assert.Empty(t, toasts.Active(ctx, toast.ExpiresAt.Add(time.Millisecond)))
}

func TestToastDismiss(t *testing.T) {
	ctx := context.Background()
	toasts := NewToastService(time.Minute, nil)

	first := toasts.Add(ctx, "first", entity.ToastInfo)
	second := toasts.Add(ctx, "second", entity.ToastInfo)

	toasts.Dismiss(ctx, first.ID)

	active := toasts.Active(ctx, time.Now())
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)

	// Повторное снятие — no-op
	toasts.Dismiss(ctx, first.ID)
	assert.Len(t, toasts.Active(ctx, time.Now()), 1)
}

func TestToastDismissExpired(t *testing.T) {
	ctx := context.Background()
	toasts := NewToastService(5*time.Second, nil)

	toasts.Add(ctx, "first", entity.ToastInfo)
	toasts.Add(ctx, "second", entity.ToastError)

	assert.Equal(t, 0, toasts.DismissExpired(ctx, time.Now()))

	removed := toasts.DismissExpired(ctx, time.Now().Add(10*time.Second))
	assert.Equal(t, 2, removed)
	assert.Empty(t, toasts.Active(ctx, time.Now()))
}
