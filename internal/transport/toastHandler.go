package transport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studyspot/studyspot/internal/service"
)

type ToastHandler struct {
	toastService service.ToastService
}

func NewToastHandler(toastService service.ToastService) *ToastHandler {
	return &ToastHandler{toastService: toastService}
}

// GetActive возвращает неистекшие уведомления.
func (h *ToastHandler) GetActive(c *gin.Context) {
	toasts := h.toastService.Active(c.Request.Context(), time.Now())
	c.JSON(http.StatusOK, gin.H{
		"total":  len(toasts),
		"toasts": toasts,
	})
}
