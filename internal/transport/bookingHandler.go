package transport

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studyspot/studyspot/internal/entity"
	"github.com/studyspot/studyspot/internal/service"
)

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// UpdateDraftRequest представляет изменение одного поля черновика.
type UpdateDraftRequest struct {
	Field string `json:"field" binding:"required,oneof=date time_slot"`
	Value string `json:"value"`
}

// StartDraftRequest открывает панель бронирования для пространства.
type StartDraftRequest struct {
	SpaceID string `json:"space_id" binding:"required"`
}

func bookingErrorStatus(err error) int {
	switch {
	case errors.Is(err, entity.ErrSpaceNotFound),
		errors.Is(err, entity.ErrBookingNotFound),
		errors.Is(err, entity.ErrNoDraft):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrSlotBooked),
		errors.Is(err, entity.ErrSlotUnavailable):
		return http.StatusConflict
	case errors.Is(err, entity.ErrUnknownSlot),
		errors.Is(err, entity.ErrDraftIncomplete),
		errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetBookings возвращает сгруппированное представление списка броней.
// Пустой sort разрешается дефолтной связкой с фильтром по дате.
func (h *BookingHandler) GetBookings(c *gin.Context) {
	filterDate := c.Query("date")
	if filterDate != "" {
		if _, err := time.Parse(entity.DateLayout, filterDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
	}

	mode := service.EffectiveSortMode(service.SortMode(c.Query("sort")), filterDate)
	today := time.Now().Format(entity.DateLayout)

	overview := h.bookingService.GetOverview(c.Request.Context(), filterDate, mode, today)

	c.JSON(http.StatusOK, gin.H{
		"today":    today,
		"sort":     mode,
		"total":    overview.Total,
		"groups":   overview.Groups,
		"filtered": filterDate != "",
	})
}

// GetAllBookings возвращает сырую коллекцию в порядке вставки.
func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	bookings := h.bookingService.ListBookings(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"total":    len(bookings),
		"bookings": bookings,
	})
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.bookingService.AddBooking(c.Request.Context(), &req)
	if err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	if err := h.bookingService.CancelBooking(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

func (h *BookingHandler) RemoveBooking(c *gin.Context) {
	if err := h.bookingService.RemoveBooking(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "booking removed"})
}

func (h *BookingHandler) ClearBookings(c *gin.Context) {
	if err := h.bookingService.ClearBookings(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "all bookings cleared"})
}

func (h *BookingHandler) GetDraft(c *gin.Context) {
	state, err := h.bookingService.GetDraft(c.Request.Context())
	if err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *BookingHandler) StartDraft(c *gin.Context) {
	var req StartDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.bookingService.StartDraft(c.Request.Context(), req.SpaceID)
	if err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, state)
}

func (h *BookingHandler) UpdateDraft(c *gin.Context) {
	var req UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.bookingService.UpdateDraft(c.Request.Context(), req.Field, req.Value, time.Now())
	if err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *BookingHandler) ConfirmDraft(c *gin.Context) {
	booking, err := h.bookingService.ConfirmDraft(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, booking)
}
