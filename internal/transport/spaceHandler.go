package transport

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studyspot/studyspot/internal/entity"
	"github.com/studyspot/studyspot/internal/service"
)

type SpaceHandler struct {
	spaceService   service.SpaceService
	bookingService service.BookingService
}

func NewSpaceHandler(spaceService service.SpaceService, bookingService service.BookingService) *SpaceHandler {
	return &SpaceHandler{
		spaceService:   spaceService,
		bookingService: bookingService,
	}
}

// GetAllSpaces возвращает каталог, опционально отфильтрованный
// поисковым запросом q.
func (h *SpaceHandler) GetAllSpaces(c *gin.Context) {
	query := c.Query("q")

	var spaces []entity.Space
	if query != "" {
		spaces = h.spaceService.SearchSpaces(c.Request.Context(), query)
	} else {
		spaces = h.spaceService.GetAllSpaces(c.Request.Context())
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  len(spaces),
		"spaces": spaces,
	})
}

func (h *SpaceHandler) GetSpace(c *gin.Context) {
	space, err := h.spaceService.GetSpace(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, space)
}

// GetAvailability аннотирует слоты пространства на дату из query.
// Без даты аннотации не применяются (разрешающий дефолт).
func (h *SpaceHandler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if date != "" {
		if _, err := time.Parse(entity.DateLayout, date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
	}

	options, err := h.bookingService.SlotOptions(c.Request.Context(), c.Param("id"), date, time.Now())
	if err != nil {
		if errors.Is(err, entity.ErrSpaceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"space_id": c.Param("id"),
		"date":     date,
		"options":  options,
	})
}
