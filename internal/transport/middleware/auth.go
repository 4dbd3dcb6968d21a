package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyspot/studyspot/internal/entity"
	"github.com/studyspot/studyspot/internal/service"
)

// RequireLogin закрывает маршруты бронирования для анонимной сессии:
// вместо формы неавторизованный пользователь получает 401.
func RequireLogin(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := auth.Session(c.Request.Context())
		if !session.IsLoggedIn {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": entity.ErrNotAuthenticated.Error(),
			})
			return
		}

		c.Next()
	}
}
