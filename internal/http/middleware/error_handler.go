package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/remixgames/backend/internal/logger"
	"github.com/remixgames/backend/internal/pkg/apperror"
	"github.com/remixgames/backend/internal/repository"
)

// ErrorHandler обрабатывает ошибки централизованно.
// Маскирует внутренние ошибки и возвращает понятные сообщения клиенту.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			statusCode := http.StatusInternalServerError
			message := "внутренняя ошибка сервера"

			if logger.Log != nil {
				logger.Log.WithFields(logrus.Fields{
					"error":  err.Error(),
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				}).Error("Request error")
			}

			var appErr *apperror.AppError
			switch {
			case errors.As(err.Err, &appErr):
				statusCode = appErr.HTTPStatus
				message = appErr.Message
			case errors.Is(err.Err, repository.ErrUserNotFound):
				statusCode = http.StatusNotFound
				message = "пользователь не найден"
			case errors.Is(err.Err, repository.ErrRemixNotFound):
				statusCode = http.StatusNotFound
				message = "ремикс не найден"
			case errors.Is(err.Err, repository.ErrCommentNotFound):
				statusCode = http.StatusNotFound
				message = "комментарий не найден"
			case errors.Is(err.Err, repository.ErrGameNotFound):
				statusCode = http.StatusNotFound
				message = "игра не найдена"
			case errors.Is(err.Err, repository.ErrMediaNotFound):
				statusCode = http.StatusNotFound
				message = "файл не найден"
			case errors.Is(err.Err, repository.ErrQueueItemNotFound):
				statusCode = http.StatusNotFound
				message = "элемент очереди не найден"
			case errors.Is(err.Err, repository.ErrQueueItemNotPending):
				statusCode = http.StatusConflict
				message = "элемент очереди уже обработан"
			default:
				if errStr := err.Error(); errStr != "" && !containsInternalKeywords(errStr) {
					message = errStr
					if contains(errStr, "неверный") || contains(errStr, "невалид") || contains(errStr, "должен") || contains(errStr, "нельзя") || contains(errStr, "только") {
						statusCode = http.StatusBadRequest
					} else if contains(errStr, "нет прав") || contains(errStr, "не авторизован") {
						statusCode = http.StatusForbidden
					}
				}
			}

			c.JSON(statusCode, gin.H{"error": message})
		}
	}
}

// containsInternalKeywords проверяет, содержит ли строка ключевые слова внутренних ошибок.
func containsInternalKeywords(s string) bool {
	keywords := []string{
		"sql:",
		"database",
		"connection",
		"timeout",
		"internal",
		"panic",
		"runtime",
	}

	for _, keyword := range keywords {
		if contains(s, keyword) {
			return true
		}
	}
	return false
}

// contains проверяет, содержит ли строка подстроку (case-insensitive).
func contains(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
