package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/remixgames/backend/internal/logger"
	"github.com/remixgames/backend/internal/models"
)

// NotificationStore описывает взаимодействие сервиса с хранилищем уведомлений.
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, onlyUnread bool, limit, offset int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

// RealtimePusher доставляет уведомление в открытое WebSocket соединение.
type RealtimePusher interface {
	PushToUser(userID uuid.UUID, payload []byte)
	PushToModerators(payload []byte)
}

// NotificationService сохраняет уведомления и дублирует их в реальном
// времени подключённым пользователям.
type NotificationService struct {
	repo   NotificationStore
	pusher RealtimePusher
}

func NewNotificationService(repo NotificationStore, pusher RealtimePusher) *NotificationService {
	return &NotificationService{repo: repo, pusher: pusher}
}

// NotifyUser создаёт уведомление и пушит его в WebSocket, если
// пользователь подключён. Реализует ModerationNotifier.
func (s *NotificationService) NotifyUser(ctx context.Context, userID uuid.UUID, event string, data map[string]interface{}) {
	payload, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  data,
	})
	if err != nil {
		logger.WithComponent("notifications").WithError(err).Error("Не удалось сериализовать уведомление")
		return
	}

	n := &models.Notification{UserID: userID, Payload: payload}
	if err := s.repo.Create(ctx, n); err != nil {
		logger.WithComponent("notifications").WithError(err).Error("Не удалось сохранить уведомление")
		return
	}

	if s.pusher != nil {
		s.pusher.PushToUser(userID, payload)
	}
}

// NotifyModerators рассылает событие всем подключённым модераторам.
// Широковещательное событие не персистится: панель модератора сама
// перечитывает очередь, уведомление лишь триггер обновления.
func (s *NotificationService) NotifyModerators(event string, data map[string]interface{}) {
	if s.pusher == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  data,
	})
	if err != nil {
		logger.WithComponent("notifications").WithError(err).Error("Не удалось сериализовать событие для модераторов")
		return
	}
	s.pusher.PushToModerators(payload)
}

// List возвращает уведомления пользователя.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, onlyUnread bool, limit, offset int) ([]models.Notification, error) {
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(ctx, userID, onlyUnread, limit, offset)
}

// MarkRead отмечает уведомление прочитанным.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("не указан идентификатор уведомления")
	}
	return s.repo.MarkRead(ctx, id, userID)
}

// MarkAllRead отмечает все уведомления пользователя прочитанными.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

// CountUnread возвращает число непрочитанных уведомлений.
func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}
