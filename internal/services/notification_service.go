package services

import (
	"context"

	"farmer-market/internal/domain"
	"farmer-market/internal/repository"
)

const defaultNotificationLimit = 20

type NotificationService struct {
	notes repository.NotificationRepository
}

func NewNotificationService(notes repository.NotificationRepository) *NotificationService {
	return &NotificationService{notes: notes}
}

func (s *NotificationService) Append(ctx context.Context, userID uint64, message string) (*domain.Notification, error) {
	n := &domain.Notification{UserID: userID, Message: message}
	if err := s.notes.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListRecent returns the newest notifications first; limit <= 0 means 20.
func (s *NotificationService) ListRecent(ctx context.Context, userID uint64, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	return s.notes.ListRecent(ctx, userID, limit)
}
