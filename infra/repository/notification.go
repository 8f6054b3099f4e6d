package repository

import (
	"context"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type notificationRepository struct {
	store[Notification]
}

func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepository{store[Notification]{db: db}}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	m := &Notification{
		ID:      n.ID,
		UserID:  n.UserID,
		Type:    string(n.Type),
		Title:   n.Title,
		Message: n.Message,
		Read:    n.Read,
	}
	if err := r.create(ctx, m); err != nil {
		return err
	}
	n.CreatedAt, n.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *notificationRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	page repository.Pagination,
) ([]*domain.Notification, int64, error) {
	rows, total, err := r.list(ctx, filterScope(repository.ListFilter{UserID: &userID}), page)
	if err != nil {
		return nil, 0, err
	}
	return mapSlice(rows, toNotificationDomain), total, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.countWhere(ctx, "user_id = ? AND read = ?", userID, false)
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	return res.RowsAffected, MapGormErrorToDomain(res.Error)
}
