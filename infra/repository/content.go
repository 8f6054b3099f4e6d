package repository

import (
	"context"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type messageRepository struct {
	store[Message]
}

func NewMessageRepository(db *gorm.DB) repository.MessageRepository {
	return &messageRepository{store[Message]{db: db}}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	m := &Message{
		ID:      msg.ID,
		UserID:  msg.UserID,
		Name:    msg.Name,
		Email:   msg.Email,
		Subject: msg.Subject,
		Body:    msg.Body,
	}
	if err := r.create(ctx, m); err != nil {
		return err
	}
	msg.CreatedAt, msg.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *messageRepository) List(ctx context.Context, page repository.Pagination) ([]*domain.Message, int64, error) {
	rows, total, err := r.list(ctx, nil, page)
	if err != nil {
		return nil, 0, err
	}
	return mapSlice(rows, toMessageDomain), total, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&Message{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *messageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, id)
}

type walletRepository struct {
	store[Wallet]
}

func NewWalletRepository(db *gorm.DB) repository.WalletRepository {
	return &walletRepository{store[Wallet]{db: db}}
}

func (r *walletRepository) Create(ctx context.Context, w *domain.Wallet) error {
	m := toWalletModel(w)
	if err := r.create(ctx, m); err != nil {
		return err
	}
	w.CreatedAt, w.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *walletRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	m, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toWalletDomain(m), nil
}

func (r *walletRepository) Update(ctx context.Context, w *domain.Wallet) error {
	m := toWalletModel(w)
	if err := r.save(ctx, m); err != nil {
		return err
	}
	w.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *walletRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, id)
}

func (r *walletRepository) List(ctx context.Context, onlyActive bool) ([]*domain.Wallet, error) {
	q := r.db.WithContext(ctx).Order("network ASC, created_at ASC")
	if onlyActive {
		q = q.Where("active = ?", true)
	}
	var rows []Wallet
	if err := q.Find(&rows).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapSlice(rows, toWalletDomain), nil
}

type newsRepository struct {
	store[News]
}

func NewNewsRepository(db *gorm.DB) repository.NewsRepository {
	return &newsRepository{store[News]{db: db}}
}

func (r *newsRepository) Create(ctx context.Context, n *domain.News) error {
	m := toNewsModel(n)
	if err := r.create(ctx, m); err != nil {
		return err
	}
	n.CreatedAt, n.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *newsRepository) Get(ctx context.Context, id uuid.UUID) (*domain.News, error) {
	m, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toNewsDomain(m), nil
}

func (r *newsRepository) Update(ctx context.Context, n *domain.News) error {
	m := toNewsModel(n)
	if err := r.save(ctx, m); err != nil {
		return err
	}
	n.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *newsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, id)
}

func (r *newsRepository) List(
	ctx context.Context,
	onlyPublished bool,
	page repository.Pagination,
) ([]*domain.News, int64, error) {
	var scope func(*gorm.DB) *gorm.DB
	if onlyPublished {
		scope = func(db *gorm.DB) *gorm.DB { return db.Where("published = ?", true) }
	}
	rows, total, err := r.list(ctx, scope, page)
	if err != nil {
		return nil, 0, err
	}
	return mapSlice(rows, toNewsDomain), total, nil
}
