// Package content serves the public site: news, the contact form and the
// deposit wallets.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/amirasaad/invest/pkg/storage"
	"github.com/google/uuid"
)

// NewsInput describes an article. On update nil fields are kept.
type NewsInput struct {
	Title     *string
	Summary   *string
	Body      *string
	Published *bool
	Image     *storage.Upload
}

type NewsService struct {
	uow      repository.UnitOfWork
	uploader *storage.Uploader
	logger   *slog.Logger
	now      func() time.Time
}

func NewNewsService(uow repository.UnitOfWork, uploader *storage.Uploader, logger *slog.Logger) *NewsService {
	return &NewsService{uow: uow, uploader: uploader, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// List returns published articles, or every article when all is set.
func (s *NewsService) List(ctx context.Context, all bool, page repository.Pagination) ([]*domain.News, int64, error) {
	return s.uow.NewsRepository().List(ctx, !all, page)
}

// Get hides drafts unless all is set.
func (s *NewsService) Get(ctx context.Context, id uuid.UUID, all bool) (*domain.News, error) {
	n, err := s.uow.NewsRepository().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !n.Published && !all {
		return nil, domain.ErrNotFound
	}
	return n, nil
}

func (s *NewsService) Create(ctx context.Context, in NewsInput) (*domain.News, error) {
	now := s.now()
	n := &domain.News{ID: uuid.New(), Published: true, CreatedAt: now, UpdatedAt: now}
	if err := applyNews(n, in); err != nil {
		return nil, err
	}
	if err := s.save(ctx, n, in.Image, func(uow repository.UnitOfWork) error {
		return uow.NewsRepository().Create(ctx, n)
	}); err != nil {
		return nil, err
	}
	s.logger.Info("news created", "newsID", n.ID)
	return n, nil
}

func (s *NewsService) Update(ctx context.Context, id uuid.UUID, in NewsInput) (*domain.News, error) {
	n, err := s.uow.NewsRepository().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyNews(n, in); err != nil {
		return nil, err
	}
	n.UpdatedAt = s.now()
	if err := s.save(ctx, n, in.Image, func(uow repository.UnitOfWork) error {
		return uow.NewsRepository().Update(ctx, n)
	}); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NewsService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.uow.NewsRepository().Delete(ctx, id)
}

// save uploads the optional image then runs write, discarding the image if
// the write fails.
func (s *NewsService) save(ctx context.Context, n *domain.News, image *storage.Upload, write func(repository.UnitOfWork) error) error {
	var key string
	if image != nil {
		url, k, err := s.uploader.Save(ctx, "news", image)
		if err != nil {
			return err
		}
		n.ImageURL, key = url, k
	}
	err := s.uow.Do(ctx, write)
	if err != nil && key != "" {
		if derr := s.uploader.Discard(ctx, key); derr != nil {
			s.logger.Warn("orphaned news image", "key", key, "error", derr)
		}
	}
	return err
}

func applyNews(n *domain.News, in NewsInput) error {
	if in.Title != nil {
		n.Title = strings.TrimSpace(*in.Title)
	}
	if in.Summary != nil {
		n.Summary = strings.TrimSpace(*in.Summary)
	}
	if in.Body != nil {
		n.Body = strings.TrimSpace(*in.Body)
	}
	if in.Published != nil {
		n.Published = *in.Published
	}
	if n.Title == "" {
		return fmt.Errorf("title is required: %w", domain.ErrValidation)
	}
	if n.Body == "" {
		return fmt.Errorf("body is required: %w", domain.ErrValidation)
	}
	return nil
}
