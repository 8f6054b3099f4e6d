package repository

import (
	"context"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// store holds the gorm plumbing shared by every repository.
type store[M any] struct {
	db *gorm.DB
}

func (s store[M]) create(ctx context.Context, m *M) error {
	return WrapError(func() error {
		return s.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error
	})
}

func (s store[M]) save(ctx context.Context, m *M) error {
	return WrapError(func() error {
		return s.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error
	})
}

// updateColumns writes values to the row id and nothing else.
func (s store[M]) updateColumns(ctx context.Context, id uuid.UUID, values map[string]any) error {
	res := s.db.WithContext(ctx).Model(new(M)).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s store[M]) get(ctx context.Context, id uuid.UUID, preloads ...string) (*M, error) {
	var m M
	q := s.db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&m, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return &m, nil
}

// getForUpdate reads a row with SELECT ... FOR UPDATE on postgres. Other
// dialects rely on the connection pool serialising writers.
func (s store[M]) getForUpdate(ctx context.Context, id uuid.UUID) (*M, error) {
	var m M
	if err := withLock(s.db.WithContext(ctx)).First(&m, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return &m, nil
}

func (s store[M]) delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(new(M), "id = ?", id)
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// list runs scope, counts the matches and returns one page of them, newest
// first.
func (s store[M]) list(
	ctx context.Context,
	scope func(*gorm.DB) *gorm.DB,
	page repository.Pagination,
	preloads ...string,
) ([]M, int64, error) {
	q := s.db.WithContext(ctx).Model(new(M))
	if scope != nil {
		q = scope(q)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, MapGormErrorToDomain(err)
	}

	page = page.Normalize()
	find := q.Order("created_at DESC").Offset(page.Offset()).Limit(page.PageSize)
	for _, p := range preloads {
		find = find.Preload(p)
	}
	var rows []M
	if err := find.Find(&rows).Error; err != nil {
		return nil, 0, MapGormErrorToDomain(err)
	}
	return rows, total, nil
}

func (s store[M]) countWhere(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(new(M)).Where(query, args...).Count(&n).Error
	return n, MapGormErrorToDomain(err)
}

func withLock(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

func filterScope(f repository.ListFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.UserID != nil {
			db = db.Where("user_id = ?", *f.UserID)
		}
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		return db
	}
}
