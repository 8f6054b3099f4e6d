package repository

import (
	"errors"

	"github.com/amirasaad/invest/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors to domain errors so callers above
// the repository never see driver specific failures. Requires
// gorm.Config.TranslateError for unique and foreign key violations.
func MapGormErrorToDomain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrAlreadyExists
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrNotFound
	}
	return err
}

// WrapError wraps a GORM operation and automatically maps errors.
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(m).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
