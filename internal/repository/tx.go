package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Transactor runs a unit of work in one database transaction. Repositories
// join it through their WithTx methods.
type Transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// InTransaction commits when fn returns nil and rolls back otherwise.
func (t *Transactor) InTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return t.db.WithContext(ctx).Transaction(fn)
}

// IsDuplicate reports a unique index violation. Drivers opened with
// TranslateError return gorm.ErrDuplicatedKey; the message check covers
// connections opened without it.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	for _, s := range []string{
		"UNIQUE constraint failed",   // SQLite
		"Duplicate entry",            // MySQL
		"duplicate key value",        // PostgreSQL
		"violates unique constraint", // PostgreSQL (alternative)
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// IsNotFound reports gorm.ErrRecordNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
