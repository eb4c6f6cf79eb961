package repository

import (
	"connregistry/config"

	"gorm.io/gorm"
)

// BaseRepository provides transaction management for logical operations.
// Every write-path operation runs within one transaction acquired here.
type BaseRepository interface {
	Begin() *gorm.DB
}

type baseRepository struct {
	db *gorm.DB
}

// NewBaseRepository creates a new base repository instance with the global
// database connection.
func NewBaseRepository() BaseRepository {
	return &baseRepository{
		db: config.DB,
	}
}

func (r *baseRepository) Begin() *gorm.DB {
	return r.db.Begin()
}
