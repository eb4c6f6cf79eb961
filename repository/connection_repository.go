package repository

import (
	"errors"

	"connregistry/config"
	"connregistry/models"

	"gorm.io/gorm"
)

// ConnectionRepository provides data access operations for connection records.
// All lookups use the business key (conn_id); the surrogate key never crosses
// the repository boundary. Methods accept an optional transaction handle and
// fall back to the shared connection when it is nil.
type ConnectionRepository interface {
	GetByConnID(tx *gorm.DB, connID string) (*models.Connection, error)
	ExistsByConnID(tx *gorm.DB, connID string) (bool, error)
	Create(tx *gorm.DB, conn *models.Connection) error
	Save(tx *gorm.DB, conn *models.Connection) error
	DeleteByConnID(tx *gorm.DB, connID string) (int64, error)
	List(tx *gorm.DB, limit, offset int, orderBy string) ([]models.Connection, error)
	Count(tx *gorm.DB) (int64, error)
}

type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new connection repository instance.
func NewConnectionRepository() ConnectionRepository {
	return &connectionRepository{
		db: config.DB,
	}
}

func (r *connectionRepository) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *connectionRepository) GetByConnID(tx *gorm.DB, connID string) (*models.Connection, error) {
	var conn models.Connection
	if err := r.handle(tx).Where("conn_id = ?", connID).First(&conn).Error; err != nil {
		return nil, err
	}
	return &conn, nil
}

// ExistsByConnID is a best-effort pre-check; the unique index on conn_id is
// the authoritative conflict signal under concurrent writers.
func (r *connectionRepository) ExistsByConnID(tx *gorm.DB, connID string) (bool, error) {
	var count int64
	if err := r.handle(tx).Model(&models.Connection{}).Where("conn_id = ?", connID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *connectionRepository) Create(tx *gorm.DB, conn *models.Connection) error {
	return r.handle(tx).Create(conn).Error
}

func (r *connectionRepository) Save(tx *gorm.DB, conn *models.Connection) error {
	return r.handle(tx).Save(conn).Error
}

func (r *connectionRepository) DeleteByConnID(tx *gorm.DB, connID string) (int64, error) {
	result := r.handle(tx).Where("conn_id = ?", connID).Delete(&models.Connection{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// List returns one page of records ordered by the given column expression.
// orderBy must be built from the sortable-column allowlist by the caller.
func (r *connectionRepository) List(tx *gorm.DB, limit, offset int, orderBy string) ([]models.Connection, error) {
	var conns []models.Connection
	query := r.handle(tx).Order(orderBy).Limit(limit).Offset(offset)
	if err := query.Find(&conns).Error; err != nil {
		return nil, err
	}
	return conns, nil
}

func (r *connectionRepository) Count(tx *gorm.DB) (int64, error) {
	var count int64
	if err := r.handle(tx).Model(&models.Connection{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IsNotFound reports whether err signals a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
