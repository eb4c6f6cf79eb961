package services

import (
	"context"
	"errors"
	"fmt"

	"connregistry/config"
	"connregistry/models"
	"connregistry/pkg/logger"
	"connregistry/pkg/redact"
	"connregistry/repository"
	"connregistry/services/dto"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// mysqlDuplicateEntry is the MySQL error number for unique-constraint violations.
const mysqlDuplicateEntry = 1062

// ConnectionService provides the write-path and read-path business logic for
// connection records. Each method runs as one logical operation inside a
// single storage transaction; failures are reported as typed errors for the
// controller layer to classify.
type ConnectionService interface {
	// Create registers a new connection. Returns ConflictError when the
	// business key already exists and IdentityFormatError when it fails the
	// identity character-class constraint.
	Create(ctx context.Context, body dto.ConnectionBody) (*dto.ConnectionResponse, error)

	// Patch applies a partial update to the addressed connection, optionally
	// restricted by an update mask. The payload's embedded business key, if
	// present, must equal the addressed key.
	Patch(ctx context.Context, connID string, body dto.ConnectionBody, mask dto.FieldMask) (*dto.ConnectionResponse, error)

	// BulkUpsert applies a batch of candidates as one atomic unit.
	// Overwrite governs conflict resolution for the whole batch.
	BulkUpsert(ctx context.Context, batch []dto.ConnectionBody, overwrite bool) (*dto.BulkResult, error)

	// Get fetches one connection by business key, redacted for reading.
	Get(ctx context.Context, connID string) (*dto.ConnectionResponse, error)

	// List returns one page of connections plus the unpaginated total.
	List(ctx context.Context, params dto.ListParams) (*dto.ConnectionCollection, error)

	// Delete removes the addressed connection.
	Delete(ctx context.Context, connID string) error

	// CreateDefaults inserts any missing well-known default connections and
	// returns the number inserted.
	CreateDefaults(ctx context.Context, defaults []models.Connection) (int, error)

	// RedactForRead converts a stored record into its redacted read shape.
	// Invoked on every record leaving the service.
	RedactForRead(conn *models.Connection) dto.ConnectionResponse
}

type connectionService struct {
	baseRepo repository.BaseRepository
	connRepo repository.ConnectionRepository
	masker   *redact.Masker
}

// NewConnectionService creates a connection service instance wired to the
// global database handle and the configured redaction mode.
func NewConnectionService() ConnectionService {
	return &connectionService{
		baseRepo: repository.NewBaseRepository(),
		connRepo: repository.NewConnectionRepository(),
		masker:   redact.NewMasker(config.Cfg.HideSensitiveFields, config.Cfg.SensitiveFieldNames),
	}
}

// NewConnectionServiceWithDeps creates a service instance with injected
// dependencies. Used for testing to provide mock implementations.
func NewConnectionServiceWithDeps(
	baseRepo repository.BaseRepository,
	connRepo repository.ConnectionRepository,
	masker *redact.Masker,
) ConnectionService {
	return &connectionService{
		baseRepo: baseRepo,
		connRepo: connRepo,
		masker:   masker,
	}
}

func (s *connectionService) Create(ctx context.Context, body dto.ConnectionBody) (*dto.ConnectionResponse, error) {
	if !ValidConnID(body.ConnectionID) {
		return nil, &IdentityFormatError{Values: []string{body.ConnectionID}}
	}

	tx := s.baseRepo.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer rollbackOnPanic(tx)

	exists, err := s.connRepo.ExistsByConnID(tx, body.ConnectionID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("existence check for %s failed: %w", body.ConnectionID, err)
	}
	if resolveWrite(exists, false) == actionReject {
		tx.Rollback()
		return nil, &ConflictError{ConnID: body.ConnectionID}
	}

	conn := connectionFromBody(body)
	if err := s.connRepo.Create(tx, &conn); err != nil {
		tx.Rollback()
		// The pre-check races with concurrent writers; the unique index is
		// the authoritative signal.
		if isDuplicateKey(err) {
			return nil, &ConflictError{ConnID: body.ConnectionID, Err: err}
		}
		return nil, fmt.Errorf("failed to insert connection %s: %w", body.ConnectionID, err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit create of %s: %w", body.ConnectionID, err)
	}

	logger.Infof("Created connection %s (type=%s)", conn.ConnID, conn.ConnType)
	resp := s.RedactForRead(&conn)
	return &resp, nil
}

func (s *connectionService) Patch(ctx context.Context, connID string, body dto.ConnectionBody, mask dto.FieldMask) (*dto.ConnectionResponse, error) {
	// Identity mismatch fires before any other processing.
	if body.ConnectionID != "" && body.ConnectionID != connID {
		return nil, &IdentityMismatchError{Addressed: connID, Embedded: body.ConnectionID}
	}

	maskSet, err := normalizeMask(mask)
	if err != nil {
		return nil, err
	}

	tx := s.baseRepo.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer rollbackOnPanic(tx)

	existing, err := s.connRepo.GetByConnID(tx, connID)
	if err != nil {
		tx.Rollback()
		if repository.IsNotFound(err) {
			return nil, &NotFoundError{ConnID: connID}
		}
		return nil, fmt.Errorf("lookup of %s failed: %w", connID, err)
	}

	merged := mergeConnection(existing, body, maskSet)
	if err := s.connRepo.Save(tx, &merged); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update connection %s: %w", connID, err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit patch of %s: %w", connID, err)
	}

	logger.Infof("Patched connection %s (mask=%v)", connID, mask)
	resp := s.RedactForRead(&merged)
	return &resp, nil
}

// BulkUpsert processes the batch as one atomic unit: a validation pass over
// every business key, then a sequential resolution-and-apply loop in input
// order inside a single transaction. Any rejection aborts the whole batch.
// A duplicate key within one batch is resolved last-write-wins.
func (s *connectionService) BulkUpsert(ctx context.Context, batch []dto.ConnectionBody, overwrite bool) (*dto.BulkResult, error) {
	batchID := uuid.NewString()
	logger.Debugf("Bulk upsert %s: %d candidate(s), overwrite=%t", batchID, len(batch), overwrite)

	var badIndices []int
	var badValues []string
	for i, body := range batch {
		if !ValidConnID(body.ConnectionID) {
			badIndices = append(badIndices, i)
			badValues = append(badValues, body.ConnectionID)
		}
	}
	if len(badIndices) > 0 {
		return nil, &IdentityFormatError{Indices: badIndices, Values: badValues}
	}

	tx := s.baseRepo.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer rollbackOnPanic(tx)

	results := make([]dto.ConnectionResponse, 0, len(batch))
	// Maps each key written in this batch to its slot in results, so a later
	// duplicate overwrites in place and the reported order stays stable.
	written := make(map[string]int, len(batch))
	allCreated := true

	for i, body := range batch {
		if slot, seen := written[body.ConnectionID]; seen {
			// Last write for a key wins within one batch, regardless of the
			// overwrite flag.
			existing, err := s.connRepo.GetByConnID(tx, body.ConnectionID)
			if err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("bulk %s: re-lookup of %s failed: %w", batchID, body.ConnectionID, err)
			}
			merged := mergeConnection(existing, body, fullReplaceMask())
			if err := s.connRepo.Save(tx, &merged); err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("bulk %s: failed to rewrite %s: %w", batchID, body.ConnectionID, err)
			}
			results[slot] = s.RedactForRead(&merged)
			continue
		}

		exists, err := s.connRepo.ExistsByConnID(tx, body.ConnectionID)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("bulk %s: existence check for candidate %d failed: %w", batchID, i, err)
		}

		switch resolveWrite(exists, overwrite) {
		case actionReject:
			tx.Rollback()
			return nil, &ConflictError{ConnID: body.ConnectionID}

		case actionCreate:
			conn := connectionFromBody(body)
			if err := s.connRepo.Create(tx, &conn); err != nil {
				tx.Rollback()
				if isDuplicateKey(err) {
					return nil, &ConflictError{ConnID: body.ConnectionID, Err: err}
				}
				return nil, fmt.Errorf("bulk %s: failed to insert %s: %w", batchID, body.ConnectionID, err)
			}
			written[body.ConnectionID] = len(results)
			results = append(results, s.RedactForRead(&conn))

		case actionReplace:
			existing, err := s.connRepo.GetByConnID(tx, body.ConnectionID)
			if err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("bulk %s: lookup of %s failed: %w", batchID, body.ConnectionID, err)
			}
			// Bulk overwrite is a full replace per present-vs-absent payload
			// fields, never a selective patch.
			merged := mergeConnection(existing, body, fullReplaceMask())
			if err := s.connRepo.Save(tx, &merged); err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("bulk %s: failed to replace %s: %w", batchID, body.ConnectionID, err)
			}
			allCreated = false
			written[body.ConnectionID] = len(results)
			results = append(results, s.RedactForRead(&merged))
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("bulk %s: commit failed: %w", batchID, err)
	}

	logger.Infof("Bulk upsert %s committed: %d record(s), created=%t", batchID, len(results), allCreated)
	return &dto.BulkResult{
		Connections:  results,
		TotalEntries: len(results),
		Created:      allCreated,
		BatchID:      batchID,
	}, nil
}

func (s *connectionService) Get(ctx context.Context, connID string) (*dto.ConnectionResponse, error) {
	conn, err := s.connRepo.GetByConnID(nil, connID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, &NotFoundError{ConnID: connID}
		}
		return nil, fmt.Errorf("lookup of %s failed: %w", connID, err)
	}
	resp := s.RedactForRead(conn)
	return &resp, nil
}

// Sortable attributes for list queries, mapped to their storage columns.
var sortableColumns = map[string]string{
	"id":            "id",
	"connection_id": "conn_id",
	"conn_type":     "conn_type",
	"description":   "description",
	"host":          "host",
	"port":          "port",
}

func (s *connectionService) List(ctx context.Context, params dto.ListParams) (*dto.ConnectionCollection, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	orderBy := params.OrderBy
	descending := false
	if len(orderBy) > 0 && orderBy[0] == '-' {
		descending = true
		orderBy = orderBy[1:]
	}
	column, ok := sortableColumns[orderBy]
	if orderBy == "" {
		column = "id"
	} else if !ok {
		return nil, fmt.Errorf("order_by %q is not a sortable attribute", params.OrderBy)
	}
	if descending {
		column += " DESC"
	}

	total, err := s.connRepo.Count(nil)
	if err != nil {
		return nil, fmt.Errorf("count failed: %w", err)
	}
	conns, err := s.connRepo.List(nil, limit, offset, column)
	if err != nil {
		return nil, fmt.Errorf("list failed: %w", err)
	}

	results := make([]dto.ConnectionResponse, 0, len(conns))
	for i := range conns {
		results = append(results, s.RedactForRead(&conns[i]))
	}
	return &dto.ConnectionCollection{
		Connections:  results,
		TotalEntries: int(total),
	}, nil
}

func (s *connectionService) Delete(ctx context.Context, connID string) error {
	tx := s.baseRepo.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer rollbackOnPanic(tx)

	affected, err := s.connRepo.DeleteByConnID(tx, connID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete connection %s: %w", connID, err)
	}
	if affected == 0 {
		tx.Rollback()
		return &NotFoundError{ConnID: connID}
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit delete of %s: %w", connID, err)
	}
	logger.Infof("Deleted connection %s", connID)
	return nil
}

func (s *connectionService) CreateDefaults(ctx context.Context, defaults []models.Connection) (int, error) {
	tx := s.baseRepo.Begin()
	if tx.Error != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer rollbackOnPanic(tx)

	inserted := 0
	for i := range defaults {
		conn := defaults[i]
		exists, err := s.connRepo.ExistsByConnID(tx, conn.ConnID)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("existence check for default %s failed: %w", conn.ConnID, err)
		}
		if exists {
			continue
		}
		if err := s.connRepo.Create(tx, &conn); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to insert default %s: %w", conn.ConnID, err)
		}
		inserted++
	}

	if err := tx.Commit().Error; err != nil {
		return 0, fmt.Errorf("failed to commit default connections: %w", err)
	}
	logger.Infof("Seeded %d default connection(s)", inserted)
	return inserted, nil
}

// RedactForRead builds the read-facing shape of a record, masking sensitive
// attribute values and the sensitive keys inside the extra blob. The mapping
// is pure; applying it to already-masked output changes nothing.
func (s *connectionService) RedactForRead(conn *models.Connection) dto.ConnectionResponse {
	resp := dto.ConnectionResponse{
		ConnectionID: conn.ConnID,
		ConnType:     conn.ConnType,
		Description:  maskStringField(s.masker, "description", conn.Description),
		Host:         maskStringField(s.masker, "host", conn.Host),
		Login:        maskStringField(s.masker, "login", conn.Login),
		Password:     maskStringField(s.masker, "password", conn.Password),
		Schema:       maskStringField(s.masker, "schema", conn.Schema),
		Port:         conn.Port,
	}
	if conn.Extra != nil {
		masked := s.masker.MaskExtra(*conn.Extra)
		resp.Extra = &masked
	}
	return resp
}

func maskStringField(masker *redact.Masker, name string, value *string) *string {
	if value == nil {
		return nil
	}
	masked := masker.MaskField(name, *value)
	return &masked
}

// rollbackOnPanic releases a transaction that a panic would otherwise leave
// open, then re-panics. Error paths still roll back explicitly.
func rollbackOnPanic(tx *gorm.DB) {
	if r := recover(); r != nil {
		tx.Rollback()
		panic(r)
	}
}

// isDuplicateKey classifies a storage error as a unique-constraint violation.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
