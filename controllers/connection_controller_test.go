package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connregistry/models"
	"connregistry/services"
	"connregistry/services/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubConnectionService returns canned results so handler status mapping can
// be tested without a database.
type stubConnectionService struct {
	createResp *dto.ConnectionResponse
	createErr  error
	patchResp  *dto.ConnectionResponse
	patchErr   error
	patchMask  dto.FieldMask
	bulkResult *dto.BulkResult
	bulkErr    error
	getResp    *dto.ConnectionResponse
	getErr     error
	deleteErr  error
}

func (s *stubConnectionService) Create(ctx context.Context, body dto.ConnectionBody) (*dto.ConnectionResponse, error) {
	return s.createResp, s.createErr
}

func (s *stubConnectionService) Patch(ctx context.Context, connID string, body dto.ConnectionBody, mask dto.FieldMask) (*dto.ConnectionResponse, error) {
	s.patchMask = mask
	return s.patchResp, s.patchErr
}

func (s *stubConnectionService) BulkUpsert(ctx context.Context, batch []dto.ConnectionBody, overwrite bool) (*dto.BulkResult, error) {
	return s.bulkResult, s.bulkErr
}

func (s *stubConnectionService) Get(ctx context.Context, connID string) (*dto.ConnectionResponse, error) {
	return s.getResp, s.getErr
}

func (s *stubConnectionService) List(ctx context.Context, params dto.ListParams) (*dto.ConnectionCollection, error) {
	return &dto.ConnectionCollection{}, nil
}

func (s *stubConnectionService) Delete(ctx context.Context, connID string) error {
	return s.deleteErr
}

func (s *stubConnectionService) CreateDefaults(ctx context.Context, defaults []models.Connection) (int, error) {
	return 0, nil
}

func (s *stubConnectionService) RedactForRead(conn *models.Connection) dto.ConnectionResponse {
	return dto.ConnectionResponse{ConnectionID: conn.ConnID, ConnType: conn.ConnType}
}

func newTestRouter(stub *stubConnectionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetConnectionService(stub)
	router := gin.New()
	RegisterConnectionRoutes(router.Group("/api"))
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateConnection_Responds201(t *testing.T) {
	stub := &stubConnectionService{
		createResp: &dto.ConnectionResponse{ConnectionID: "c1", ConnType: "t"},
	}
	router := newTestRouter(stub)

	w := doRequest(router, http.MethodPost, "/api/connections",
		`{"connection_id": "c1", "conn_type": "t"}`)

	assert.Equal(t, http.StatusCreated, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "c1", body["connection_id"])
	// Optional attributes serialize as explicit nulls.
	assert.Contains(t, w.Body.String(), `"port":null`)
	assert.Contains(t, w.Body.String(), `"password":null`)
}

func TestCreateConnection_InvalidIDResponds422(t *testing.T) {
	router := newTestRouter(&stubConnectionService{})

	w := doRequest(router, http.MethodPost, "/api/connections",
		`{"connection_id": "test()", "conn_type": "t"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateConnection_ConflictResponds409(t *testing.T) {
	stub := &stubConnectionService{
		createErr: &services.ConflictError{ConnID: "c1"},
	}
	router := newTestRouter(stub)

	w := doRequest(router, http.MethodPost, "/api/connections",
		`{"connection_id": "c1", "conn_type": "t"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Unique constraint violation")
}

func TestPatchConnection_MismatchResponds400(t *testing.T) {
	stub := &stubConnectionService{
		patchErr: &services.IdentityMismatchError{Addressed: "c1", Embedded: "other"},
	}
	router := newTestRouter(stub)

	w := doRequest(router, http.MethodPatch, "/api/connections/c1",
		`{"connection_id": "other", "conn_type": "t"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "does not match the URL parameter")
}

func TestPatchConnection_NotFoundResponds404(t *testing.T) {
	stub := &stubConnectionService{
		patchErr: &services.NotFoundError{ConnID: "missing"},
	}
	router := newTestRouter(stub)

	w := doRequest(router, http.MethodPatch, "/api/connections/missing",
		`{"connection_id": "missing", "conn_type": "t"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "was not found")
}

func TestPatchConnection_ForwardsUpdateMask(t *testing.T) {
	stub := &stubConnectionService{
		patchResp: &dto.ConnectionResponse{ConnectionID: "c1", ConnType: "t"},
	}
	router := newTestRouter(stub)

	w := doRequest(router, http.MethodPatch,
		"/api/connections/c1?update_mask=host&update_mask=port",
		`{"connection_id": "c1", "conn_type": "t"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.FieldMask{"host", "port"}, stub.patchMask)
}

func TestBulkUpsert_CreatedResponds201(t *testing.T) {
	stub := &stubConnectionService{
		bulkResult: &dto.BulkResult{
			Connections:  []dto.ConnectionResponse{{ConnectionID: "c1", ConnType: "t"}},
			TotalEntries: 1,
			Created:      true,
			BatchID:      "6f1b4b0e-2f3a-4bb5-9b63-0fb5d9a3a111",
		},
	}
	router := newTestRouter(stub)

	w := doRequest(router, http.MethodPut, "/api/connections/bulk",
		`{"connections": [{"connection_id": "c1", "conn_type": "t"}]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"total_entries":1`)
	// The batch correlation id travels as a header, never in the body.
	assert.Equal(t, "6f1b4b0e-2f3a-4bb5-9b63-0fb5d9a3a111", w.Header().Get("X-Batch-Id"))
	assert.NotContains(t, w.Body.String(), "batch")
}

func TestBulkUpsert_OverwriteResponds200(t *testing.T) {
	stub := &stubConnectionService{
		bulkResult: &dto.BulkResult{
			Connections:  []dto.ConnectionResponse{{ConnectionID: "c1", ConnType: "t"}},
			TotalEntries: 1,
			Created:      false,
		},
	}
	router := newTestRouter(stub)

	w := doRequest(router, http.MethodPut, "/api/connections/bulk",
		`{"connections": [{"connection_id": "c1", "conn_type": "t"}], "overwrite": true}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBulkUpsert_InvalidIndicesResponds422(t *testing.T) {
	stub := &stubConnectionService{
		bulkErr: &services.IdentityFormatError{Indices: []int{0, 1}, Values: []string{"****", "test()"}},
	}
	router := newTestRouter(stub)

	w := doRequest(router, http.MethodPut, "/api/connections/bulk",
		`{"connections": [{"connection_id": "ok1", "conn_type": "t"}, {"connection_id": "ok2", "conn_type": "t"}]}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"invalid_indexes":[0,1]`)
}

func TestDeleteConnection_Responds204(t *testing.T) {
	router := newTestRouter(&stubConnectionService{})

	w := doRequest(router, http.MethodDelete, "/api/connections/c1", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestTestConnection_DisabledResponds403(t *testing.T) {
	router := newTestRouter(&stubConnectionService{})

	w := doRequest(router, http.MethodPost, "/api/connections/test",
		`{"connection_id": "c1", "conn_type": "sqlite"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "disabled")
}
