package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"connregistry/bootstrap"
	"connregistry/config"
	"connregistry/pkg/logger"
	"connregistry/services"
	"connregistry/services/dto"
	"connregistry/utils"

	"github.com/gin-gonic/gin"
)

var connSrv services.ConnectionService
var connTester services.ConnectionTester = services.NewDialTester()

// SetConnectionService initializes the connection service instance.
// Used for dependency injection in tests to provide mock implementations.
func SetConnectionService(s services.ConnectionService) {
	connSrv = s
}

// SetConnectionTester replaces the connection probe implementation.
func SetConnectionTester(t services.ConnectionTester) {
	connTester = t
}

// respondServiceError translates the service error taxonomy into transport
// responses. Unclassified errors are storage failures and surface as 500.
func respondServiceError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	var mismatch *services.IdentityMismatchError
	var badID *services.IdentityFormatError
	var conflict *services.ConflictError
	var badMask *services.FieldMaskError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": notFound.Error()})
	case errors.As(err, &mismatch):
		c.JSON(http.StatusBadRequest, gin.H{"detail": mismatch.Error()})
	case errors.As(err, &badID):
		detail := gin.H{"message": badID.Error()}
		if len(badID.Indices) > 0 {
			detail["invalid_indexes"] = badID.Indices
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": detail})
	case errors.As(err, &badMask):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": badMask.Error()})
	case errors.As(err, &conflict):
		origError := ""
		if conflict.Err != nil {
			origError = conflict.Err.Error()
		}
		c.JSON(http.StatusConflict, gin.H{"detail": gin.H{
			"reason":     "Unique constraint violation",
			"orig_error": origError,
		}})
	default:
		logger.Errorf("Unhandled service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	}
}

// CreateConnection creates a new connection record
// @Summary Create connection
// @Description Registers a new connection record; the response is redacted
// @Tags Connections
// @Accept json
// @Produce json
// @Param connection body ConnectionRequest true "Connection object"
// @Success 201 {object} ConnectionResponseExample "Connection created"
// @Failure 409 {object} ConflictErrorResponse "Connection already exists"
// @Failure 422 {object} StandardErrorResponse "Invalid connection_id"
// @Router /api/connections [post]
func createConnection(c *gin.Context) {
	var body dto.ConnectionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequestResponse(c, err)
		return
	}
	if err := utils.ValidateStruct(&body); err != nil {
		utils.UnprocessableResponse(c, err)
		return
	}

	logger.Debugf("Creating connection: %s", body.ConnectionID)
	resp, err := connSrv.Create(c.Request.Context(), body)
	if err != nil {
		logger.Errorf("Failed to create connection %s: %v", body.ConnectionID, err)
		respondServiceError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusCreated, resp)
}

// PatchConnection partially updates a connection record
// @Summary Patch connection
// @Description Applies a field-masked partial update to a connection record
// @Tags Connections
// @Accept json
// @Produce json
// @Param connection_id path string true "Connection business key"
// @Param update_mask query []string false "Attribute names the patch may change"
// @Param connection body ConnectionRequest true "Partial connection object"
// @Success 200 {object} ConnectionResponseExample "Connection updated"
// @Failure 400 {object} StandardErrorResponse "Body key does not match URL key"
// @Failure 404 {object} StandardErrorResponse "Connection not found"
// @Failure 422 {object} StandardErrorResponse "Unknown update_mask field"
// @Router /api/connections/{connection_id} [patch]
func patchConnection(c *gin.Context) {
	connID := c.Param("connection_id")
	var body dto.ConnectionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequestResponse(c, err)
		return
	}
	if err := utils.ValidateStruct(&body); err != nil {
		utils.UnprocessableResponse(c, err)
		return
	}
	mask := dto.FieldMask(c.QueryArray("update_mask"))

	resp, err := connSrv.Patch(c.Request.Context(), connID, body, mask)
	if err != nil {
		logger.Errorf("Failed to patch connection %s: %v", connID, err)
		respondServiceError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, resp)
}

// BulkUpsertConnections creates or replaces a batch of connections atomically
// @Summary Bulk upsert connections
// @Description Applies the whole batch as one transaction; any conflict or invalid key aborts everything
// @Tags Connections
// @Accept json
// @Produce json
// @Param batch body BulkRequest true "Batch of connection objects with overwrite flag"
// @Success 201 {object} BulkResponseExample "All records newly created"
// @Success 200 {object} BulkResponseExample "Batch applied with overwrites"
// @Failure 409 {object} ConflictErrorResponse "Existing key without overwrite"
// @Failure 422 {object} StandardErrorResponse "Invalid connection_id at reported indexes"
// @Router /api/connections/bulk [put]
func bulkUpsertConnections(c *gin.Context) {
	var body dto.BulkBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequestResponse(c, err)
		return
	}
	if err := utils.ValidateStruct(&body); err != nil {
		utils.UnprocessableResponse(c, err)
		return
	}

	result, err := connSrv.BulkUpsert(c.Request.Context(), body.Connections, body.Overwrite)
	if err != nil {
		logger.Errorf("Bulk upsert of %d candidate(s) failed: %v", len(body.Connections), err)
		respondServiceError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	if result.BatchID != "" {
		c.Header("X-Batch-Id", result.BatchID)
	}
	utils.JSONResponse(c, status, result)
}

// GetConnection fetches one connection record
// @Summary Get connection
// @Description Returns the redacted connection record for a business key
// @Tags Connections
// @Produce json
// @Param connection_id path string true "Connection business key"
// @Success 200 {object} ConnectionResponseExample "Connection found"
// @Failure 404 {object} StandardErrorResponse "Connection not found"
// @Router /api/connections/{connection_id} [get]
func getConnection(c *gin.Context) {
	connID := c.Param("connection_id")
	resp, err := connSrv.Get(c.Request.Context(), connID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, resp)
}

// ListConnections lists connection records
// @Summary List connections
// @Description Returns one redacted page of connections plus the total count
// @Tags Connections
// @Produce json
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Page offset" default(0)
// @Param order_by query string false "Sort attribute, '-' prefix for descending"
// @Success 200 {object} CollectionResponseExample "Connections page"
// @Router /api/connections [get]
func listConnections(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	params := dto.ListParams{
		Limit:   limit,
		Offset:  offset,
		OrderBy: c.Query("order_by"),
	}

	resp, err := connSrv.List(c.Request.Context(), params)
	if err != nil {
		utils.BadRequestResponse(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, resp)
}

// DeleteConnection deletes a connection record
// @Summary Delete connection
// @Description Removes the connection record addressed by business key
// @Tags Connections
// @Produce json
// @Param connection_id path string true "Connection business key"
// @Success 204 "Connection deleted"
// @Failure 404 {object} StandardErrorResponse "Connection not found"
// @Router /api/connections/{connection_id} [delete]
func deleteConnection(c *gin.Context) {
	connID := c.Param("connection_id")
	logger.Debugf("Deleting connection: %s", connID)
	if err := connSrv.Delete(c.Request.Context(), connID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// TestConnection probes connectivity for a candidate connection
// @Summary Test connection
// @Description Probes reachability of the described external system; disabled unless configured
// @Tags Connections
// @Accept json
// @Produce json
// @Param connection body ConnectionRequest true "Connection object to probe"
// @Success 200 {object} services.TestResult "Probe outcome"
// @Failure 403 {object} StandardErrorResponse "Testing disabled by configuration"
// @Router /api/connections/test [post]
func testConnection(c *gin.Context) {
	if !config.Cfg.TestConnectionEnabled {
		c.JSON(http.StatusForbidden, gin.H{
			"detail": "Testing connections is disabled. Contact your deployment admin to enable it.",
		})
		return
	}

	var body dto.ConnectionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequestResponse(c, err)
		return
	}
	if err := utils.ValidateStruct(&body); err != nil {
		utils.UnprocessableResponse(c, err)
		return
	}

	result := connTester.Test(c.Request.Context(), services.TestConfigFromBody(body, 5*time.Second))
	utils.JSONResponse(c, http.StatusOK, result)
}

// CreateDefaultConnections seeds the well-known default connections
// @Summary Create default connections
// @Description Inserts any missing default connections from the configured seed file
// @Tags Connections
// @Success 204 "Defaults created"
// @Router /api/connections/defaults [post]
func createDefaultConnections(c *gin.Context) {
	defaults, err := bootstrap.LoadDefaultConnections(config.Cfg.DefaultConnectionsFile)
	if err != nil {
		utils.BadRequestResponse(c, err)
		return
	}
	inserted, err := connSrv.CreateDefaults(c.Request.Context(), defaults)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	logger.Infof("Default connections endpoint inserted %d record(s)", inserted)
	c.Status(http.StatusNoContent)
}

// RegisterConnectionRoutes registers HTTP endpoints for connection operations.
func RegisterConnectionRoutes(rg *gin.RouterGroup) {
	conns := rg.Group("/connections")
	{
		conns.POST("", createConnection)
		conns.GET("", listConnections)
		conns.PUT("/bulk", bulkUpsertConnections)
		conns.POST("/test", testConnection)
		conns.POST("/defaults", createDefaultConnections)
		conns.GET("/:connection_id", getConnection)
		conns.PATCH("/:connection_id", patchConnection)
		conns.DELETE("/:connection_id", deleteConnection)
	}
}
