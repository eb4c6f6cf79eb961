package dto

// ConnectionBody represents one validated per-record input for create, patch
// and bulk upsert calls. Optional attributes are pointers: a nil field means
// "absent from the payload", which the merge logic treats differently from an
// explicit empty value.
type ConnectionBody struct {
	ConnectionID string  `json:"connection_id" validate:"omitempty,conn_id"`
	ConnType     string  `json:"conn_type" validate:"required"`
	Description  *string `json:"description"`
	Host         *string `json:"host"`
	Login        *string `json:"login"`
	Password     *string `json:"password"`
	Schema       *string `json:"schema"`
	Port         *int    `json:"port" validate:"omitempty,min=0"`
	Extra        *string `json:"extra"`
}

// BulkBody represents the request body for the bulk upsert endpoint.
// Overwrite governs conflict resolution for the whole batch.
type BulkBody struct {
	Connections []ConnectionBody `json:"connections" validate:"required,min=1"`
	Overwrite   bool             `json:"overwrite"`
}

// FieldMask is the caller-supplied list of attribute names a patch call is
// permitted to change. A nil/empty mask means "all attributes present in the
// payload".
type FieldMask []string

// ConnectionResponse is the read-facing shape of a connection record.
// The storage surrogate key is deliberately absent; sensitive values are
// redacted before the response leaves the service layer.
type ConnectionResponse struct {
	ConnectionID string  `json:"connection_id"`
	ConnType     string  `json:"conn_type"`
	Description  *string `json:"description"`
	Host         *string `json:"host"`
	Login        *string `json:"login"`
	Password     *string `json:"password"`
	Schema       *string `json:"schema"`
	Port         *int    `json:"port"`
	Extra        *string `json:"extra"`
}

// BulkResult aggregates the outcome of one bulk upsert batch.
// Created distinguishes a pure first-time creation of the whole batch from an
// overwrite run; the HTTP layer maps that to 201 vs 200. BatchID correlates
// the response with the batch's log lines and surfaces as a response header
// rather than a body field, keeping the body envelope stable.
type BulkResult struct {
	Connections  []ConnectionResponse `json:"connections"`
	TotalEntries int                  `json:"total_entries"`
	Created      bool                 `json:"-"`
	BatchID      string               `json:"-"`
}

// ConnectionCollection is the paginated list response.
// TotalEntries reflects the unpaginated record count.
type ConnectionCollection struct {
	Connections  []ConnectionResponse `json:"connections"`
	TotalEntries int                  `json:"total_entries"`
}

// ListParams carries pagination and sorting options for list queries.
// OrderBy names a sortable attribute, with a leading '-' for descending.
type ListParams struct {
	Limit   int
	Offset  int
	OrderBy string
}
