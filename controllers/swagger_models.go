package controllers

// Example request/response models for Swagger documentation

// ConnectionRequest represents the request body for creating or patching a connection
type ConnectionRequest struct {
	ConnectionID string `json:"connection_id" example:"mysql_default"`
	ConnType     string `json:"conn_type" example:"mysql"`
	Description  string `json:"description" example:"Primary warehouse"`
	Host         string `json:"host" example:"10.0.0.12"`
	Login        string `json:"login" example:"etl"`
	Password     string `json:"password" example:"s3cret"`
	Schema       string `json:"schema" example:"warehouse"`
	Port         int    `json:"port" example:"3306"`
	Extra        string `json:"extra" example:"{\"charset\": \"utf8mb4\"}"`
}

// BulkRequest represents the request body for the bulk upsert endpoint
type BulkRequest struct {
	Connections []ConnectionRequest `json:"connections"`
	Overwrite   bool                `json:"overwrite" example:"false"`
}

// ConnectionResponseExample represents a redacted connection record
type ConnectionResponseExample struct {
	ConnectionID string  `json:"connection_id" example:"mysql_default"`
	ConnType     string  `json:"conn_type" example:"mysql"`
	Description  *string `json:"description"`
	Host         *string `json:"host" example:"10.0.0.12"`
	Login        *string `json:"login" example:"etl"`
	Password     *string `json:"password" example:"***"`
	Schema       *string `json:"schema"`
	Port         *int    `json:"port" example:"3306"`
	Extra        *string `json:"extra"`
}

// BulkResponseExample represents the bulk upsert result envelope
type BulkResponseExample struct {
	Connections  []ConnectionResponseExample `json:"connections"`
	TotalEntries int                         `json:"total_entries" example:"2"`
}

// CollectionResponseExample represents one page of connection records
type CollectionResponseExample struct {
	Connections  []ConnectionResponseExample `json:"connections"`
	TotalEntries int                         `json:"total_entries" example:"17"`
}

// StandardErrorResponse represents a simple error detail
type StandardErrorResponse struct {
	Detail string "json:\"detail\" example:\"the connection with connection_id: `mysql_default` was not found\""
}

// ConflictErrorResponse represents a uniqueness-conflict error
type ConflictErrorResponse struct {
	Detail struct {
		Reason    string `json:"reason" example:"Unique constraint violation"`
		OrigError string `json:"orig_error" example:"Error 1062 (23000): Duplicate entry"`
	} `json:"detail"`
}
