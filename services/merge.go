package services

import (
	"connregistry/models"
	"connregistry/services/dto"
)

// Mutable attribute names accepted in an update mask. Identity fields
// (connection_id and the surrogate key) are deliberately absent: they are
// never mergeable and are silently dropped when named in a mask.
const (
	fieldConnType    = "conn_type"
	fieldDescription = "description"
	fieldHost        = "host"
	fieldLogin       = "login"
	fieldPassword    = "password"
	fieldSchema      = "schema"
	fieldPort        = "port"
	fieldExtra       = "extra"
)

var mutableFields = map[string]bool{
	fieldConnType:    true,
	fieldDescription: true,
	fieldHost:        true,
	fieldLogin:       true,
	fieldPassword:    true,
	fieldSchema:      true,
	fieldPort:        true,
	fieldExtra:       true,
}

var identityFields = map[string]bool{
	"id":            true,
	"connection_id": true,
}

// normalizeMask validates a caller-supplied field mask against the declared
// mutable fields. Identity fields are dropped; unknown names are rejected.
// A nil result means no mask was supplied.
func normalizeMask(mask dto.FieldMask) (map[string]bool, error) {
	if len(mask) == 0 {
		return nil, nil
	}
	normalized := make(map[string]bool, len(mask))
	for _, field := range mask {
		if identityFields[field] {
			continue
		}
		if !mutableFields[field] {
			return nil, &FieldMaskError{Field: field}
		}
		normalized[field] = true
	}
	return normalized, nil
}

// fullReplaceMask names every mutable attribute. Merging with it replaces the
// whole record per present-vs-absent payload fields, which is the bulk
// overwrite semantics.
func fullReplaceMask() map[string]bool {
	mask := make(map[string]bool, len(mutableFields))
	for field := range mutableFields {
		mask[field] = true
	}
	return mask
}

// mergeConnection merges a partial update payload into an existing record.
//
// Without a mask the merge is sparse: only attributes present in the payload
// overwrite the stored value, absent optional fields keep their prior value.
// With a mask, exactly the masked attributes are taken from the payload; a
// masked attribute absent from the payload is cleared to its null value
// (explicit clear), and attributes outside the mask are retained even when
// the payload carries them. Identity fields are never touched.
func mergeConnection(existing *models.Connection, body dto.ConnectionBody, mask map[string]bool) models.Connection {
	merged := *existing

	take := func(field string, present bool) bool {
		if mask == nil {
			return present
		}
		return mask[field]
	}

	if take(fieldConnType, body.ConnType != "") {
		merged.ConnType = body.ConnType
	}
	if take(fieldDescription, body.Description != nil) {
		merged.Description = body.Description
	}
	if take(fieldHost, body.Host != nil) {
		merged.Host = body.Host
	}
	if take(fieldLogin, body.Login != nil) {
		merged.Login = body.Login
	}
	if take(fieldPassword, body.Password != nil) {
		merged.Password = body.Password
	}
	if take(fieldSchema, body.Schema != nil) {
		merged.Schema = body.Schema
	}
	if take(fieldPort, body.Port != nil) {
		merged.Port = body.Port
	}
	if take(fieldExtra, body.Extra != nil) {
		merged.Extra = body.Extra
	}

	return merged
}

// connectionFromBody builds a fresh record from a create payload. Absent
// optional attributes stay null rather than being backfilled with sentinels.
func connectionFromBody(body dto.ConnectionBody) models.Connection {
	return models.Connection{
		ConnID:      body.ConnectionID,
		ConnType:    body.ConnType,
		Description: body.Description,
		Host:        body.Host,
		Login:       body.Login,
		Password:    body.Password,
		Schema:      body.Schema,
		Port:        body.Port,
		Extra:       body.Extra,
	}
}
