package models

// Connection represents a named external-system connection record.
// Stores credentials and connectivity metadata used by callers to reach
// remote systems. ConnID is the caller-assigned business key and is unique
// across the live record set; ID is the storage surrogate key and never
// leaves the storage layer. Optional attributes are pointers so an absent
// value stays NULL in storage and serializes as null on the wire.
type Connection struct {
	ID          uint    `gorm:"primaryKey;column:id" json:"-"`
	ConnID      string  `gorm:"column:conn_id;size:250;uniqueIndex:uq_connection_conn_id" json:"connection_id"`
	ConnType    string  `gorm:"column:conn_type" json:"conn_type"`
	Description *string `gorm:"column:description" json:"description"`
	Host        *string `gorm:"column:host" json:"host"`
	Login       *string `gorm:"column:login" json:"login"`
	Password    *string `gorm:"column:password" json:"password"`
	Schema      *string `gorm:"column:db_schema" json:"schema"`
	Port        *int    `gorm:"column:port" json:"port"`
	Extra       *string `gorm:"column:extra" json:"extra"` // opaque blob, typically serialized key/value data
}

// TableName specifies the static table name for GORM.
// Required to override GORM's default pluralization behavior.
func (Connection) TableName() string {
	return "connection"
}
