package models

// SyncConfig stores catalog synchronization metadata as key/value rows,
// e.g. the timestamp of the last completed sync run.
type SyncConfig struct {
	Key   string `json:"key" gorm:"primaryKey;type:varchar(255)"`
	Value string `json:"value" gorm:"type:text"`
}

// TableName specifies the table name for SyncConfig
func (SyncConfig) TableName() string {
	return "sync_configs"
}
