package models

import "time"

// ConfigurationType tags how a configuration value string is coerced on read.
type ConfigurationType string

const (
	ConfigurationTypeNumber  ConfigurationType = "number"
	ConfigurationTypeDecimal ConfigurationType = "decimal"
	ConfigurationTypeString  ConfigurationType = "string"
)

// Configuration is one key/value tunable edited from the teacher console.
type Configuration struct {
	Key       string            `db:"key" json:"key"`
	Value     string            `db:"value" json:"value"`
	Type      ConfigurationType `db:"type" json:"type"`
	UpdatedAt time.Time         `db:"updated_at" json:"updatedAt"`
}

// Well-known configuration keys.
const (
	ConfigKeyMaxStudents        = "maxStudents"
	ConfigKeyMaxWaitingListSize = "maxWaitingListSize"
	ConfigKeyRatePerMinute      = "ratePerMinute"
)

// Settings is the typed view over the configuration table. Coercion happens
// once at the repository boundary so services never re-parse value strings.
type Settings struct {
	MaxStudents        int
	MaxWaitingListSize int
	RatePerMinute      float64
}
