package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldListingID is the structured log field key for a listing identifier.
	FieldListingID = "listing_id"
	// FieldSource is the structured log field key for the job board a listing came from.
	FieldSource = "listing_source"
	// FieldBackend is the structured log field key for the preference store backend.
	FieldBackend = "store_backend"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op one.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// ListingFields describes a listing compactly. Empty values are skipped.
func ListingFields(id, source string) []zap.Field {
	return StringFields(
		StringField{Key: FieldListingID, Value: id},
		StringField{Key: FieldSource, Value: source},
	)
}
