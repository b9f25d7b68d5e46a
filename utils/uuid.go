package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string
func GenerateID() string {
	return uuid.New().String()
}

// GenerateRegistryCode returns a found-item registry code of the form
// OBJ-YYYYMMDD-XXXXXXXX, dated at t in UTC.
func GenerateRegistryCode(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return "OBJ-" + t.UTC().Format("20060102") + "-" + suffix
}
