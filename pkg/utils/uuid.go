package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

// GenerateCheckNo returns a check number unique across terminals: the
// business date followed by a short random suffix
func GenerateCheckNo(now time.Time) string {
	return fmt.Sprintf("%s-%s", now.Format("060102"), strings.ToUpper(uuid.New().String()[:6]))
}
