package requirement

import (
	"strings"

	"github.com/google/uuid"
)

// IDPrefix prefixes generated requirement identifiers.
const IDPrefix = "REQ-"

// NewID generates a requirement identifier in the format REQ-XXXXXXXX.
func NewID() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return IDPrefix + strings.ToUpper(raw[:8])
}
