package tooltip

import (
	"strings"

	"github.com/google/uuid"
)

// IDPrefix starts every generated popup identifier.
const IDPrefix = "tooltip-"

// NewID returns a popup identifier such as "tooltip-1f0c9a2b", suitable for
// aria-describedby wiring.
func NewID() string {
	return IDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
