package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateBookingReference returns a short human-readable booking code,
// e.g. "HSP-9F2C1A7B". Uniqueness is backed by the column constraint.
func GenerateBookingReference() string {
	id := uuid.New().String()
	return fmt.Sprintf("HSP-%s", strings.ToUpper(id[:8]))
}
