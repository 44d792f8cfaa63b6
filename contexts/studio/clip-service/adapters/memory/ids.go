package memory

import (
	"context"

	"github.com/google/uuid"
)

// UUIDGenerator creates identifiers for trim jobs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
