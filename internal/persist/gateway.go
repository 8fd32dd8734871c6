package persist

import (
	"errors"

	"barpos/internal/model"
)

// ErrNotFound is returned by Load when no snapshot has ever been saved.
var ErrNotFound = errors.New("snapshot not found")

// Gateway is the external durability boundary. Saves are advisory: the
// in-memory state is the source of truth for a running session and a failed
// save is logged, not rolled back. Load must round-trip whatever Save wrote.
type Gateway interface {
	Save(snap *model.Snapshot) error
	Load() (*model.Snapshot, error)
}
