package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
)

// StorageKey prefixes every persisted cart; the session id is appended.
const StorageKey = "gupta-ji-cart"

// SnapshotVersion is bumped whenever the persisted shape changes. Snapshots
// with any other version are discarded on hydrate.
const SnapshotVersion = 1

// ErrSnapshotNotFound is returned by a Persister when nothing is stored under a key.
var ErrSnapshotNotFound = errors.New("cart snapshot not found")

// Persister stores serialized cart snapshots under a key.
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

type snapshot struct {
	Version int           `json:"version"`
	State   snapshotState `json:"state"`
}

type snapshotState struct {
	Items []models.LineItem `json:"items"`
}

// Key builds the storage key for a cart session.
func Key(sessionID string) string {
	return StorageKey + ":" + sessionID
}

func encodeSnapshot(items []models.LineItem) ([]byte, error) {
	if items == nil {
		items = []models.LineItem{}
	}

	data, err := json.Marshal(snapshot{Version: SnapshotVersion, State: snapshotState{Items: items}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}

	return data, nil
}

func decodeSnapshot(data []byte) ([]models.LineItem, error) {
	var snap snapshot

	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart snapshot: %w", err)
	}

	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported cart snapshot version %d", snap.Version)
	}

	items := make([]models.LineItem, 0, len(snap.State.Items))
	for _, item := range snap.State.Items {
		if item.Quantity <= 0 {
			continue
		}
		item.Quantity = min(item.Quantity, MaxLineQuantity)
		items = append(items, item)
	}

	return items, nil
}
