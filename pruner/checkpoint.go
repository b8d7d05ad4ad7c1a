package pruner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ipfs/go-datastore"
)

var (
	storePrefix   = datastore.NewKey("pruner")
	checkpointKey = datastore.NewKey("checkpoint")

	errCheckpointNotFound = errors.New("checkpoint not found")
)

// checkpoint contains the state of the pruning Service that is persisted to
// disk after every effective sweep.
type checkpoint struct {
	// LastPrunedHeight is the highest height whose header and sampling result
	// were removed. Heights at or below it are gone.
	LastPrunedHeight uint64 `json:"last_pruned_height"`
}

// storeCheckpoint persists the checkpoint to disk.
func storeCheckpoint(ctx context.Context, ds datastore.Datastore, c *checkpoint) error {
	bin, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return ds.Put(ctx, checkpointKey, bin)
}

// getCheckpoint loads the last checkpoint from disk.
func getCheckpoint(ctx context.Context, ds datastore.Datastore) (*checkpoint, error) {
	bin, err := ds.Get(ctx, checkpointKey)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, errCheckpointNotFound
		}
		return nil, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	var cp checkpoint
	if err := json.Unmarshal(bin, &cp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkpoint: %w", err)
	}
	return &cp, nil
}

// loadCheckpoint loads the last checkpoint from disk, initializing it from
// the store's tail if it does not exist yet.
func (s *Service) loadCheckpoint(ctx context.Context) error {
	cp, err := getCheckpoint(ctx, s.ds)
	if errors.Is(err, errCheckpointNotFound) {
		tail, err := s.hstore.Tail(ctx)
		if err != nil {
			return err
		}

		s.checkpoint = &checkpoint{LastPrunedHeight: tail.Height - 1}
		return storeCheckpoint(ctx, s.ds, s.checkpoint)
	}
	if err != nil {
		return err
	}

	s.checkpoint = cp
	return nil
}

// updateCheckpoint updates the checkpoint with the last pruned height and
// persists it to disk.
func (s *Service) updateCheckpoint(ctx context.Context, lastPrunedHeight uint64) error {
	s.checkpoint.LastPrunedHeight = lastPrunedHeight
	return storeCheckpoint(ctx, s.ds, s.checkpoint)
}
