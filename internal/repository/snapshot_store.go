package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"FundRadar/internal/domain/models"
	drepo "FundRadar/internal/domain/repository"
	icache "FundRadar/internal/service/cache"
)

const snapshotKey = "fundradar:snapshot:latest"

// SnapshotStore keeps the latest snapshot in a BytesCache (in-memory by
// default, Redis when replicas share state).
type SnapshotStore struct {
	cache icache.BytesCache
}

func NewSnapshotStore(cache icache.BytesCache) *SnapshotStore {
	return &SnapshotStore{cache: cache}
}

func (s *SnapshotStore) Get(ctx context.Context) (*models.Snapshot, bool, error) {
	b, ok, err := s.cache.GetBytes(ctx, snapshotKey)
	if err != nil || !ok {
		return nil, false, err
	}
	var snap models.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, false, fmt.Errorf("decode cached snapshot: %w", err)
	}
	return &snap, true, nil
}

func (s *SnapshotStore) Set(ctx context.Context, snap *models.Snapshot, ttl time.Duration) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return s.cache.SetBytes(ctx, snapshotKey, b, ttl)
}

var _ drepo.SnapshotCache = (*SnapshotStore)(nil)
