package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"FundRadar/internal/domain/models"
)

type fakeStore struct {
	mu   sync.Mutex
	snap *models.Snapshot
	sets int
}

func (f *fakeStore) Get(ctx context.Context) (*models.Snapshot, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap, f.snap != nil, nil
}

func (f *fakeStore) Set(ctx context.Context, snap *models.Snapshot, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = snap
	f.sets++
	return nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published int
}

func (f *fakePublisher) PublishSnapshot(ctx context.Context, snap *models.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published++
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fakeCaster struct {
	mu    sync.Mutex
	casts int
}

func (f *fakeCaster) Broadcast(snap *models.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.casts++
}

func TestRefresherFansOut(t *testing.T) {
	agg := &fakeAggregator{
		table: models.CanonicalTable{"BTC": {models.VenueLighter: 0.0001}},
		bases: []string{"BTC"},
	}
	builder := newTestBuilder(t, agg, &fakeSource{})
	store := &fakeStore{}
	pub := &fakePublisher{}
	caster := &fakeCaster{}

	r := NewRefresher(builder, store, pub, caster, time.Minute, 30*time.Second, testLogger(t))
	r.refresh(context.Background())

	if store.sets != 1 {
		t.Fatalf("expected one cache set, got %d", store.sets)
	}
	if pub.published != 1 {
		t.Fatalf("expected one publish, got %d", pub.published)
	}
	if caster.casts != 1 {
		t.Fatalf("expected one broadcast, got %d", caster.casts)
	}
	if snap, ok, _ := store.Get(context.Background()); !ok || snap.TotalAssets != 1 {
		t.Fatalf("unexpected cached snapshot %v ok=%v", snap, ok)
	}
}

func TestRefresherStartRunsImmediateCycle(t *testing.T) {
	agg := &fakeAggregator{
		table: models.CanonicalTable{"BTC": {models.VenueLighter: 0.0001}},
		bases: []string{"BTC"},
	}
	builder := newTestBuilder(t, agg, &fakeSource{})
	store := &fakeStore{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRefresher(builder, store, nil, nil, time.Hour, time.Minute, testLogger(t))
	r.Start(ctx)

	deadline := time.After(2 * time.Second)
	for {
		if _, ok, _ := store.Get(context.Background()); ok {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("no snapshot cached after immediate cycle")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestRefresherNilSinksAreSkipped(t *testing.T) {
	agg := &fakeAggregator{
		table: models.CanonicalTable{"BTC": {models.VenueLighter: 0.0001}},
		bases: []string{"BTC"},
	}
	builder := newTestBuilder(t, agg, &fakeSource{})

	r := NewRefresher(builder, nil, nil, nil, time.Minute, time.Minute, testLogger(t))
	// Must not panic with every sink disabled.
	r.refresh(context.Background())
}
