package app

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/five82/pantry/api"
	"github.com/five82/pantry/grocy"
	"github.com/five82/pantry/internal/grocytest"
	"github.com/five82/pantry/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second},
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

func TestCalculateBackoff_LongBase(t *testing.T) {
	if got := calculateBackoff(3, time.Minute); got != time.Minute {
		t.Fatalf("calculateBackoff(3, 1m) = %v, want 1m", got)
	}
}

func newTestGrocy(t *testing.T) (*grocy.Grocy, *grocytest.Server) {
	t.Helper()
	srv := grocytest.NewServer(t)
	g, err := grocy.New(api.Config{URL: srv.Host(), Port: srv.Port(), APIKey: "test-key"})
	if err != nil {
		t.Fatalf("grocy.New: %v", err)
	}
	return g, srv
}

func TestRefreshPopulatesStore(t *testing.T) {
	g, srv := newTestGrocy(t)
	var store state.Store

	if err := refresh(context.Background(), &store, g); err != nil {
		t.Fatalf("refresh returned error: %v", err)
	}

	snap := store.Snapshot()
	if !snap.HasData || snap.LastError != nil {
		t.Fatalf("snapshot = HasData %v LastError %v", snap.HasData, snap.LastError)
	}
	ov := snap.Overview
	if len(ov.Stock) != 2 {
		t.Fatalf("Stock = %d, want 2", len(ov.Stock))
	}
	if len(ov.Expired) != 1 || ov.Expired[0].ID() != 10 {
		t.Fatalf("Expired = %v, want product 10", ov.Expired)
	}
	if len(ov.Missing) != 1 || ov.Missing[0].ID() != 7 {
		t.Fatalf("Missing = %v, want product 7", ov.Missing)
	}
	if len(ov.Chores) != 2 || len(ov.Batteries) != 2 {
		t.Fatalf("chores = %d batteries = %d, want 2 and 2", len(ov.Chores), len(ov.Batteries))
	}
	if len(ov.Shopping) != 3 {
		t.Fatalf("Shopping = %d, want 3", len(ov.Shopping))
	}
	want := time.Date(2022, 4, 22, 17, 20, 5, 0, time.Local)
	if !ov.DBChanged.Equal(want) {
		t.Fatalf("DBChanged = %v, want %v", ov.DBChanged, want)
	}
	if n := srv.Count(http.MethodGet, "chores/4"); n != 0 {
		t.Fatalf("chore details fetched %d times, want 0", n)
	}
}

func TestRefreshSkipsWhenDatabaseUnchanged(t *testing.T) {
	g, srv := newTestGrocy(t)
	var store state.Store
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := refresh(ctx, &store, g); err != nil {
			t.Fatalf("refresh %d returned error: %v", i, err)
		}
	}

	if n := srv.Count(http.MethodGet, "system/db-changed-time"); n != 2 {
		t.Fatalf("db-changed-time requests = %d, want 2", n)
	}
	if n := srv.Count(http.MethodGet, "stock"); n != 1 {
		t.Fatalf("stock requests = %d, want 1", n)
	}
	if snap := store.Snapshot(); len(snap.Overview.Stock) != 2 {
		t.Fatalf("Stock = %d after skipped refresh, want 2", len(snap.Overview.Stock))
	}
}

func TestRefreshFailureKeepsData(t *testing.T) {
	g, srv := newTestGrocy(t)
	var store state.Store
	ctx := context.Background()

	if err := refresh(ctx, &store, g); err != nil {
		t.Fatalf("refresh returned error: %v", err)
	}

	srv.Fail(http.MethodGet, "system/db-changed-time", http.StatusInternalServerError, "down")
	if err := refresh(ctx, &store, g); err == nil {
		t.Fatalf("refresh returned nil error, want error")
	}
	snap := store.Snapshot()
	if !snap.HasData || len(snap.Overview.Stock) != 2 {
		t.Fatalf("data lost after failure: %+v", snap.Overview)
	}
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}

	srv.Restore(http.MethodGet, "system/db-changed-time")
	if err := refresh(ctx, &store, g); err != nil {
		t.Fatalf("refresh after restore returned error: %v", err)
	}
	if snap := store.Snapshot(); snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d after recovery, want 0", snap.ConsecutiveFailures)
	}
}

func TestRefreshReportsFailingSection(t *testing.T) {
	g, srv := newTestGrocy(t)
	var store state.Store

	srv.Fail(http.MethodGet, "chores", http.StatusInternalServerError, "boom")
	err := refresh(context.Background(), &store, g)
	if err == nil {
		t.Fatalf("refresh returned nil error, want error")
	}
	apiErr, ok := api.AsError(err)
	if !ok || apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("error = %v, want api.Error 500", err)
	}
	if store.Snapshot().HasData {
		t.Fatalf("HasData = true after failed first refresh")
	}
}

func TestStartPollerFillsStore(t *testing.T) {
	g, _ := newTestGrocy(t)
	var store state.Store
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartPoller(ctx, &store, g, 10*time.Millisecond, nil)

	deadline := time.Now().Add(5 * time.Second)
	for !store.Snapshot().HasData {
		if time.Now().After(deadline) {
			t.Fatalf("store not populated within 5s")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
