package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/society"
	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/types"
)

var _ society.SnapshotSink = (*Store)(nil)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSnapshot(tick int) types.TickSnapshot {
	return types.TickSnapshot{
		Tick:      tick,
		Timestamp: time.Date(2025, 6, 1, 12, 0, tick, 0, time.UTC),
		Agents: []types.AgentSnapshot{
			{Name: "kant", Genes: map[string]float64{types.TraitDeontological: 0.9}, LastTrace: "executed \"honor the rule\""},
			{Name: "bentham", Genes: map[string]float64{types.TraitUtilitarian: 0.8 + 0.01*float64(tick)}},
		},
		Edges:        [][2]string{{"bentham", "kant"}},
		Polarization: 0.4,
		Diversity:    0.2,
	}
}

func TestSaveAndReadBack(t *testing.T) {
	s := openTestStore(t)

	for tick := 1; tick <= 3; tick++ {
		if err := s.SaveSnapshot(sampleSnapshot(tick)); err != nil {
			t.Fatalf("SaveSnapshot(%d): %v", tick, err)
		}
	}

	snaps, err := s.Ticks()
	if err != nil {
		t.Fatalf("Ticks: %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("got %d snapshots, want 3", len(snaps))
	}
	for i, snap := range snaps {
		if snap.Tick != i+1 {
			t.Errorf("snapshot %d has tick %d", i, snap.Tick)
		}
	}

	first := snaps[0]
	if !first.Timestamp.Equal(time.Date(2025, 6, 1, 12, 0, 1, 0, time.UTC)) {
		t.Errorf("timestamp round-trip: %v", first.Timestamp)
	}
	if first.Polarization != 0.4 || first.Diversity != 0.2 {
		t.Errorf("metrics round-trip: %f / %f", first.Polarization, first.Diversity)
	}
	if len(first.Agents) != 2 {
		t.Fatalf("got %d agents", len(first.Agents))
	}
	if first.Agents[0].Name != "kant" || first.Agents[0].Genes[types.TraitDeontological] != 0.9 {
		t.Errorf("agent round-trip: %+v", first.Agents[0])
	}
	if first.Agents[0].LastTrace != "executed \"honor the rule\"" {
		t.Errorf("trace round-trip: %q", first.Agents[0].LastTrace)
	}
	if len(first.Edges) != 1 || first.Edges[0] != [2]string{"bentham", "kant"} {
		t.Errorf("edges round-trip: %v", first.Edges)
	}
}

func TestSaveSnapshot_ReplacesTick(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveSnapshot(sampleSnapshot(1)); err != nil {
		t.Fatal(err)
	}
	revised := sampleSnapshot(1)
	revised.Agents = revised.Agents[:1]
	revised.Edges = nil
	if err := s.SaveSnapshot(revised); err != nil {
		t.Fatalf("replace: %v", err)
	}

	snaps, err := s.Ticks()
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(snaps))
	}
	if len(snaps[0].Agents) != 1 || len(snaps[0].Edges) != 0 {
		t.Errorf("old rows survived replacement: %d agents, %d edges",
			len(snaps[0].Agents), len(snaps[0].Edges))
	}
}

func TestGenomeHistory(t *testing.T) {
	s := openTestStore(t)

	for tick := 1; tick <= 5; tick++ {
		if err := s.SaveSnapshot(sampleSnapshot(tick)); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := s.GenomeHistory("bentham")
	if err != nil {
		t.Fatalf("GenomeHistory: %v", err)
	}
	if len(recs) != 5 {
		t.Fatalf("got %d records, want 5", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Tick <= recs[i-1].Tick {
			t.Errorf("history out of order at %d", i)
		}
		if recs[i].Genes[types.TraitUtilitarian] <= recs[i-1].Genes[types.TraitUtilitarian] {
			t.Errorf("genome drift not recorded at tick %d", recs[i].Tick)
		}
	}

	none, err := s.GenomeHistory("nobody")
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("unknown agent returned %d records", len(none))
	}
}

func TestOpen_OnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "society.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SaveSnapshot(sampleSnapshot(1)); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	snaps, err := reopened.Ticks()
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 || snaps[0].Tick != 1 {
		t.Errorf("data did not persist across reopen: %v", snaps)
	}
}
