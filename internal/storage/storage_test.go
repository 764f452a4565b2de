package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/yourusername/linkedin-connect/internal/connection"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "data", "history.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenCreatesSchema(t *testing.T) {
	store := setupTestStore(t)

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	for _, key := range []string{"total_runs", "total_sent", "total_skipped", "total_failed", "sent_today"} {
		if v, ok := stats[key]; !ok || v != 0 {
			t.Fatalf("expected %s=0, got %v (present=%v)", key, v, ok)
		}
	}
}

func TestRunLifecycle(t *testing.T) {
	store := setupTestStore(t)

	started := time.Now().Add(-time.Minute)
	id, err := store.StartRun("Palavra Chave", started)
	if err != nil {
		t.Fatalf("StartRun failed: %v", err)
	}

	run, err := store.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if run.Keywords != "Palavra Chave" || run.FinishedAt != nil || run.StopReason != "" {
		t.Fatalf("unexpected fresh run %+v", run)
	}

	if err := store.FinishRun(id, 3, "max_pages", time.Now()); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	run, err = store.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if run.PagesVisited != 3 || run.StopReason != "max_pages" || run.FinishedAt == nil {
		t.Fatalf("unexpected finished run %+v", run)
	}
	if !run.FinishedAt.After(run.StartedAt) {
		t.Fatalf("finished_at %s not after started_at %s", run.FinishedAt, run.StartedAt)
	}
}

func TestFinishUnknownRun(t *testing.T) {
	store := setupTestStore(t)
	if err := store.FinishRun(42, 1, "max_pages", time.Now()); err == nil {
		t.Fatal("expected error for unknown run")
	}
}

func TestRecorderStoresOutcomes(t *testing.T) {
	store := setupTestStore(t)

	id, err := store.StartRun("golang", time.Now())
	if err != nil {
		t.Fatalf("StartRun failed: %v", err)
	}

	rec := store.Recorder(id)
	outcomes := []connection.Outcome{
		connection.Sent("Maria Silva", "Olá Maria"),
		connection.Skipped("José Souza", "already connected"),
		connection.Failed("Ana Lima", errors.New("send button not found")),
	}
	for i, o := range outcomes {
		if err := rec.Record(i+1, o); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	invs, err := store.Invitations(id)
	if err != nil {
		t.Fatalf("Invitations failed: %v", err)
	}
	if len(invs) != 3 {
		t.Fatalf("expected 3 invitations, got %d", len(invs))
	}
	if invs[0].Status != "sent" || invs[0].Note != "Olá Maria" || invs[0].Page != 1 {
		t.Fatalf("unexpected first invitation %+v", invs[0])
	}
	if invs[2].Status != "failed" || invs[2].Reason != "send button not found" {
		t.Fatalf("unexpected last invitation %+v", invs[2])
	}

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	want := map[string]int{"total_runs": 1, "total_sent": 1, "total_skipped": 1, "total_failed": 1, "sent_today": 1}
	for k, v := range want {
		if stats[k] != v {
			t.Errorf("expected %s=%d, got %d", k, v, stats[k])
		}
	}
}

func TestRecordRejectsUnknownStatus(t *testing.T) {
	store := setupTestStore(t)
	err := store.RecordInvitation(Invitation{RunID: 1, Page: 1, Status: "maybe", CreatedAt: time.Now()})
	if err == nil {
		t.Fatal("expected CHECK constraint failure")
	}
}
