package paymenter

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistoryRunLifecycle(t *testing.T) {
	h := openTestHistory(t)
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	id, err := h.CreateRun(OpInstall, start)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.RecordStep(id, "apt update", okResult(), start); err != nil {
		t.Fatal(err)
	}
	if err := h.RecordStep(id, "install packages", failResult(100, "apt exited with status 100"), start.Add(time.Second)); err != nil {
		t.Fatal(err)
	}
	if err := h.FinishRun(id, OutcomeFailed, "install packages", start.Add(2*time.Second)); err != nil {
		t.Fatal(err)
	}

	runs, err := h.RecentRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	got := runs[0]
	if got.ID != id {
		t.Errorf("ID = %d, want %d", got.ID, id)
	}
	if got.Operation != OpInstall {
		t.Errorf("Operation = %q", got.Operation)
	}
	if got.Outcome != OutcomeFailed {
		t.Errorf("Outcome = %q", got.Outcome)
	}
	if got.FailedStep != "install packages" {
		t.Errorf("FailedStep = %q", got.FailedStep)
	}
	if got.FinishedAt == nil {
		t.Error("FinishedAt not set")
	}
}

func TestHistoryRecentRunsOrderAndLimit(t *testing.T) {
	h := openTestHistory(t)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	ops := []Operation{OpInstall, OpBackup, OpAutoUpdate}
	for i, op := range ops {
		id, err := h.CreateRun(op, base.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatal(err)
		}
		if err := h.FinishRun(id, OutcomeSuccess, "", base.Add(time.Duration(i)*time.Minute+time.Second)); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := h.RecentRuns(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].Operation != OpAutoUpdate || runs[1].Operation != OpBackup {
		t.Errorf("order = %q, %q; want newest first", runs[0].Operation, runs[1].Operation)
	}
}

func TestHistoryReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	h, err := OpenHistory(path)
	if err != nil {
		t.Fatal(err)
	}
	id, err := h.CreateRun(OpRemove, time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}
	if err := h.FinishRun(id, OutcomeCancelled, "", time.Now().UTC()); err != nil {
		t.Fatal(err)
	}
	h.Close()

	h2, err := OpenHistory(path)
	if err != nil {
		t.Fatal(err)
	}
	defer h2.Close()
	runs, err := h2.RecentRuns(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Outcome != OutcomeCancelled {
		t.Errorf("runs after reopen = %+v", runs)
	}
}
