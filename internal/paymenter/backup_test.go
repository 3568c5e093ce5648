package paymenter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testBackupManager(t *testing.T) (*BackupManager, Config) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.BackupDir = t.TempDir()
	log := NewTestLogger()
	return NewBackupManager(cfg, log, NewRunner(log)), cfg
}

func TestArtifactPathsNaming(t *testing.T) {
	b, cfg := testBackupManager(t)
	ts := time.Date(2026, 8, 26, 13, 37, 42, 0, time.UTC)

	archive, dump := b.artifactPaths(ts)
	if want := filepath.Join(cfg.BackupDir, "paymenter_20260826_133742.tar.gz"); archive != want {
		t.Errorf("archive = %q, want %q", archive, want)
	}
	if want := filepath.Join(cfg.BackupDir, "paymenter_20260826_133742.sql"); dump != want {
		t.Errorf("dump = %q, want %q", dump, want)
	}
}

// Two snapshots in the same clock second must not clobber each other.
func TestArtifactPathsSameSecondCollision(t *testing.T) {
	b, _ := testBackupManager(t)
	ts := time.Date(2026, 8, 26, 13, 37, 42, 0, time.UTC)

	first, firstDump := b.artifactPaths(ts)
	for _, p := range []string{first, firstDump} {
		if err := os.WriteFile(p, []byte("x"), 0o640); err != nil {
			t.Fatal(err)
		}
	}

	second, secondDump := b.artifactPaths(ts)
	if second == first || secondDump == firstDump {
		t.Fatalf("second snapshot reused paths: %q %q", second, secondDump)
	}
	if !strings.HasSuffix(second, "_1.tar.gz") {
		t.Errorf("second archive = %q, want _1 suffix", second)
	}

	for _, p := range []string{second, secondDump} {
		if err := os.WriteFile(p, []byte("x"), 0o640); err != nil {
			t.Fatal(err)
		}
	}
	third, _ := b.artifactPaths(ts)
	if !strings.HasSuffix(third, "_2.tar.gz") {
		t.Errorf("third archive = %q, want _2 suffix", third)
	}
}

// A dump failure after a successful archive is still a failure, and the
// archive is left in place for manual recovery.
func TestSnapshotDumpFailureLeavesArchive(t *testing.T) {
	b, _ := testBackupManager(t)

	root := filepath.Join(t.TempDir(), "paymenter")
	if err := os.MkdirAll(root, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "artisan"), []byte("<?php"), 0o640); err != nil {
		t.Fatal(err)
	}

	// No database credentials: the files phase succeeds, the dump cannot.
	rec, err := b.Snapshot(Target{RootDir: root})
	if err == nil {
		t.Fatal("Snapshot succeeded without database credentials")
	}

	var backupErr *BackupError
	if !errors.As(err, &backupErr) {
		t.Fatalf("error type = %T, want *BackupError", err)
	}
	if backupErr.Phase != PhaseDatabase {
		t.Errorf("Phase = %q, want %q", backupErr.Phase, PhaseDatabase)
	}

	info, statErr := os.Stat(rec.FilesArchivePath)
	if statErr != nil {
		t.Fatalf("archive missing after partial failure: %v", statErr)
	}
	if info.Size() == 0 {
		t.Error("archive is empty")
	}
}

func TestSnapshotRecordFields(t *testing.T) {
	b, cfg := testBackupManager(t)
	fixed := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return fixed }

	root := filepath.Join(t.TempDir(), "paymenter")
	if err := os.MkdirAll(root, 0o750); err != nil {
		t.Fatal(err)
	}

	rec, _ := b.Snapshot(Target{RootDir: root})
	if !rec.Timestamp.Equal(fixed) {
		t.Errorf("Timestamp = %v, want %v", rec.Timestamp, fixed)
	}
	if filepath.Dir(rec.FilesArchivePath) != cfg.BackupDir {
		t.Errorf("archive outside backup dir: %q", rec.FilesArchivePath)
	}
}
