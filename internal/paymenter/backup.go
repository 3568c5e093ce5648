package paymenter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const backupPrefix = "paymenter"

// BackupRecord is a paired files-archive + database-dump artifact set. It is
// never mutated after creation and retained until the operator deletes it.
type BackupRecord struct {
	Timestamp        time.Time
	FilesArchivePath string
	DBDumpPath       string
}

// BackupManager snapshots the target directory and its database before any
// destructive operation.
type BackupManager struct {
	cfg Config
	log *Logger
	run *Runner

	now func() time.Time
}

func NewBackupManager(cfg Config, log *Logger, run *Runner) *BackupManager {
	return &BackupManager{cfg: cfg, log: log, run: run, now: time.Now}
}

// Snapshot archives the target tree and dumps its database. A failed dump
// after a successful archive is still a failure, but the archive is left in
// place for manual recovery.
func (b *BackupManager) Snapshot(target Target) (BackupRecord, error) {
	if err := ensureDir(b.cfg.BackupDir, 0o750); err != nil {
		return BackupRecord{}, &BackupError{Phase: PhaseFiles, Err: err}
	}

	ts := b.now()
	archivePath, dumpPath := b.artifactPaths(ts)

	rec := BackupRecord{Timestamp: ts, FilesArchivePath: archivePath, DBDumpPath: dumpPath}

	res := b.run.Run("tar", "-czf", archivePath,
		"-C", filepath.Dir(target.RootDir), filepath.Base(target.RootDir))
	if !res.OK {
		return rec, &BackupError{Phase: PhaseFiles, Err: fmt.Errorf("%s", res.Message)}
	}

	if err := b.dumpDatabase(target, dumpPath); err != nil {
		return rec, &BackupError{Phase: PhaseDatabase, Err: err}
	}

	b.log.Infof("snapshot complete: %s, %s", archivePath, dumpPath)
	return rec, nil
}

// artifactPaths names the artifact pair after the snapshot second. If a
// snapshot already exists for the same second, a numeric suffix keeps the new
// pair from clobbering it.
func (b *BackupManager) artifactPaths(ts time.Time) (string, string) {
	base := fmt.Sprintf("%s_%s", backupPrefix, ts.Format("20060102_150405"))
	name := base
	for n := 1; ; n++ {
		archive := filepath.Join(b.cfg.BackupDir, name+".tar.gz")
		dump := filepath.Join(b.cfg.BackupDir, name+".sql")
		if !fileExists(archive) && !fileExists(dump) {
			return archive, dump
		}
		name = fmt.Sprintf("%s_%d", base, n)
	}
}

func (b *BackupManager) dumpDatabase(target Target, dumpPath string) error {
	if target.DB.Name == "" {
		return fmt.Errorf("no database credentials in %s", filepath.Join(target.RootDir, ".env"))
	}

	f, err := os.Create(dumpPath)
	if err != nil {
		return err
	}
	defer f.Close()

	// Password via MYSQL_PWD keeps it out of the process list.
	res := b.run.WithEnv("MYSQL_PWD="+target.DB.Password).RunTo(f,
		"mysqldump", "-u", target.DB.User, target.DB.Name)
	if !res.OK {
		return fmt.Errorf("%s", res.Message)
	}
	return f.Sync()
}
