package paymenter

import (
	"errors"
	"fmt"
)

// Pre-flight fatals. These abort before any other work runs.
var (
	ErrNotRoot       = errors.New("must be run as root")
	ErrNotInstalled  = errors.New("paymenter is not installed")
	ErrUserCancelled = errors.New("cancelled by operator")
)

// UnsupportedPlatformError reports a host that fails the OS/version pre-flight.
type UnsupportedPlatformError struct {
	ID      string
	Version string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: %s %s (need Ubuntu 20.04/22.04/24.04 or Debian 11/12)", e.ID, e.Version)
}

// DependencyInstallError names the package batch that failed so the operator
// can resume manually.
type DependencyInstallError struct {
	Packages []string
	Detail   string
}

func (e *DependencyInstallError) Error() string {
	return fmt.Sprintf("package installation failed (%d packages): %s", len(e.Packages), e.Detail)
}

type ConfigWriteError struct {
	Path string
	Err  error
}

func (e *ConfigWriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *ConfigWriteError) Unwrap() error { return e.Err }

// BackupPhase identifies which half of a snapshot failed.
type BackupPhase string

const (
	PhaseFiles    BackupPhase = "files"
	PhaseDatabase BackupPhase = "database"
)

// BackupError is returned when either the tree archive or the database dump
// cannot be produced. Artifacts written before the failure are left in place
// for manual recovery.
type BackupError struct {
	Phase BackupPhase
	Err   error
}

func (e *BackupError) Error() string {
	return fmt.Sprintf("backup failed during %s phase: %v", e.Phase, e.Err)
}

func (e *BackupError) Unwrap() error { return e.Err }

type MigrationError struct {
	Detail string
}

func (e *MigrationError) Error() string {
	return "database migration failed: " + e.Detail
}

type ServiceError struct {
	Service string
	Action  string
	Detail  string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s %s failed: %s", e.Service, e.Action, e.Detail)
}
