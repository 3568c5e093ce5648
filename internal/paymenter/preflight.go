package paymenter

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
)

// CheckResult is one pre-flight check outcome, consumed by both the doctor
// subcommand and the TUI preflight screen.
type CheckResult struct {
	Name string
	OK   bool
	Err  error
}

// CheckRoot is the first fatal gate: nothing else runs without privilege.
func CheckRoot() error {
	if os.Geteuid() != 0 {
		return ErrNotRoot
	}
	return nil
}

type osRelease struct {
	ID      string
	Version string
}

var supportedPlatforms = map[string][]string{
	"ubuntu": {"20.04", "22.04", "24.04"},
	"debian": {"11", "12"},
}

// CheckPlatform validates the host OS/version against the supported matrix.
func CheckPlatform() error {
	rel, err := readOSRelease("/etc/os-release")
	if err != nil {
		return &UnsupportedPlatformError{ID: "unknown", Version: "unknown"}
	}
	for _, v := range supportedPlatforms[rel.ID] {
		if rel.Version == v {
			return nil
		}
	}
	return &UnsupportedPlatformError{ID: rel.ID, Version: rel.Version}
}

func readOSRelease(path string) (osRelease, error) {
	f, err := os.Open(path)
	if err != nil {
		return osRelease{}, err
	}
	defer f.Close()

	var rel osRelease
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		val := strings.Trim(parts[1], `"`)
		switch parts[0] {
		case "ID":
			rel.ID = val
		case "VERSION_ID":
			rel.Version = val
		}
	}
	return rel, s.Err()
}

// RunChecks runs the non-fatal host checks. Warnings do not block; the
// operator decides whether to continue.
func RunChecks(cfg Config) []CheckResult {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"running as root", CheckRoot},
		{"supported platform", CheckPlatform},
		{"apt binary", func() error {
			_, err := exec.LookPath("apt")
			return err
		}},
		{"systemctl binary", func() error {
			_, err := exec.LookPath("systemctl")
			return err
		}},
		{"curl binary", func() error {
			_, err := exec.LookPath("curl")
			return err
		}},
		{"tar binary", func() error {
			_, err := exec.LookPath("tar")
			return err
		}},
		{"install root writable", func() error {
			return writableCheck("/var/www")
		}},
		{"backup dir writable", func() error {
			return writableCheck(cfg.BackupDir)
		}},
		{"disk space >= 2GiB on /var", func() error {
			return diskCheck("/var", 2)
		}},
	}

	results := make([]CheckResult, 0, len(checks))
	for _, check := range checks {
		err := check.fn()
		results = append(results, CheckResult{Name: check.name, OK: err == nil, Err: err})
	}
	return results
}

func writableCheck(dir string) error {
	if err := ensureDir(dir, 0o750); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "paymenterctl-write-check-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}

func diskCheck(path string, minGiB uint64) error {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return err
	}
	free := (stat.Bavail * uint64(stat.Bsize)) / (1024 * 1024 * 1024)
	if free < minGiB {
		return fmt.Errorf("free space %dGiB < %dGiB", free, minGiB)
	}
	return nil
}
