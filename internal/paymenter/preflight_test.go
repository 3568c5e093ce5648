package paymenter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadOSRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "os-release")
	body := `PRETTY_NAME="Ubuntu 22.04.4 LTS"
NAME="Ubuntu"
VERSION_ID="22.04"
ID=ubuntu
ID_LIKE=debian
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	rel, err := readOSRelease(path)
	if err != nil {
		t.Fatal(err)
	}
	if rel.ID != "ubuntu" {
		t.Errorf("ID = %q", rel.ID)
	}
	if rel.Version != "22.04" {
		t.Errorf("Version = %q", rel.Version)
	}
}

func TestReadOSReleaseMissing(t *testing.T) {
	if _, err := readOSRelease(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("missing file did not error")
	}
}

func TestSupportedPlatformMatrix(t *testing.T) {
	cases := []struct {
		id, version string
		ok          bool
	}{
		{"ubuntu", "22.04", true},
		{"ubuntu", "24.04", true},
		{"ubuntu", "18.04", false},
		{"debian", "12", true},
		{"debian", "10", false},
		{"fedora", "39", false},
	}
	for _, c := range cases {
		supported := false
		for _, v := range supportedPlatforms[c.id] {
			if v == c.version {
				supported = true
			}
		}
		if supported != c.ok {
			t.Errorf("%s %s: supported = %v, want %v", c.id, c.version, supported, c.ok)
		}
	}
}

func TestWritableCheck(t *testing.T) {
	dir := t.TempDir()
	if err := writableCheck(dir); err != nil {
		t.Errorf("writable dir rejected: %v", err)
	}
	// The probe file must not be left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("probe left %d entries behind", len(entries))
	}
}

func TestRunChecksShape(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BackupDir = t.TempDir()
	results := RunChecks(cfg)
	if len(results) == 0 {
		t.Fatal("no checks ran")
	}
	seen := map[string]bool{}
	for _, r := range results {
		if r.Name == "" {
			t.Error("check with empty name")
		}
		if seen[r.Name] {
			t.Errorf("duplicate check name %q", r.Name)
		}
		seen[r.Name] = true
		if !r.OK && r.Err == nil {
			t.Errorf("%s failed without an error", r.Name)
		}
	}
	if !seen["backup dir writable"] || !seen["supported platform"] {
		t.Error("expected checks missing from results")
	}
}

func TestCheckRootError(t *testing.T) {
	err := CheckRoot()
	if os.Geteuid() == 0 {
		if err != nil {
			t.Errorf("running as root but CheckRoot = %v", err)
		}
		return
	}
	if !errors.Is(err, ErrNotRoot) {
		t.Errorf("err = %v, want ErrNotRoot", err)
	}
}
