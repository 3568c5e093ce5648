package paymenter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeApt puts an apt stand-in on PATH that appends each invocation to a log
// file and exits with the given code. Returns the log file path.
func fakeApt(t *testing.T, exitCode string) string {
	t.Helper()
	dir := t.TempDir()
	log := filepath.Join(dir, "apt.log")
	script := `#!/bin/sh
echo "$@" >> "` + log + `"
exit ` + exitCode + `
`
	if err := os.WriteFile(filepath.Join(dir, "apt"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return log
}

// Package installation re-runs cleanly: apt no-ops on present packages, so a
// second run of the same step must succeed like the first.
func TestAptInstallRerunSucceeds(t *testing.T) {
	log := fakeApt(t, "0")
	apt := newAptRunner(NewRunner(NewTestLogger()))
	packages := []string{"nginx", "cron"}

	if res := apt.install(packages); !res.OK {
		t.Fatalf("first install failed: %+v", res)
	}
	if res := apt.install(packages); !res.OK {
		t.Fatalf("second install failed: %+v", res)
	}

	b, err := os.ReadFile(log)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("apt invoked %d times, want 2:\n%s", len(lines), b)
	}
	for _, line := range lines {
		if line != "install -y nginx cron" {
			t.Errorf("apt args = %q", line)
		}
	}
}

func TestAptInstallFailureNamesPackages(t *testing.T) {
	fakeApt(t, "100")
	apt := newAptRunner(NewRunner(NewTestLogger()))

	res := apt.install([]string{"nginx"})
	if res.OK {
		t.Fatal("failed apt reported success")
	}
	if res.ExitCode != 100 {
		t.Errorf("ExitCode = %d, want 100", res.ExitCode)
	}
	if !strings.Contains(res.Message, "package installation failed") {
		t.Errorf("Message = %q, want dependency failure wording", res.Message)
	}
}

func TestAptUpdate(t *testing.T) {
	log := fakeApt(t, "0")
	apt := newAptRunner(NewRunner(NewTestLogger()))

	if res := apt.update(); !res.OK {
		t.Fatalf("update failed: %+v", res)
	}
	b, err := os.ReadFile(log)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(b)); got != "update -y" {
		t.Errorf("apt args = %q", got)
	}
}
