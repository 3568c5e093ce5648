package paymenter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testInstallDir = "/var/www/paymenter"

func TestWithCronEntryEmptyCrontab(t *testing.T) {
	got := withCronEntry("", testInstallDir)
	want := cronEntry(testInstallDir) + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWithCronEntryReplacesPriorLine(t *testing.T) {
	existing := "# ops crontab\n" +
		"0 3 * * * /usr/local/bin/certbot renew\n" +
		"* * * * * php /var/www/paymenter/artisan schedule:run # old entry\n"

	got := withCronEntry(existing, testInstallDir)

	if count := strings.Count(got, testInstallDir); count != 1 {
		t.Errorf("install dir appears %d times, want exactly 1:\n%s", count, got)
	}
	if !strings.Contains(got, "certbot renew") {
		t.Error("unrelated line was dropped")
	}
	if !strings.Contains(got, "# ops crontab") {
		t.Error("comment line was dropped")
	}
}

func TestWithCronEntryIdempotent(t *testing.T) {
	once := withCronEntry("", testInstallDir)
	twice := withCronEntry(once, testInstallDir)
	if once != twice {
		t.Errorf("not idempotent:\nfirst:  %q\nsecond: %q", once, twice)
	}
}

// fakeCrontab puts a crontab stand-in on PATH that mimics the real tool: with
// no stored crontab, -l prints a diagnostic to stderr and exits 1; "-" stores
// stdin to the state file. Returns the state file path.
func fakeCrontab(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	state := filepath.Join(dir, "crontab.state")
	script := `#!/bin/sh
case "$1" in
-l)
	if [ -f "` + state + `" ]; then
		cat "` + state + `"
	else
		echo "no crontab for root" >&2
		exit 1
	fi
	;;
-)
	cat > "` + state + `"
	;;
-r)
	rm -f "` + state + `"
	;;
*)
	exit 1
	;;
esac
`
	if err := os.WriteFile(filepath.Join(dir, "crontab"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return state
}

// A fresh host has no crontab; crontab -l exits 1 with a diagnostic on
// stderr. That diagnostic must never end up as a schedule line.
func TestInstallCronFreshHost(t *testing.T) {
	state := fakeCrontab(t)
	run := NewRunner(NewTestLogger())

	if res := installCron(run, testInstallDir); !res.OK {
		t.Fatalf("installCron failed: %+v", res)
	}

	stored, err := os.ReadFile(state)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(stored), "no crontab") {
		t.Errorf("diagnostic leaked into the crontab:\n%s", stored)
	}
	if want := cronEntry(testInstallDir) + "\n"; string(stored) != want {
		t.Errorf("stored crontab = %q, want %q", stored, want)
	}
}

func TestInstallCronKeepsExistingEntries(t *testing.T) {
	state := fakeCrontab(t)
	if err := os.WriteFile(state, []byte("0 3 * * * /usr/local/bin/certbot renew\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	run := NewRunner(NewTestLogger())

	if res := installCron(run, testInstallDir); !res.OK {
		t.Fatalf("installCron failed: %+v", res)
	}

	stored, err := os.ReadFile(state)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(stored), "certbot renew") {
		t.Errorf("existing entry was dropped:\n%s", stored)
	}
	if count := strings.Count(string(stored), testInstallDir); count != 1 {
		t.Errorf("install dir appears %d times, want exactly 1:\n%s", count, stored)
	}
}

func TestRemoveCronDeletesEmptiedCrontab(t *testing.T) {
	state := fakeCrontab(t)
	if err := os.WriteFile(state, []byte(cronEntry(testInstallDir)+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	run := NewRunner(NewTestLogger())

	if res := removeCron(run, testInstallDir); !res.OK {
		t.Fatalf("removeCron failed: %+v", res)
	}
	if fileExists(state) {
		t.Error("emptied crontab was not removed")
	}
}

// Install and remove share one canonical match key: the install root path.
func TestStripCronEntryUsesSameKeyAsInstall(t *testing.T) {
	crontab := withCronEntry("0 3 * * * /usr/local/bin/backup-other\n", testInstallDir)

	stripped := stripCronEntry(crontab, testInstallDir)
	if strings.Contains(stripped, testInstallDir) {
		t.Errorf("entry survived removal:\n%s", stripped)
	}
	if !strings.Contains(stripped, "backup-other") {
		t.Error("unrelated entry was dropped")
	}
}
