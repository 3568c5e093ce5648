package paymenter

import (
	"fmt"
	"strings"
)

// cronEntry is the scheduler line for the installation, keyed by the install
// root path. Install replaces any prior line carrying the same path; remove
// filters by the same path, so both sides share one canonical match key.
func cronEntry(installDir string) string {
	return fmt.Sprintf("* * * * * php %s/artisan schedule:run >> /dev/null 2>&1", installDir)
}

// withCronEntry returns the crontab with exactly one schedule line for the
// install dir, replacing any previous one.
func withCronEntry(crontab, installDir string) string {
	lines := stripCronEntry(crontab, installDir)
	return lines + cronEntry(installDir) + "\n"
}

// stripCronEntry drops every line referencing the install dir.
func stripCronEntry(crontab, installDir string) string {
	var b strings.Builder
	for _, line := range strings.Split(crontab, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.Contains(line, installDir) {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// installCron rewrites the root crontab with the schedule entry. A missing
// crontab (exit 1 from crontab -l) counts as empty; its captured output is a
// diagnostic, not crontab content, and must not be resubmitted.
func installCron(run *Runner, installDir string) StepResult {
	current, res := run.RunCapture("crontab", "-l")
	if !res.OK {
		current = ""
	}
	return run.RunInput(withCronEntry(current, installDir), "crontab", "-")
}

// removeCron drops the schedule entry, leaving unrelated lines untouched.
func removeCron(run *Runner, installDir string) StepResult {
	current, res := run.RunCapture("crontab", "-l")
	if !res.OK {
		// No crontab installed; nothing to clean up.
		return okResult()
	}
	remaining := stripCronEntry(current, installDir)
	if remaining == "" {
		return run.Run("crontab", "-r")
	}
	return run.RunInput(remaining, "crontab", "-")
}
