package paymenter

import "os"

// serviceManager distills the systemctl surface the pipelines need. Every
// action reduces to one systemctl invocation whose exit code decides success.
type serviceManager struct {
	run *Runner
}

func newServiceManager(run *Runner) *serviceManager {
	return &serviceManager{run: run}
}

func (s *serviceManager) systemctl(action string, unit ...string) StepResult {
	args := append([]string{action}, unit...)
	res := s.run.Run("systemctl", args...)
	if !res.OK && len(unit) > 0 {
		res.Message = (&ServiceError{Service: unit[0], Action: action, Detail: res.Message}).Error()
	}
	return res
}

func (s *serviceManager) daemonReload() StepResult {
	return s.systemctl("daemon-reload")
}

func (s *serviceManager) enableNow(unit string) StepResult {
	return s.systemctl("enable", "--now", unit)
}

func (s *serviceManager) restart(unit string) StepResult {
	return s.systemctl("restart", unit)
}

func (s *serviceManager) stop(unit string) StepResult {
	return s.systemctl("stop", unit)
}

func (s *serviceManager) disable(unit string) StepResult {
	return s.systemctl("disable", unit)
}

// writeUnit renders the queue-worker unit into the systemd unit directory and
// reloads the daemon so it is picked up.
func (c Config) writeUnit(sm *serviceManager, data RenderData) StepResult {
	if err := c.renderTo("systemd/paymenter.service", c.UnitPath(), data, 0o644); err != nil {
		return failResult(-1, "%v", err)
	}
	return sm.daemonReload()
}

// removeUnit stops, disables and deletes the queue-worker unit.
func (c Config) removeUnit(sm *serviceManager) StepResult {
	_ = sm.stop(c.ServiceName)
	_ = sm.disable(c.ServiceName)
	if err := os.Remove(c.UnitPath()); err != nil && !os.IsNotExist(err) {
		return failResult(-1, "remove unit: %v", err)
	}
	return sm.daemonReload()
}
