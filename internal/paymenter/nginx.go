package paymenter

import (
	"os"
)

// writeVhost renders the server block into sites-available and symlinks it
// into sites-enabled. The default site is removed so the vhost answers on the
// bare server name.
func (c Config) writeVhost(data RenderData) StepResult {
	if err := c.renderTo("nginx/paymenter.conf", c.VhostPath(), data, 0o644); err != nil {
		return failResult(-1, "%v", err)
	}

	_ = os.Remove(c.VhostLink())
	if err := os.Symlink(c.VhostPath(), c.VhostLink()); err != nil {
		return failResult(-1, "enable vhost: %v", err)
	}
	_ = os.Remove("/etc/nginx/sites-enabled/default")
	return okResult()
}

// validateAndReloadNginx refuses to reload on a config that fails nginx -t.
func validateAndReloadNginx(run *Runner) StepResult {
	if res := run.Run("nginx", "-t"); !res.OK {
		res.Message = (&ServiceError{Service: "nginx", Action: "test-config", Detail: res.Message}).Error()
		return res
	}
	if res := run.Run("systemctl", "reload", "nginx"); !res.OK {
		res.Message = (&ServiceError{Service: "nginx", Action: "reload", Detail: res.Message}).Error()
		return res
	}
	return okResult()
}

// removeVhost deletes both the site file and its enabled symlink.
func (c Config) removeVhost() StepResult {
	_ = os.Remove(c.VhostLink())
	if err := os.Remove(c.VhostPath()); err != nil && !os.IsNotExist(err) {
		return failResult(-1, "remove vhost: %v", err)
	}
	return okResult()
}
