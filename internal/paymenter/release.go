package paymenter

import "fmt"

const releaseURL = "https://github.com/paymenter/paymenter/releases/latest/download/paymenter.tar.gz"

// fetchRelease downloads the latest application tarball and unpacks it over
// the install directory. Used by both install and manual update; unpacking
// over an existing tree is how a manual update replaces the code.
func fetchRelease(run *Runner, installDir string) StepResult {
	if err := ensureDir(installDir, 0o755); err != nil {
		return failResult(-1, "create %s: %v", installDir, err)
	}
	tarball := installDir + "/paymenter.tar.gz"
	if res := run.Run("curl", "-fsSL", "-o", tarball, releaseURL); !res.OK {
		return res
	}
	if res := run.Run("tar", "-xzf", tarball, "-C", installDir); !res.OK {
		return res
	}
	return run.Run("rm", "-f", tarball)
}

// composerInstall resolves the application's PHP dependencies without dev
// packages. Composer refuses to run as root without explicit consent.
func composerInstall(run *Runner, installDir string) StepResult {
	return run.WithEnv("COMPOSER_ALLOW_SUPERUSER=1").Run(
		"composer", "install", "--no-dev", "--optimize-autoloader",
		"--working-dir", installDir)
}

// applyPermissions reapplies the ownership/permission policy: the web user
// owns the tree, storage and cache stay group-writable.
func applyPermissions(run *Runner, installDir, webUser string) StepResult {
	owner := fmt.Sprintf("%s:%s", webUser, webUser)
	if res := run.Run("chown", "-R", owner, installDir); !res.OK {
		return res
	}
	return run.Run("chmod", "-R", "775",
		installDir+"/storage", installDir+"/bootstrap/cache")
}
