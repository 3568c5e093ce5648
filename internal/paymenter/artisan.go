package paymenter

// artisanCLI drives the target application's own command surface. Each call
// is a single opaque invocation judged by exit code; the application's output
// streams into the log like any other command.
type artisanCLI struct {
	run        *Runner
	installDir string
}

func newArtisanCLI(run *Runner, installDir string) *artisanCLI {
	return &artisanCLI{run: run, installDir: installDir}
}

func (a *artisanCLI) artisan(args ...string) StepResult {
	full := append([]string{a.installDir + "/artisan"}, args...)
	return a.run.Run("php", full...)
}

func (a *artisanCLI) keyGenerate() StepResult {
	return a.artisan("key:generate", "--force")
}

func (a *artisanCLI) storageLink() StepResult {
	return a.artisan("storage:link")
}

func (a *artisanCLI) migrate(seed bool) StepResult {
	args := []string{"migrate", "--force"}
	if seed {
		args = append(args, "--seed")
	}
	res := a.artisan(args...)
	if !res.OK {
		res.Message = (&MigrationError{Detail: res.Message}).Error()
	}
	return res
}

func (a *artisanCLI) selfUpdate() StepResult {
	return a.artisan("app:update")
}

func (a *artisanCLI) maintenanceOn() StepResult {
	return a.artisan("down")
}

func (a *artisanCLI) maintenanceOff() StepResult {
	return a.artisan("up")
}

func (a *artisanCLI) clearCaches() StepResult {
	return a.artisan("optimize:clear")
}

// createAdminUser is delegated to the application's interactive prompt.
func (a *artisanCLI) createAdminUser() StepResult {
	return a.run.RunInteractive("php", a.installDir+"/artisan", "p:user:create")
}
