package paymenter

import "fmt"

// InstallType selects how the vhost is addressed.
type InstallType string

const (
	InstallDomain InstallType = "domain"
	InstallIP     InstallType = "ip"
)

// InstallParams is everything the install pipeline needs, collected and
// validated by the menu or CLI before the pipeline starts. Pipelines never
// prompt.
type InstallParams struct {
	InstallType InstallType
	ServerName  string
	DB          DBCredentials
	CreateAdmin bool
}

// Validate rejects parameter sets the pipelines must never see.
func (params InstallParams) Validate() error {
	if params.ServerName == "" {
		return fmt.Errorf("server name is required")
	}
	if params.DB.Name == "" || params.DB.User == "" {
		return fmt.Errorf("database name and user are required")
	}
	if len(params.DB.Password) < 8 {
		return fmt.Errorf("database password must be at least 8 characters")
	}
	return nil
}

// RemoveParams carries the operator's answers to the two removal
// confirmations. Confirmed is the second, irreversible-action confirmation;
// without it no destructive step runs.
type RemoveParams struct {
	Confirmed  bool
	TakeBackup bool
}

// Pipelines composes the registry, backup manager and command runner into the
// five user-facing operations.
type Pipelines struct {
	cfg     Config
	log     *Logger
	run     *Runner
	reg     *Registry
	backups *BackupManager
}

func NewPipelines(cfg Config, log *Logger, store *History) *Pipelines {
	run := NewRunner(log)
	return &Pipelines{
		cfg:     cfg,
		log:     log,
		run:     run,
		reg:     NewRegistry(log, store),
		backups: NewBackupManager(cfg, log, run),
	}
}

// Install provisions the host from scratch: packages, application release,
// configuration, database, services, scheduler.
func (p *Pipelines) Install(params InstallParams) *PipelineRun {
	run := p.reg.Begin(OpInstall)
	defer p.reg.Finish(run)

	apt := newAptRunner(p.run)
	sm := newServiceManager(p.run)
	db := newMySQLAdmin(p.run)
	artisan := newArtisanCLI(p.run, p.cfg.InstallDir)
	data := p.cfg.renderData(params)

	steps := []Step{
		{Name: "validate platform", Action: func() StepResult {
			if err := CheckPlatform(); err != nil {
				return failResult(-1, "%v", err)
			}
			return okResult()
		}},
		{Name: "refresh package index", Action: apt.update},
		{Name: "install base packages", Action: func() StepResult { return apt.install(basePackages) }},
		{Name: "add php repository", Action: apt.addPHPRepository},
		{Name: "refresh package index (php repo)", Action: apt.update},
		{Name: "install php packages", Action: func() StepResult { return apt.install(phpPackages) }},
		{Name: "install service packages", Action: func() StepResult { return apt.install(servicePackages) }},
		{Name: "install composer", Action: func() StepResult { return installComposer(p.run) }},
		{Name: "fetch application release", Action: func() StepResult { return fetchRelease(p.run, p.cfg.InstallDir) }},
		{Name: "install php dependencies", Action: func() StepResult { return composerInstall(p.run, p.cfg.InstallDir) }},
		{Name: "write application .env", Action: func() StepResult {
			if err := p.cfg.renderTo("env/env.example", p.cfg.DotEnvPath(), data, 0o640); err != nil {
				return failResult(-1, "%v", err)
			}
			return okResult()
		}},
		{Name: "generate application key", Action: artisan.keyGenerate},
		{Name: "link storage", Action: artisan.storageLink},
		{Name: "provision database", Action: func() StepResult { return db.provision(params.DB) }},
		{Name: "run migrations", Action: func() StepResult { return artisan.migrate(true) }},
		{Name: "write nginx vhost", Action: func() StepResult { return p.cfg.writeVhost(data) }},
		{Name: "validate and reload nginx", Action: func() StepResult { return validateAndReloadNginx(p.run) }},
		{Name: "write queue worker unit", Action: func() StepResult { return p.cfg.writeUnit(sm, data) }},
		{Name: "enable queue worker", Action: func() StepResult { return sm.enableNow(p.cfg.ServiceName) }},
		{Name: "install cron entry", Action: func() StepResult { return installCron(p.run, p.cfg.InstallDir) }},
		{Name: "apply file permissions", Action: func() StepResult {
			return applyPermissions(p.run, p.cfg.InstallDir, p.cfg.WebUser)
		}},
	}

	if !p.reg.Execute(run, steps...) {
		return run
	}

	if params.CreateAdmin {
		p.reg.Execute(run, Step{Name: "create admin user", Action: artisan.createAdminUser})
	}
	return run
}

// AutoUpdate snapshots the installation, then delegates to the application's
// own self-update entrypoint.
func (p *Pipelines) AutoUpdate() *PipelineRun {
	run := p.reg.Begin(OpAutoUpdate)

	target, err := p.cfg.DetectTarget()
	if err != nil {
		p.reg.Fail(run, err)
		return run
	}
	defer p.reg.Finish(run)

	sm := newServiceManager(p.run)
	artisan := newArtisanCLI(p.run, p.cfg.InstallDir)

	p.reg.Execute(run,
		p.snapshotStep(target),
		Step{Name: "run application self-update", Action: artisan.selfUpdate},
		Step{Name: "apply file permissions", Action: func() StepResult {
			return applyPermissions(p.run, p.cfg.InstallDir, p.cfg.WebUser)
		}},
		Step{Name: "restart queue worker", Action: func() StepResult { return sm.restart(p.cfg.ServiceName) }},
		Step{Name: "reload nginx", Action: func() StepResult { return validateAndReloadNginx(p.run) }},
	)
	return run
}

// ManualUpdate fetches the new release over the existing tree. Everything
// between entering and leaving maintenance mode is scoped: maintenance mode
// is exited on every failure path, including failure of the final step.
func (p *Pipelines) ManualUpdate() *PipelineRun {
	run := p.reg.Begin(OpManualUpdate)

	target, err := p.cfg.DetectTarget()
	if err != nil {
		p.reg.Fail(run, err)
		return run
	}
	defer p.reg.Finish(run)

	artisan := newArtisanCLI(p.run, p.cfg.InstallDir)

	if !p.reg.Execute(run, p.snapshotStep(target)) {
		return run
	}

	p.reg.ExecuteScoped(run,
		Step{Name: "enter maintenance mode", Action: artisan.maintenanceOn, Reversible: true},
		Step{Name: "exit maintenance mode", Action: artisan.maintenanceOff},
		Step{Name: "fetch application release", Action: func() StepResult { return fetchRelease(p.run, p.cfg.InstallDir) }},
		Step{Name: "install php dependencies", Action: func() StepResult { return composerInstall(p.run, p.cfg.InstallDir) }},
		Step{Name: "apply file permissions", Action: func() StepResult {
			return applyPermissions(p.run, p.cfg.InstallDir, p.cfg.WebUser)
		}},
		Step{Name: "run migrations", Action: func() StepResult { return artisan.migrate(false) }},
		Step{Name: "clear caches", Action: artisan.clearCaches},
	)
	return run
}

// Backup takes a snapshot without touching the installation.
func (p *Pipelines) Backup() *PipelineRun {
	run := p.reg.Begin(OpBackup)

	target, err := p.cfg.DetectTarget()
	if err != nil {
		p.reg.Fail(run, err)
		return run
	}
	defer p.reg.Finish(run)

	p.reg.Execute(run, p.snapshotStep(target))
	return run
}

// Remove tears the installation down. Without the second confirmation the
// run is Cancelled before anything is touched.
func (p *Pipelines) Remove(params RemoveParams) *PipelineRun {
	run := p.reg.Begin(OpRemove)

	target, err := p.cfg.DetectTarget()
	if err != nil {
		p.reg.Fail(run, err)
		return run
	}

	if !params.Confirmed {
		p.reg.Cancel(run)
		return run
	}
	defer p.reg.Finish(run)

	sm := newServiceManager(p.run)
	db := newMySQLAdmin(p.run)

	var steps []Step
	if params.TakeBackup {
		steps = append(steps, p.snapshotStep(target))
	}
	steps = append(steps,
		Step{Name: "stop and remove queue worker", Action: func() StepResult { return p.cfg.removeUnit(sm) }},
		Step{Name: "drop database and user", Action: func() StepResult { return db.drop(target.DB) }},
		Step{Name: "remove cron entry", Action: func() StepResult { return removeCron(p.run, p.cfg.InstallDir) }},
		Step{Name: "delete application tree", Action: func() StepResult {
			return p.run.Run("rm", "-rf", p.cfg.InstallDir)
		}},
		Step{Name: "remove nginx vhost", Action: func() StepResult { return p.cfg.removeVhost() }},
		Step{Name: "reload nginx", Action: func() StepResult { return validateAndReloadNginx(p.run) }},
	)

	p.reg.Execute(run, steps...)
	return run
}

func (p *Pipelines) snapshotStep(target Target) Step {
	return Step{Name: "snapshot files and database", Action: func() StepResult {
		if _, err := p.backups.Snapshot(target); err != nil {
			return failResult(-1, "%v", err)
		}
		return okResult()
	}}
}
