package paymenter

import "fmt"

var basePackages = []string{
	"software-properties-common",
	"curl",
	"apt-transport-https",
	"ca-certificates",
	"gnupg",
	"lsb-release",
}

var servicePackages = []string{
	"nginx",
	"mariadb-server",
	"redis-server",
	"cron",
	"tar",
	"unzip",
	"git",
}

var phpPackages = []string{
	"php8.2",
	"php8.2-fpm",
	"php8.2-cli",
	"php8.2-common",
	"php8.2-mysql",
	"php8.2-curl",
	"php8.2-mbstring",
	"php8.2-xml",
	"php8.2-bcmath",
	"php8.2-zip",
	"php8.2-gd",
	"php8.2-intl",
	"php8.2-redis",
}

// aptRunner wraps the package manager with non-interactive defaults. Install
// is idempotent: apt no-ops on packages that are already present.
type aptRunner struct {
	run *Runner
}

func newAptRunner(run *Runner) *aptRunner {
	return &aptRunner{run: run.WithEnv("DEBIAN_FRONTEND=noninteractive")}
}

func (a *aptRunner) update() StepResult {
	return a.run.Run("apt", "update", "-y")
}

func (a *aptRunner) install(packages []string) StepResult {
	args := append([]string{"install", "-y"}, packages...)
	res := a.run.Run("apt", args...)
	if !res.OK {
		err := &DependencyInstallError{Packages: packages, Detail: res.Message}
		res.Message = err.Error()
	}
	return res
}

// addPHPRepository registers the distribution's PHP package source: ondrej's
// PPA on Ubuntu, the sury.org repo on Debian.
func (a *aptRunner) addPHPRepository() StepResult {
	rel, err := readOSRelease("/etc/os-release")
	if err != nil {
		return failResult(-1, "read /etc/os-release: %v", err)
	}

	if rel.ID == "ubuntu" {
		return a.run.Run("add-apt-repository", "-y", "ppa:ondrej/php")
	}

	if res := a.run.Run("sh", "-c",
		"curl -sSLo /usr/share/keyrings/deb.sury.org-php.gpg https://packages.sury.org/php/apt.gpg"); !res.OK {
		return res
	}
	line := fmt.Sprintf("deb [signed-by=/usr/share/keyrings/deb.sury.org-php.gpg] https://packages.sury.org/php/ %s main", rel.codename())
	return a.run.RunInput(line+"\n", "tee", "/etc/apt/sources.list.d/php.list")
}

func (r osRelease) codename() string {
	switch r.Version {
	case "11":
		return "bullseye"
	case "12":
		return "bookworm"
	}
	return "stable"
}

// installComposer fetches the composer installer and places the binary on the
// path. Skipped when composer already exists.
func installComposer(run *Runner) StepResult {
	if _, res := run.RunCapture("composer", "--version"); res.OK {
		return okResult()
	}
	return run.Run("sh", "-c",
		"curl -sS https://getcomposer.org/installer | php -- --install-dir=/usr/local/bin --filename=composer")
}
