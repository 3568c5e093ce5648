package paymenter

import (
	"fmt"

	"github.com/joho/godotenv"
)

// DBCredentials is what the installed application's .env tells us about its
// database.
type DBCredentials struct {
	Name     string
	User     string
	Password string
}

// Target is the installed application's on-disk location. The tool never
// inspects its contents beyond existence checks and its .env file.
type Target struct {
	RootDir    string
	ServerName string
	DB         DBCredentials
}

// DetectTarget resolves the current installation or fails with
// ErrNotInstalled when the install directory is absent.
func (c Config) DetectTarget() (Target, error) {
	if !dirExists(c.InstallDir) {
		return Target{}, fmt.Errorf("%w: %s does not exist", ErrNotInstalled, c.InstallDir)
	}

	t := Target{RootDir: c.InstallDir}

	env, err := godotenv.Read(c.DotEnvPath())
	if err != nil {
		// Tree exists but .env is unreadable; backups of the tree still work,
		// database operations will fail with a named step.
		return t, nil
	}
	t.ServerName = env["APP_URL"]
	t.DB = DBCredentials{
		Name:     env["DB_DATABASE"],
		User:     env["DB_USERNAME"],
		Password: env["DB_PASSWORD"],
	}
	return t, nil
}
