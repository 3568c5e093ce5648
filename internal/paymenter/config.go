package paymenter

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultInstallDir = "/var/www/paymenter"
	defaultBackupDir  = "/var/backups/paymenter"
	defaultLogFile    = "/var/log/paymenterctl.log"
	defaultHistoryDB  = "/var/lib/paymenterctl/history.db"
)

// Config carries every path and policy knob the tool needs. It is built once
// at process start and passed by reference; nothing mutates it afterwards.
type Config struct {
	InstallDir string `yaml:"install_dir"`
	BackupDir  string `yaml:"backup_dir"`
	LogFile    string `yaml:"log_file"`
	HistoryDB  string `yaml:"history_db"`

	WebUser     string `yaml:"web_user"`
	ServiceName string `yaml:"service_name"`

	NginxAvailableDir string `yaml:"nginx_available_dir"`
	NginxEnabledDir   string `yaml:"nginx_enabled_dir"`
	SystemdUnitDir    string `yaml:"systemd_unit_dir"`

	TemplatesDir string `yaml:"templates_dir"`
}

func DefaultConfig() Config {
	return Config{
		InstallDir:        envOr("PAYMENTERCTL_INSTALL_DIR", defaultInstallDir),
		BackupDir:         envOr("PAYMENTERCTL_BACKUP_DIR", defaultBackupDir),
		LogFile:           envOr("PAYMENTERCTL_LOG_FILE", defaultLogFile),
		HistoryDB:         envOr("PAYMENTERCTL_HISTORY_DB", defaultHistoryDB),
		WebUser:           "www-data",
		ServiceName:       "paymenter",
		NginxAvailableDir: "/etc/nginx/sites-available",
		NginxEnabledDir:   "/etc/nginx/sites-enabled",
		SystemdUnitDir:    "/etc/systemd/system",
		TemplatesDir:      findTemplatesDir(),
	}
}

// LoadConfig starts from defaults and overlays an optional YAML file. A missing
// file is not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = envOr("PAYMENTERCTL_CONFIG", "/etc/paymenterctl.yml")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	if cfg.TemplatesDir == "" {
		cfg.TemplatesDir = findTemplatesDir()
	}
	return cfg, nil
}

func WriteConfig(path string, cfg Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := ensureDir(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o640)
}

// VhostPath is where the nginx server block for the installation lives.
func (c Config) VhostPath() string {
	return filepath.Join(c.NginxAvailableDir, c.ServiceName+".conf")
}

func (c Config) VhostLink() string {
	return filepath.Join(c.NginxEnabledDir, c.ServiceName+".conf")
}

func (c Config) UnitPath() string {
	return filepath.Join(c.SystemdUnitDir, c.ServiceName+".service")
}

func (c Config) DotEnvPath() string {
	return filepath.Join(c.InstallDir, ".env")
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func findTemplatesDir() string {
	if custom := strings.TrimSpace(os.Getenv("PAYMENTERCTL_TEMPLATES")); custom != "" {
		return custom
	}

	exe, err := os.Executable()
	if err == nil {
		binDir := filepath.Dir(exe)
		candidates := []string{
			filepath.Join(binDir, "..", "templates"),
			filepath.Join(binDir, "templates"),
		}
		for _, c := range candidates {
			if dirExists(c) {
				return c
			}
		}
	}

	cwd, err := os.Getwd()
	if err == nil {
		c := filepath.Join(cwd, "templates")
		if dirExists(c) {
			return c
		}
	}

	fallbacks := []string{
		"/usr/local/share/paymenterctl/templates",
	}
	for _, c := range fallbacks {
		if dirExists(c) {
			return c
		}
	}
	return "templates"
}
