package paymenter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigEnvOverrides(t *testing.T) {
	t.Setenv("PAYMENTERCTL_INSTALL_DIR", "/srv/paymenter")
	t.Setenv("PAYMENTERCTL_BACKUP_DIR", "/srv/backups")

	cfg := DefaultConfig()
	if cfg.InstallDir != "/srv/paymenter" {
		t.Errorf("InstallDir = %q", cfg.InstallDir)
	}
	if cfg.BackupDir != "/srv/backups" {
		t.Errorf("BackupDir = %q", cfg.BackupDir)
	}
	if cfg.LogFile != defaultLogFile {
		t.Errorf("LogFile = %q, want default", cfg.LogFile)
	}
}

func TestLoadConfigMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.InstallDir != defaultInstallDir {
		t.Errorf("InstallDir = %q, want %q", cfg.InstallDir, defaultInstallDir)
	}
	if cfg.WebUser != "www-data" {
		t.Errorf("WebUser = %q", cfg.WebUser)
	}
}

func TestLoadConfigOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paymenterctl.yml")
	body := "install_dir: /opt/paymenter\nweb_user: caddy\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.InstallDir != "/opt/paymenter" {
		t.Errorf("InstallDir = %q", cfg.InstallDir)
	}
	if cfg.WebUser != "caddy" {
		t.Errorf("WebUser = %q", cfg.WebUser)
	}
	// Keys absent from the file keep their defaults.
	if cfg.ServiceName != "paymenter" {
		t.Errorf("ServiceName = %q", cfg.ServiceName)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	if err := os.WriteFile(path, []byte("install_dir: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("malformed YAML did not error")
	}
}

func TestConfigPaths(t *testing.T) {
	cfg := Config{
		InstallDir:        "/var/www/paymenter",
		ServiceName:       "paymenter",
		NginxAvailableDir: "/etc/nginx/sites-available",
		NginxEnabledDir:   "/etc/nginx/sites-enabled",
		SystemdUnitDir:    "/etc/systemd/system",
	}
	if got := cfg.VhostPath(); got != "/etc/nginx/sites-available/paymenter.conf" {
		t.Errorf("VhostPath = %q", got)
	}
	if got := cfg.VhostLink(); got != "/etc/nginx/sites-enabled/paymenter.conf" {
		t.Errorf("VhostLink = %q", got)
	}
	if got := cfg.UnitPath(); got != "/etc/systemd/system/paymenter.service" {
		t.Errorf("UnitPath = %q", got)
	}
	if got := cfg.DotEnvPath(); got != "/var/www/paymenter/.env" {
		t.Errorf("DotEnvPath = %q", got)
	}
}

func TestWriteConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "cfg.yml")
	want := DefaultConfig()
	want.InstallDir = "/opt/p"
	if err := WriteConfig(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.InstallDir != "/opt/p" {
		t.Errorf("InstallDir = %q", got.InstallDir)
	}
}
