package paymenter

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"
)

// RenderData is the single substitution context for every template the tool
// writes (vhost, service unit, application .env).
type RenderData struct {
	ServerName string
	InstallDir string
	WebUser    string
	AppURL     string
	DBName     string
	DBUser     string
	DBPassword string
}

func (c Config) renderData(params InstallParams) RenderData {
	scheme := "http"
	return RenderData{
		ServerName: params.ServerName,
		InstallDir: c.InstallDir,
		WebUser:    c.WebUser,
		AppURL:     scheme + "://" + params.ServerName,
		DBName:     params.DB.Name,
		DBUser:     params.DB.User,
		DBPassword: params.DB.Password,
	}
}

func renderFile(path string, data RenderData) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return renderString(string(content), data)
}

func renderString(content string, data RenderData) (string, error) {
	tmpl, err := template.New("").Option("missingkey=error").Parse(content)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderTo renders a template from the templates dir and writes the result.
func (c Config) renderTo(templateRel, targetPath string, data RenderData, mode os.FileMode) error {
	text, err := renderFile(filepath.Join(c.TemplatesDir, templateRel), data)
	if err != nil {
		return &ConfigWriteError{Path: targetPath, Err: err}
	}
	if err := ensureDir(filepath.Dir(targetPath), 0o755); err != nil {
		return &ConfigWriteError{Path: targetPath, Err: err}
	}
	if err := os.WriteFile(targetPath, []byte(text), mode); err != nil {
		return &ConfigWriteError{Path: targetPath, Err: err}
	}
	return nil
}
