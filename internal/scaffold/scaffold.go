// Package scaffold generates project and application skeletons for the
// new-project and new-app commands.
//
// Generation is non-interactive and refuses to overwrite anything that
// already exists; prompting for missing options is the CLI's job.
package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/vergeframework/verge/internal/config"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var (
	// ErrExists marks a target directory that is already present.
	ErrExists = errors.New("target already exists")

	// ErrBadName marks a project or application name that cannot be
	// used as a directory or Go package name.
	ErrBadName = errors.New("invalid name")
)

// ProjectOptions configures NewProject.
type ProjectOptions struct {
	// Dir is the parent directory. Default: current directory.
	Dir string

	// Name is the project directory and binary name. Required.
	Name string

	// Module is the Go module path. Default: Name.
	Module string

	// App optionally names a first application to scaffold alongside
	// the project.
	App string

	// Engine is the database engine written to verge.yaml.
	// Default: postgres.
	Engine string
}

// templateData is what the skeleton templates render with.
type templateData struct {
	Name   string
	Module string
	App    string
}

// NewProject generates a project skeleton: go.mod, a main package
// wiring the verge CLI, verge.yaml, a .gitignore, and a .env.example.
// With App set it also scaffolds the first application and registers it
// in verge.yaml. Returns the created project root.
func NewProject(opts ProjectOptions) (string, error) {
	if err := checkProjectName(opts.Name); err != nil {
		return "", err
	}
	if opts.Module == "" {
		opts.Module = opts.Name
	}
	if opts.Engine == "" {
		opts.Engine = config.EnginePostgres
	}
	switch opts.Engine {
	case config.EnginePostgres, config.EngineSQLite, config.EngineMySQL:
	default:
		return "", fmt.Errorf("%w: unknown database engine %q", config.ErrInvalid, opts.Engine)
	}
	if opts.App != "" {
		if err := checkAppName(opts.App); err != nil {
			return "", err
		}
	}

	root := filepath.Join(opts.Dir, opts.Name)
	if _, err := os.Stat(root); err == nil {
		return "", fmt.Errorf("%w: %s", ErrExists, root)
	}

	data := templateData{Name: opts.Name, Module: opts.Module, App: opts.App}

	renders := []struct {
		path string
		tmpl string
	}{
		{filepath.Join(root, "go.mod"), "gomod.tmpl"},
		{filepath.Join(root, "cmd", opts.Name, "main.go"), "main.go.tmpl"},
		{filepath.Join(root, ".gitignore"), "gitignore.tmpl"},
		{filepath.Join(root, ".env.example"), "env.tmpl"},
	}
	for _, r := range renders {
		if err := writeRendered(r.path, r.tmpl, data); err != nil {
			return "", err
		}
	}

	settings, err := settingsYAML(opts)
	if err != nil {
		return "", fmt.Errorf("render verge.yaml: %w", err)
	}
	if err := os.WriteFile(filepath.Join(root, "verge.yaml"), settings, 0644); err != nil {
		return "", fmt.Errorf("write verge.yaml: %w", err)
	}

	if opts.App != "" {
		if _, err := NewApp(root, opts.App); err != nil {
			return "", err
		}
	}

	return root, nil
}

// NewApp generates an application package with a starter models.go
// under projectDir. Returns the created application directory. It does
// not edit the project's main.go or verge.yaml; the caller prints the
// wiring instructions.
func NewApp(projectDir, name string) (string, error) {
	if err := checkAppName(name); err != nil {
		return "", err
	}

	appDir := filepath.Join(projectDir, name)
	if _, err := os.Stat(appDir); err == nil {
		return "", fmt.Errorf("%w: %s", ErrExists, appDir)
	}

	data := templateData{App: name}
	if err := writeRendered(filepath.Join(appDir, "models.go"), "models.go.tmpl", data); err != nil {
		return "", err
	}

	return appDir, nil
}

// settingsYAML builds the generated verge.yaml content. The sqlite
// engine gets a file path instead of server options.
func settingsYAML(opts ProjectOptions) ([]byte, error) {
	settings := config.Default()
	switch opts.Engine {
	case config.EngineSQLite:
		settings.Database = config.Database{
			Engine: config.EngineSQLite,
			Name:   opts.Name + ".db",
		}
	case config.EngineMySQL:
		settings.Database.Engine = config.EngineMySQL
		settings.Database.Port = 3306
		settings.Database.Name = opts.Name
	default:
		settings.Database.Name = opts.Name
	}
	if opts.App != "" {
		settings.Apps = []string{opts.App}
	}
	return yaml.Marshal(settings)
}

// writeRendered renders one template to path, creating parent
// directories as needed.
func writeRendered(path, tmplName string, data templateData) error {
	tmpl, err := template.ParseFS(templatesFS, "templates/"+tmplName)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", tmplName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render template %s: %w", tmplName, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// checkProjectName accepts directory-safe names: letters, digits,
// underscore, hyphen, starting with a letter.
func checkProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: project name is empty", ErrBadName)
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '_' || r == '-'):
		default:
			return fmt.Errorf("%w: project name %q", ErrBadName, name)
		}
	}
	return nil
}

// checkAppName accepts names that work as Go package names and import
// path segments: lowercase letters, digits, underscore, starting with
// a lowercase letter.
func checkAppName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: application name is empty", ErrBadName)
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case i > 0 && (r >= '0' && r <= '9' || r == '_'):
		default:
			return fmt.Errorf("%w: application name %q", ErrBadName, name)
		}
	}
	return nil
}
